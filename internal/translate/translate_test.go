package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareFragmentKeepsHanAndLettersTruncatedToFive(t *testing.T) {
	assert.Equal(t, "提交", PrepareFragment("提交"))
	assert.Equal(t, "请输入", PrepareFragment("请输入"))
	assert.Equal(t, "abcde", PrepareFragment("abcdefgh"))
	assert.Equal(t, "你有n条消", PrepareFragment("你有${n}条消息"))
}

func TestPrepareFragmentDefaultsToSentinelWhenEmpty(t *testing.T) {
	assert.Equal(t, "中文符号", PrepareFragment("123"))
	assert.Equal(t, "中文符号", PrepareFragment(""))
}

func TestNewForProviderResolvesKnownNames(t *testing.T) {
	for _, name := range []string{"pinyin", "Pinyin", "google", "Google", "baidu", "Baidu", ""} {
		tr, err := NewForProvider(name)
		require.NoError(t, err, name)
		require.NotNil(t, tr, name)
	}
}

func TestNewForProviderRejectsUnknown(t *testing.T) {
	_, err := NewForProvider("deepl")
	assert.Error(t, err)
}

func TestExtractFirstTranslation(t *testing.T) {
	body := `[[["submit","提交",null,null,1]],null,"zh-CN"]`
	assert.Equal(t, "submit", extractFirstTranslation(body))
}

func TestSanitizeToken(t *testing.T) {
	assert.Equal(t, "ti jiao", sanitizeToken("ti-jiao!!"))
}
