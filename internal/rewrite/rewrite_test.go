package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPlainScriptLiteral(t *testing.T) {
	src := []byte(`const msg = "提交";`)
	start, end := indexOf(src, `"提交"`)
	spans := []Span{
		{Text: "提交", Start: start, End: end, IsString: true, Key: "common.tiJiao"},
	}
	res, err := Apply(src, spans, Options{LookupSymbol: "I18N", IsMarkup: false})
	require.NoError(t, err)
	assert.Equal(t, `const msg = I18N.common.tiJiao;`, string(res.Content))
}

func TestApplyAttributeAssignmentWrapsMarkup(t *testing.T) {
	src := []byte(`<div title="确认"></div>`)
	start, end := indexOf(src, `"确认"`)
	spans := []Span{
		{Text: "确认", Start: start, End: end, IsString: true, Key: "common.queRen"},
	}
	res, err := Apply(src, spans, Options{LookupSymbol: "I18N", IsMarkup: true})
	require.NoError(t, err)
	assert.Contains(t, string(res.Content), `{{I18N.common.queRen}}`)
}

func TestApplyNonStringMarkupText(t *testing.T) {
	src := []byte(`<button>确定</button>`)
	start, end := indexOf(src, "确定")
	spans := []Span{
		{Text: "确定", Start: start, End: end, IsString: false, Key: "common.queDing"},
	}
	res, err := Apply(src, spans, Options{LookupSymbol: "I18N", IsMarkup: true})
	require.NoError(t, err)
	assert.Equal(t, `<button>{{I18N.common.queDing}}</button>`, string(res.Content))
}

func TestApplyTemplateLiteralWithInterpolation(t *testing.T) {
	src := []byte("const s = `你有${n}条消息`;")
	start, end := indexOf(src, "你有${n}条消息")
	spans := []Span{
		{Text: "你有${n}条消息", Start: start, End: end, IsString: true, Key: "common.niYou"},
	}
	res, err := Apply(src, spans, Options{LookupSymbol: "I18N", IsMarkup: false})
	require.NoError(t, err)
	assert.Contains(t, string(res.Content), "I18N.template(I18N.common.niYou, { val1: n })")
	require.Contains(t, res.CatalogOverrides, "common.niYou")
	assert.Equal(t, "你有{val1}条消息", res.CatalogOverrides["common.niYou"])
}

func TestApplyMustacheInteriorReplacesWithoutExtraBraces(t *testing.T) {
	src := []byte(`<span>{{ "确认" }}</span>`)
	start, end := indexOf(src, "确认")
	spans := []Span{
		{Text: "确认", Start: start, End: end, IsString: false, Key: "common.queRen"},
	}
	res, err := Apply(src, spans, Options{LookupSymbol: "I18N", IsMarkup: true})
	require.NoError(t, err)
	assert.Equal(t, `<span>{{ I18N.common.queRen }}</span>`, string(res.Content))
}

func TestApplyMustacheBoundTemplateLiteralWithInterpolation(t *testing.T) {
	// Mirrors templatewalk.go's templateLiteralSubstrings span convention: the
	// span covers the content between the backticks, not the backticks
	// themselves, so sp.Start sits just after the opening backtick.
	src := []byte("<span>{{ `你有${n}条消息` }}</span>")
	content := "你有${n}条消息"
	start, end := indexOf(src, content)
	spans := []Span{
		{Text: content, Start: start, End: end, IsString: true, Key: "common.niYou"},
	}
	res, err := Apply(src, spans, Options{LookupSymbol: "I18N", IsMarkup: true})
	require.NoError(t, err)
	assert.Equal(t, "<span>{{ I18N.template(I18N.common.niYou, { val1: n }) }}</span>", string(res.Content))
	require.Contains(t, res.CatalogOverrides, "common.niYou")
	assert.Equal(t, "你有{val1}条消息", res.CatalogOverrides["common.niYou"])
}

func TestApplyMultipleSpansBackToFront(t *testing.T) {
	src := []byte(`const a = "甲"; const b = "乙";`)
	aStart, aEnd := indexOf(src, `"甲"`)
	bStart, bEnd := indexOf(src, `"乙"`)
	spans := []Span{
		{Text: "乙", Start: bStart, End: bEnd, IsString: true, Key: "common.yi"},
		{Text: "甲", Start: aStart, End: aEnd, IsString: true, Key: "common.jia"},
	}
	res, err := Apply(src, spans, Options{LookupSymbol: "I18N", IsMarkup: false})
	require.NoError(t, err)
	assert.Equal(t, `const a = I18N.common.jia; const b = I18N.common.yi;`, string(res.Content))
}

func indexOf(src []byte, substr string) (int, int) {
	i := indexBytes(src, substr)
	return i, i + len(substr)
}

func indexBytes(src []byte, substr string) int {
	for i := 0; i+len(substr) <= len(src); i++ {
		if string(src[i:i+len(substr)]) == substr {
			return i
		}
	}
	return -1
}
