package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinocarta/hanzi-extract/internal/tsgrammar"
)

func TestHasChinese(t *testing.T) {
	assert.True(t, HasChinese("提交"))
	assert.True(t, HasChinese("submit 提交"))
	assert.False(t, HasChinese("submit"))
	assert.False(t, HasChinese(""))
}

func TestStripComments(t *testing.T) {
	assert.Equal(t, "hello  world", stripComments("hello /* 注释 */ world"))
	assert.Equal(t, "hello \n", stripComments("hello // 注释\n"))
}

func TestUnquoteOuter(t *testing.T) {
	assert.Equal(t, "提交", unquoteOuter(`"提交"`))
	assert.Equal(t, "提交", unquoteOuter(`'提交'`))
	assert.Equal(t, "提交", unquoteOuter("`提交`"))
	assert.Equal(t, "x", unquoteOuter("x"))
}

func TestExtractFindsPlainStringLiteral(t *testing.T) {
	src := []byte(`const msg = "提交";`)
	spans, err := Extract(tsgrammar.JavaScript, src, 0)
	require.NoError(t, err)
	require.Len(t, spans, 1)

	got := spans[0]
	assert.Equal(t, "提交", got.Text)
	assert.True(t, got.IsString)
	assert.Equal(t, `"提交"`, string(src[got.Start:got.End]))
}

func TestExtractSkipsNonChineseLiterals(t *testing.T) {
	src := []byte(`const msg = "submit";`)
	spans, err := Extract(tsgrammar.JavaScript, src, 0)
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestExtractFindsTemplateLiteralWithInterpolation(t *testing.T) {
	src := []byte("const m = `你有${n}条消息`;")
	spans, err := Extract(tsgrammar.JavaScript, src, 0)
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.True(t, spans[0].IsString)
	assert.Contains(t, spans[0].Text, "你有")
}

func TestExtractAppliesOffset(t *testing.T) {
	src := []byte(`const msg = "提交";`)
	spans, err := Extract(tsgrammar.JavaScript, src, 100)
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, 112, spans[0].Start)
}

func TestExtractTypeScriptDialectHandlesTypeAnnotations(t *testing.T) {
	src := []byte(`const msg: string = "提交";`)
	spans, err := Extract(tsgrammar.TypeScript, src, 0)
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, "提交", spans[0].Text)
}
