package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureImportInjectsAtTopForScriptFile(t *testing.T) {
	src := []byte("const a = 1;\nexport default a;\n")
	out, err := EnsureImport(src, ImportOptions{LookupSymbol: "I18N", ImportPath: "@/i18n"})
	require.NoError(t, err)
	assert.True(t, indexBytes(out, "import I18N from '@/i18n';") == 0)
	assert.Contains(t, string(out), "const a = 1;")
}

func TestEnsureImportSkipsWhenAlreadyImported(t *testing.T) {
	src := []byte("import I18N from '@/i18n';\nconst a = 1;\n")
	out, err := EnsureImport(src, ImportOptions{LookupSymbol: "I18N", ImportPath: "@/i18n"})
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestEnsureImportRecognizesNamedImport(t *testing.T) {
	src := []byte("import { I18N } from '@/i18n';\nconst a = 1;\n")
	out, err := EnsureImport(src, ImportOptions{LookupSymbol: "I18N", ImportPath: "@/i18n"})
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestEnsureImportComponentInjectsAtScriptOffset(t *testing.T) {
	src := []byte("<template></template>\n<script>\nconst a = 1;\n</script>\n")
	scriptOffset := indexBytes(src, "const a = 1;")
	out, err := EnsureImport(src, ImportOptions{
		LookupSymbol: "I18N",
		ImportPath:   "@/i18n",
		IsComponent:  true,
		ScriptOffset: scriptOffset,
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<script>\nimport I18N from '@/i18n';\nconst a = 1;")
}
