package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKDLDefaults(t *testing.T) {
	cfg, err := parseKDL("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "src/locales", cfg.KiwiDir)
	assert.Equal(t, "zh-CN", cfg.SrcLang)
	assert.Equal(t, "I18N", cfg.ImportI18N)
	assert.Equal(t, 3, cfg.VueVersion)
	assert.False(t, cfg.HTMLEnabled)
	assert.True(t, cfg.RespectGitignore)
}

func TestParseKDLOverridesScalars(t *testing.T) {
	src := `
kiwiDir "src/i18n"
srcLang "zh-TW"
defaultTranslateKeyApi "google"
importI18N "$t"
vueVersion 2
htmlEnabled true
validateDuplicate true
respectGitignore false
watchMode true
watchDebounceMs 500
`
	cfg, err := parseKDL(src)
	require.NoError(t, err)

	assert.Equal(t, "src/i18n", cfg.KiwiDir)
	assert.Equal(t, "zh-TW", cfg.SrcLang)
	assert.Equal(t, "google", cfg.DefaultTranslateKeyAPI)
	assert.Equal(t, "$t", cfg.ImportI18N)
	assert.Equal(t, 2, cfg.VueVersion)
	assert.True(t, cfg.HTMLEnabled)
	assert.True(t, cfg.ValidateDuplicate)
	assert.False(t, cfg.RespectGitignore)
	assert.True(t, cfg.WatchMode)
	assert.Equal(t, 500, cfg.WatchDebounceMs)
}

func TestParseKDLListsBlockForm(t *testing.T) {
	src := `
ignoreDir {
    "node_modules"
    "dist"
    "coverage"
}
fileType {
    ".ts"
    ".vue"
}
`
	cfg, err := parseKDL(src)
	require.NoError(t, err)

	assert.Equal(t, []string{"node_modules", "dist", "coverage"}, cfg.IgnoreDir)
	assert.Equal(t, []string{".ts", ".vue"}, cfg.FileType)
}

func TestParseKDLListsInlineForm(t *testing.T) {
	src := `ignoreFile "foo.ts" "bar.ts"`
	cfg, err := parseKDL(src)
	require.NoError(t, err)

	assert.Equal(t, []string{"foo.ts", "bar.ts"}, cfg.IgnoreFile)
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestCatalogDirJoinsKiwiDirAndSrcLang(t *testing.T) {
	cfg := Default()
	cfg.KiwiDir = "src/locales"
	cfg.SrcLang = "zh-CN"
	assert.Equal(t, "src/locales/zh-CN", cfg.CatalogDir())
}

func TestHasFileType(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.HasFileType(".ts"))
	assert.False(t, cfg.HasFileType(".md"))
}

func TestImportSymbolAndPathFromBareSymbol(t *testing.T) {
	cfg := Default()
	cfg.ImportI18N = "I18N"
	assert.Equal(t, "I18N", cfg.ImportSymbol())
	assert.Equal(t, "@/utils/i18n", cfg.ImportPath())
}

func TestImportSymbolAndPathFromFullStatement(t *testing.T) {
	cfg := Default()
	cfg.ImportI18N = "import I18N from '@/shared/i18n';"
	assert.Equal(t, "I18N", cfg.ImportSymbol())
	assert.Equal(t, "@/shared/i18n", cfg.ImportPath())
}
