package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinocarta/hanzi-extract/internal/config"
	"github.com/sinocarta/hanzi-extract/internal/report"
)

// fakeTranslator stands in for a real provider in tests — it returns a
// fixed English token per fragment so the pipeline's key synthesis and
// rewrite steps are exercised without any network I/O.
type fakeTranslator struct {
	tokens map[string]string
}

func (f *fakeTranslator) TranslateBatch(ctx context.Context, fragments []string) ([]string, error) {
	out := make([]string, len(fragments))
	for i, frag := range fragments {
		if tok, ok := f.tokens[frag]; ok {
			out[i] = tok
			continue
		}
		out[i] = frag
	}
	return out, nil
}

func setupProject(t *testing.T, files map[string]string) (string, *config.Config) {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	cfg := config.Default()
	return root, cfg
}

func TestRunRewritesPlainScriptLiteral(t *testing.T) {
	root, cfg := setupProject(t, map[string]string{
		"src/msg.ts": `const msg = "提交";` + "\n",
	})

	runWithFakeTranslator(t, root, cfg, map[string]string{"提交": "tiJiao"})

	out, err := os.ReadFile(filepath.Join(root, "src/msg.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "I18N.src.msg.tiJiao")
	assert.Contains(t, string(out), "import I18N from")

	catalogFile, err := os.ReadFile(filepath.Join(root, "src/locales/zh-CN/src.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(catalogFile), `tiJiao: '提交'`)
}

func TestRunSkipsFileWithNoChineseLiterals(t *testing.T) {
	root, cfg := setupProject(t, map[string]string{
		"src/plain.ts": `const msg = "hello";` + "\n",
	})

	summary := runWithFakeTranslator(t, root, cfg, nil)
	assert.Equal(t, 1, summary.FilesScanned)
	assert.Equal(t, 0, summary.FilesRewritten)
	assert.Empty(t, summary.Failures)
}

func TestRunReusesKeyForRepeatedLiteralAcrossFiles(t *testing.T) {
	root, cfg := setupProject(t, map[string]string{
		"src/a.ts": `const a = "取消";` + "\n",
		"src/b.ts": `const b = "取消";` + "\n",
	})

	summary := runWithFakeTranslator(t, root, cfg, map[string]string{"取消": "quXiao"})
	assert.Equal(t, 1, summary.KeysCreated)
	assert.Equal(t, 1, summary.KeysReused)

	a, err := os.ReadFile(filepath.Join(root, "src/a.ts"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(root, "src/b.ts"))
	require.NoError(t, err)

	assert.Contains(t, string(a), "I18N.src.a.quXiao")
	assert.Contains(t, string(b), "I18N.src.a.quXiao")
}

func TestSessionProcessFileReusesSessionAcrossFiles(t *testing.T) {
	root, cfg := setupProject(t, map[string]string{
		"src/msg.ts":   `const msg = "提交";` + "\n",
		"src/other.ts": `const other = "hello";` + "\n",
	})

	sess, err := NewSession(Options{
		Root:       root,
		Config:     cfg,
		Translator: &fakeTranslator{tokens: map[string]string{"提交": "tiJiao"}},
	})
	require.NoError(t, err)

	var summary report.Summary
	sess.ProcessFile(context.Background(), filepath.Join(root, "src/msg.ts"), &summary)
	sess.ProcessFile(context.Background(), filepath.Join(root, "src/other.ts"), &summary)

	assert.Equal(t, 1, summary.KeysCreated)
	assert.Equal(t, 2, summary.FilesScanned)

	out, err := os.ReadFile(filepath.Join(root, "src/msg.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "I18N.src.msg.tiJiao")
}

func runWithFakeTranslator(t *testing.T, root string, cfg *config.Config, tokens map[string]string) report.Summary {
	t.Helper()
	summary, err := Run(context.Background(), Options{
		Root:       root,
		Config:     cfg,
		Translator: &fakeTranslator{tokens: tokens},
	})
	require.NoError(t, err)
	return summary
}
