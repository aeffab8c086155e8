// Package orchestrator implements the Orchestrator (C9): it drives the
// walk → dispatch → normalize → translate → synthesize → rewrite → persist
// sequence for every file in a target tree, strictly one file at a time
// (§5's single-threaded contract), recovering per-file failures without
// aborting the run.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sinocarta/hanzi-extract/internal/catalog"
	"github.com/sinocarta/hanzi-extract/internal/config"
	"github.com/sinocarta/hanzi-extract/internal/dialect"
	"github.com/sinocarta/hanzi-extract/internal/diag"
	"github.com/sinocarta/hanzi-extract/internal/extract/component"
	"github.com/sinocarta/hanzi-extract/internal/keygen"
	"github.com/sinocarta/hanzi-extract/internal/pipeerr"
	"github.com/sinocarta/hanzi-extract/internal/report"
	"github.com/sinocarta/hanzi-extract/internal/rewrite"
	"github.com/sinocarta/hanzi-extract/internal/span"
	"github.com/sinocarta/hanzi-extract/internal/translate"
	"github.com/sinocarta/hanzi-extract/internal/walker"
)

// Options configures one extraction run.
type Options struct {
	// Root is the project directory config and the catalog are resolved
	// against — always a real directory, never the raw CLI target string.
	Root string
	// Target is the walker's input per §4.1: a comma-separated directory
	// path or explicit file-path list. Left empty, Root is walked instead
	// (the common single-directory case).
	Target string
	Config *config.Config
	// Prefix is an explicit key prefix, already stripped of its leading
	// "<LOOKUP>." segment by the CLI layer (§6).
	Prefix string
	// DryRun computes and reports the run's effect without writing any
	// file or catalog changes to disk.
	DryRun bool
	// Translator overrides the provider resolved from Config — tests (and
	// only tests) inject a fake here instead of a real network provider.
	// Left nil, Run resolves the provider Config names (§9: "inject it
	// explicitly rather than reaching for process singletons").
	Translator translate.KeyTranslator
}

// Session holds one run's resolved translator and loaded Catalog Store —
// the state that's expensive to build once but safe to reuse across many
// ProcessFile calls, which is what watch mode (internal/watch) needs: one
// Session per watched tree, one ProcessFile call per changed file.
type Session struct {
	opts       Options
	store      *catalog.Store
	writer     *catalog.Writer
	translator translate.KeyTranslator
}

// NewSession resolves the translator and loads the Catalog Store for opts.
// Returns a *pipeerr.Error (ClassConfig) if the configured translator
// provider is unrecognized (§7's hard-abort case).
func NewSession(opts Options) (*Session, error) {
	cfg := opts.Config

	translator := opts.Translator
	if translator == nil {
		var err error
		translator, err = translate.NewForProvider(cfg.DefaultTranslateKeyAPI)
		if err != nil {
			return nil, pipeerr.Config("resolve_translator", err)
		}
	}

	catalogDir := catalogAbsDir(opts.Root, cfg)
	store, err := catalog.Load(catalogDir, cfg.CatalogExt)
	if err != nil {
		return nil, pipeerr.IO("load_catalog", catalogDir, err)
	}

	return &Session{
		opts:       opts,
		store:      store,
		writer:     catalog.NewWriter(store, cfg.ValidateDuplicate),
		translator: translator,
	}, nil
}

// ProcessFile runs the full per-file pipeline on path, folding the outcome
// into summary.
func (s *Session) ProcessFile(ctx context.Context, path string, summary *report.Summary) {
	processFile(ctx, path, s.opts.Config, s.opts, s.store, s.writer, s.translator, summary)
}

// Run walks opts.Target (opts.Root when Target is empty) and processes
// every matching file serially,
// returning a Summary of the run. A non-nil error means a fatal
// configuration failure aborted the run before any side effects (§7); all
// other failures are recovered per-file and recorded in the Summary.
func Run(ctx context.Context, opts Options) (report.Summary, error) {
	cfg := opts.Config

	sess, err := NewSession(opts)
	if err != nil {
		return report.Summary{}, err
	}

	fileTypes := cfg.FileType
	if !cfg.HTMLEnabled {
		fileTypes = excludeExt(fileTypes, ".html")
	}

	catalogRelForWalk := cfg.CatalogDir()
	if filepath.IsAbs(cfg.KiwiDir) {
		// walker.Options.CatalogDir is resolved relative to Root; an
		// absolute kiwiDir outside Root needs no exclusion entry since
		// the walk can never reach it.
		catalogRelForWalk = ""
	}

	target := opts.Target
	if target == "" {
		target = opts.Root
	}

	paths, err := walker.WalkTarget(target, walker.Options{
		Root:             opts.Root,
		FileTypes:        fileTypes,
		IgnoreDir:        cfg.IgnoreDir,
		IgnoreFile:       cfg.IgnoreFile,
		CatalogDir:       catalogRelForWalk,
		RespectGitignore: cfg.RespectGitignore,
	})
	if err != nil {
		return report.Summary{}, pipeerr.IO("walk", target, err)
	}

	var summary report.Summary
	for _, path := range paths {
		sess.ProcessFile(ctx, path, &summary)
	}

	return summary, nil
}

func processFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts Options,
	store *catalog.Store,
	writer *catalog.Writer,
	translator translate.KeyTranslator,
	summary *report.Summary,
) {
	content, err := os.ReadFile(path)
	if err != nil {
		summary.AddFailure(path, "io", err)
		return
	}

	kind := dialect.For(path)
	spans, err := dialect.Extract(path, content, dialect.Options{VueVersion: cfg.VueVersion})
	if err != nil {
		diag.Log("orchestrator", "parse failure for %s: %v", path, err)
		summary.AddFailure(path, "parse", pipeerr.Parse(path, err))
		return
	}

	spans = span.Normalize(spans)
	if len(spans) == 0 {
		summary.AddSkipped()
		return
	}

	forward := span.Forward(spans)
	fragments := make([]string, len(forward))
	for i, rec := range forward {
		fragments[i] = translate.PrepareFragment(rec.Text)
	}

	tokens, err := translator.TranslateBatch(ctx, fragments)
	if err != nil || len(tokens) != len(fragments) {
		if err == nil {
			err = fmt.Errorf("translator returned %d tokens for %d fragments", len(tokens), len(fragments))
		}
		summary.AddFailure(path, "translate", pipeerr.Translate(path, err))
		return
	}

	synth := keygen.New(store, opts.Prefix)
	assignmentByStart := make(map[int]keygen.Assignment, len(forward))
	for i, rec := range forward {
		transText := keygen.CamelCase(tokens[i])
		assignmentByStart[rec.Start] = synth.Assign(path, rec.Text, transText)
	}

	rewriteSpans := make([]rewrite.Span, len(spans))
	created, reused := 0, 0
	for i, rec := range spans {
		a := assignmentByStart[rec.Start]
		rec.Key = a.Key
		rec.NeedWrite = a.NeedWrite
		if a.NeedWrite {
			created++
		} else {
			reused++
		}
		rewriteSpans[i] = rec
	}

	isMarkup := kind == dialect.KindHTML || kind == dialect.KindComponent
	result, err := rewrite.Apply(content, rewriteSpans, rewrite.Options{
		LookupSymbol: cfg.ImportSymbol(),
		IsMarkup:     isMarkup,
	})
	if err != nil {
		summary.AddFailure(path, "io", pipeerr.IO("rewrite", path, err))
		return
	}

	importOpts := rewrite.ImportOptions{LookupSymbol: cfg.ImportSymbol(), ImportPath: cfg.ImportPath()}
	if kind == dialect.KindComponent {
		if offset, found := component.ScriptOffset(result.Content); found {
			importOpts.IsComponent = true
			importOpts.ScriptOffset = offset
		}
	}
	finalContent, err := rewrite.EnsureImport(result.Content, importOpts)
	if err != nil {
		summary.AddFailure(path, "io", pipeerr.IO("import_inject", path, err))
		return
	}

	if !opts.DryRun {
		if err := os.WriteFile(path, finalContent, 0o644); err != nil {
			summary.AddFailure(path, "io", pipeerr.IO("write_file", path, err))
			return
		}

		// Catalog entries are committed only after the file's own bytes
		// are safely on disk (§9's resolution of the staging/ordering
		// open question): a crash here leaves the source ahead of the
		// catalog rather than the reverse.
		var entries []catalog.Entry
		for _, rec := range spans {
			if !rec.NeedWrite {
				continue
			}
			value := rec.Text
			if ov, ok := result.CatalogOverrides[rec.Key]; ok {
				value = ov
			}
			entries = append(entries, catalog.Entry{Key: rec.Key, Value: value})
		}
		if err := writer.WriteAll(entries); err != nil {
			summary.AddFailure(path, string(classOf(err)), err)
			return
		}
	}

	summary.AddFile(len(spans), created, reused)
}

func classOf(err error) pipeerr.Class {
	if pe, ok := err.(*pipeerr.Error); ok {
		return pe.Class
	}
	return pipeerr.ClassIO
}

// catalogAbsDir resolves the configured catalog directory against root,
// honoring an absolute kiwiDir (§6: "absolute or cwd-relative").
func catalogAbsDir(root string, cfg *config.Config) string {
	if filepath.IsAbs(cfg.KiwiDir) {
		return filepath.Join(cfg.KiwiDir, cfg.SrcLang)
	}
	return filepath.Join(root, cfg.CatalogDir())
}

func excludeExt(types []string, ext string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		if t != ext {
			out = append(out, t)
		}
	}
	return out
}
