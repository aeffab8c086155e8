package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/sinocarta/hanzi-extract/internal/config"
	"github.com/sinocarta/hanzi-extract/internal/diag"
	"github.com/sinocarta/hanzi-extract/internal/orchestrator"
	"github.com/sinocarta/hanzi-extract/internal/report"
	"github.com/sinocarta/hanzi-extract/internal/version"
	"github.com/sinocarta/hanzi-extract/internal/watch"
)

func loadConfigWithOverrides(c *cli.Context, root string) (*config.Config, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", root, err)
	}
	if c.Bool("validate-duplicate") {
		cfg.ValidateDuplicate = true
	}
	return cfg, nil
}

// resolveTarget absolutizes every comma-separated token of a CLI target
// argument (§4.1) and derives the project directory config/the catalog are
// resolved against: the first token itself if it's a directory, otherwise
// its parent directory.
func resolveTarget(raw string) (target, configRoot string, err error) {
	var abs []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		a, absErr := filepath.Abs(tok)
		if absErr != nil {
			return "", "", fmt.Errorf("failed to resolve target %q: %w", tok, absErr)
		}
		abs = append(abs, a)
	}
	if len(abs) == 0 {
		return "", "", fmt.Errorf("empty target")
	}

	configRoot = abs[0]
	if info, statErr := os.Stat(abs[0]); statErr == nil && !info.IsDir() {
		configRoot = filepath.Dir(abs[0])
	}
	return strings.Join(abs, ","), configRoot, nil
}

// stripLookupPrefix removes a leading "<symbol>." segment (symbol being the
// configured lookup symbol) from a user-supplied --prefix flag value, since
// keygen.Synthesizer expects a bare key prefix rather than a fully qualified
// lookup expression (§6). Any other dotted prefix is kept whole.
func stripLookupPrefix(prefix, symbol string) string {
	return strings.TrimPrefix(prefix, symbol+".")
}

func main() {
	app := &cli.App{
		Name:                   "hanzi-extract",
		Usage:                  "Extract hard-coded Chinese string literals into an i18n catalog and rewrite sources to reference it",
		Version:                version.FullInfo(),
		UseShortOptionHandling: true,
		Commands: []*cli.Command{
			extractCommand(),
			watchCommand(),
		},
		Action: func(c *cli.Context) error {
			return cli.ShowAppHelp(c)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:    "extract",
		Aliases: []string{"run"},
		Usage:   "Walk a project tree, extract Chinese literals, and rewrite sources in place",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Explicit key prefix for newly synthesized keys (accepts either 'common' or 'I18N.common')",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Compute and report the run's effect without writing any file or catalog change",
			},
			&cli.BoolFlag{
				Name:  "validate-duplicate",
				Usage: "Treat a key bound to two distinct values as a hard failure for the owning file",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"v"},
				Usage:   "Show diagnostic output on stderr",
			},
		},
		Action: func(c *cli.Context) error {
			raw := "."
			if c.NArg() > 0 {
				raw = c.Args().First()
			}
			target, configRoot, err := resolveTarget(raw)
			if err != nil {
				return err
			}

			if c.Bool("debug") {
				diag.SetOutput(os.Stderr)
			}

			cfg, err := loadConfigWithOverrides(c, configRoot)
			if err != nil {
				return err
			}

			summary, err := orchestrator.Run(context.Background(), orchestrator.Options{
				Root:   configRoot,
				Target: target,
				Config: cfg,
				Prefix: stripLookupPrefix(c.String("prefix"), cfg.ImportSymbol()),
				DryRun: c.Bool("dry-run"),
			})
			if err != nil {
				return err
			}

			summary.WriteTo(os.Stdout, configRoot)
			if len(summary.Failures) > 0 {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Watch a project tree and re-run extraction on each changed file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Explicit key prefix for newly synthesized keys (accepts either 'common' or 'I18N.common')",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"v"},
				Usage:   "Show diagnostic output on stderr",
			},
		},
		Action: func(c *cli.Context) error {
			root := "."
			if c.NArg() > 0 {
				root = c.Args().First()
			}
			absRoot, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("failed to resolve root path %q: %w", root, err)
			}

			if c.Bool("debug") {
				diag.SetOutput(os.Stderr)
			}

			cfg, err := loadConfigWithOverrides(c, absRoot)
			if err != nil {
				return err
			}

			opts := orchestrator.Options{
				Root:   absRoot,
				Config: cfg,
				Prefix: stripLookupPrefix(c.String("prefix"), cfg.ImportSymbol()),
			}
			sess, err := orchestrator.NewSession(opts)
			if err != nil {
				return err
			}

			w, err := watch.New(absRoot, cfg, func(path string) {
				var summary report.Summary
				sess.ProcessFile(context.Background(), path, &summary)
				summary.WriteTo(os.Stdout, absRoot)
			})
			if err != nil {
				return fmt.Errorf("failed to start watcher: %w", err)
			}
			if err := w.Start(); err != nil {
				return fmt.Errorf("failed to start watcher: %w", err)
			}
			defer w.Stop()

			fmt.Fprintf(os.Stdout, "watching %s for changes (ctrl-c to stop)\n", absRoot)

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			<-sigChan
			return nil
		},
	}
}
