package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/flanksource/docstudio"
	"github.com/flanksource/docstudio/generator"
	"github.com/flanksource/docstudio/preflight"
	"github.com/flanksource/docstudio/shutdown"
	"github.com/spf13/cobra"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// configDir is the --config override for the preferences directory.
var configDir string

func main() {
	go shutdown.WaitForSignal()

	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		shutdown.Shutdown()
		os.Exit(1)
	}
	shutdown.Shutdown()
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "docstudio",
		Short: "Generate styled documents (PDF, PPTX, DOCX, XLSX, HTML) from templates and JSON data",
		Long: `Doc Studio turns a format, a template name and JSON data into a styled
document. It ships built-in templates for presentations, reports, proposals
and spreadsheets, supports custom template scripts, and runs post-generation
preflight checks on the output.`,
		Example: `  docstudio generate pptx business_modern deck.pptx --data '{"title": "Q3 Review"}'
  docstudio generate pdf whitepaper report.pdf --data-file report.json
  docstudio template list --format pptx
  docstudio preflight deck.pptx --checks metadata,filesize`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			docstudio.Flags.UseFlags()
		},
	}

	docstudio.BindAllFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "Configuration directory (default ~/.config/doc-studio)")

	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newBatchCommand())
	rootCmd.AddCommand(newTemplateCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newPreflightCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newInstallCommand())
	rootCmd.AddCommand(newUninstallCommand())
	rootCmd.AddCommand(newStatusCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func configManager() *docstudio.ConfigManager {
	return docstudio.NewConfigManager(configDir)
}

// newGenerator wires the generation cache according to the global flags and
// registers its teardown.
func newGenerator(cfg *docstudio.ConfigManager) (*generator.Generator, error) {
	cache, err := generator.NewCache(generator.CacheConfig{
		TTL: docstudio.Flags.GetEffectiveTTL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open generation cache: %w", err)
	}
	shutdown.AddHookWithPriority("generation cache", shutdown.PriorityCache, func() {
		cache.Close()
	})
	return generator.New(cfg, generator.Options{
		ScriptTimeout: docstudio.Flags.ScriptTimeout,
		Cache:         cache,
	}), nil
}

func newGenerateCommand() *cobra.Command {
	var dataJSON, dataFile string
	var engine, language, colorScheme, pageSize string
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "generate <format> <template> <output>",
		Short: "Generate a document from a template and JSON data",
		Example: `  docstudio generate pptx business_modern deck.pptx --data '{"title": "Q3 Review"}'
  docstudio generate docx proposal proposal.docx --data-file proposal.json
  docstudio generate xlsx excel_dashboard dashboard.xlsx --language ja`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := generator.ParseFormat(args[0])
			if err != nil {
				return err
			}

			data, err := loadData(dataJSON, dataFile)
			if err != nil {
				return err
			}

			cfg := configManager()
			outputPath := args[2]
			if filepath.Dir(outputPath) == "." && !filepath.IsAbs(outputPath) {
				outputPath = filepath.Join(cfg.OutputPath(string(format)), outputPath)
			}

			gen, err := newGenerator(cfg)
			if err != nil {
				return err
			}

			path, err := gen.Generate(cmd.Context(), generator.Request{
				Format:      format,
				Template:    args[1],
				OutputPath:  outputPath,
				Data:        data,
				Engine:      generator.Engine(engine),
				Language:    language,
				ColorScheme: colorScheme,
				PageSize:    pageSize,
			})
			if err != nil {
				return err
			}
			fmt.Println(path)

			if skipPreflight || !cfg.PreflightEnabled() {
				return nil
			}
			return runPreflight(path, cfg.PreflightChecks(), false, docstudio.Flags.OutputOptions.JSON)
		},
	}

	cmd.Flags().StringVar(&dataJSON, "data", "", "Inline JSON data for the template")
	cmd.Flags().StringVar(&dataFile, "data-file", "", "Path to a JSON data file")
	cmd.MarkFlagsMutuallyExclusive("data", "data-file")
	cmd.Flags().StringVar(&engine, "engine", "", "Rendering engine override (chromium, wkhtmltopdf, maroto, gofpdf, ...)")
	cmd.Flags().StringVar(&language, "language", "", "Content language hint (e.g. en, ja)")
	cmd.Flags().StringVar(&colorScheme, "color-scheme", "", "Color scheme override for templates that support one")
	cmd.Flags().StringVar(&pageSize, "page-size", "", "Page size for paged formats (e.g. A4, Letter)")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip post-generation preflight checks")

	return cmd
}

func loadData(dataJSON, dataFile string) (map[string]any, error) {
	var raw []byte
	switch {
	case dataJSON != "":
		raw = []byte(dataJSON)
	case dataFile != "":
		var err error
		raw, err = os.ReadFile(dataFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read data file: %w", err)
		}
	default:
		return nil, nil
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON data: %w", err)
	}
	return data, nil
}

func newBatchCommand() *cobra.Command {
	var opts generator.BatchOptions

	cmd := &cobra.Command{
		Use:   "batch <manifest.json>",
		Short: "Generate multiple documents from a batch manifest",
		Long: `Read a JSON manifest holding a list of generation requests and render
them all, optionally in parallel. The manifest is either a bare array of
requests or an object with a "documents" array.`,
		Example: `  docstudio batch monthly-reports.json --parallel --max-concurrent 8`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requests, err := generator.LoadBatch(args[0])
			if err != nil {
				return err
			}

			gen, err := newGenerator(configManager())
			if err != nil {
				return err
			}

			summary := gen.Batch(cmd.Context(), requests, opts)
			if docstudio.Flags.OutputOptions.JSON {
				out, err := json.MarshalIndent(summary, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
			} else {
				for _, r := range summary.Results {
					if r.Err != nil {
						fmt.Printf("FAIL %s %s: %v\n", r.Request.Format, r.Request.Template, r.Err)
					} else {
						fmt.Printf("OK   %s (%s)\n", r.OutputPath, r.Duration.Round(time.Millisecond))
					}
				}
				fmt.Printf("%d succeeded, %d failed\n", summary.Success, summary.Failed)
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d documents failed", summary.Failed, summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Parallel, "parallel", false, "Render documents concurrently")
	cmd.Flags().IntVar(&opts.MaxConcurrent, "max-concurrent", 4, "Concurrency limit when --parallel is set")
	cmd.Flags().BoolVar(&opts.StopOnError, "stop-on-error", false, "Abort remaining documents after the first failure")

	return cmd
}

// runPreflight executes the checks and prints findings; an error-severity
// finding makes the command fail.
func runPreflight(path string, checks []string, fix, jsonOut bool) error {
	checker, err := preflight.New(checks...)
	if err != nil {
		return err
	}
	summary, err := checker.Run(path)
	if err != nil {
		return err
	}

	if fix && summary.Format == "pdf" {
		if err := preflight.FixPDFMetadata(path, filepath.Base(path), ""); err != nil {
			return fmt.Errorf("failed to fix PDF metadata: %w", err)
		}
		summary, err = checker.Run(path)
		if err != nil {
			return err
		}
	}

	if jsonOut {
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	} else {
		for _, r := range summary.Results {
			fmt.Printf("[%s] %s: %s\n", r.Severity, r.Check, r.Message)
			if r.FixSuggestion != "" {
				fmt.Printf("        fix: %s\n", r.FixSuggestion)
			}
		}
	}

	if !summary.CanProceed {
		return fmt.Errorf("preflight found %d error(s) in %s", summary.Counts[preflight.Error], path)
	}
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("docstudio %s (commit: %s, built: %s, go: %s)\n",
				version, commit, date, runtime.Version())
		},
	}
}
