package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/flanksource/docstudio"
	"github.com/flanksource/docstudio/preflight"
	"github.com/flanksource/docstudio/skill"
	"github.com/spf13/cobra"
)

func newPreflightCommand() *cobra.Command {
	var checks []string
	var fix bool

	cmd := &cobra.Command{
		Use:   "preflight <file>",
		Short: "Run quality checks against a generated document",
		Long: `Inspect a generated PDF, PPTX, DOCX, XLSX or HTML file for common
problems: missing metadata, oversized files, absent headings, images
without alt text. With --fix, missing PDF metadata is written in place.`,
		Example: `  docstudio preflight report.pdf
  docstudio preflight deck.pptx --checks metadata,filesize --json
  docstudio preflight report.pdf --fix`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreflight(args[0], checks, fix, docstudio.Flags.OutputOptions.JSON)
		},
	}

	names := make([]string, 0, len(preflight.SupportedChecks))
	for name := range preflight.SupportedChecks {
		names = append(names, name)
	}
	sort.Strings(names)
	cmd.Flags().StringSliceVar(&checks, "checks", nil,
		"Checks to run (default all): "+strings.Join(names, ", "))
	cmd.Flags().BoolVar(&fix, "fix", false, "Apply available fixes (PDF metadata)")

	return cmd
}

func newInspectCommand() *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "inspect [dir]",
		Short: "Summarize a project's stack, documents and brand assets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			inspector := docstudio.NewInspector()
			if maxDepth > 0 {
				inspector.MaxDepth = maxDepth
			}
			info, err := inspector.Inspect(root)
			if err != nil {
				return err
			}

			if docstudio.Flags.OutputOptions.JSON {
				out, err := info.JSON()
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			}
			fmt.Println(info.Pretty())
			return nil
		},
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Directory depth limit (default 4)")

	return cmd
}

func skillInstaller(bundle string) (*skill.Installer, error) {
	if bundle == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		bundle = cwd
	}
	return &skill.Installer{BundleDir: bundle}, nil
}

func toolNames() string {
	names := make([]string, 0, len(skill.Tools))
	for _, t := range skill.Tools {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

func newInstallCommand() *cobra.Command {
	var bundle string
	var symlink bool

	cmd := &cobra.Command{
		Use:   "install [tool]",
		Short: "Install the skill bundle into a CLI tool (or all of them)",
		Long: `Copy the skill bundle into the skills directory of a supported AI
coding assistant CLI. Without a tool argument, every supported tool is
targeted. Supported tools: ` + toolNames() + `.`,
		Example: `  docstudio install claude-code
  docstudio install codex --symlink
  docstudio install --bundle ./skill-bundle`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := skillInstaller(bundle)
			if err != nil {
				return err
			}

			var tools []string
			if len(args) == 1 {
				tools = args
			} else {
				for _, t := range skill.Tools {
					tools = append(tools, t.Name)
				}
			}

			var failed int
			for _, tool := range tools {
				target, err := in.Install(tool, symlink)
				if err != nil {
					fmt.Printf("NG %-12s %v\n", tool, err)
					failed++
					continue
				}
				fmt.Printf("OK %-12s %s\n", tool, target)
			}
			if failed > 0 {
				return fmt.Errorf("%d installation(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bundle, "bundle", "", "Skill bundle directory (default current directory)")
	cmd.Flags().BoolVarP(&symlink, "symlink", "s", false, "Create a symlink instead of copying (for development)")

	return cmd
}

func newUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall [tool]",
		Short: "Remove the skill bundle from a CLI tool (or all of them)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := &skill.Installer{}

			var tools []string
			if len(args) == 1 {
				tools = args
			} else {
				for _, t := range skill.Tools {
					tools = append(tools, t.Name)
				}
			}

			for _, tool := range tools {
				removed, err := in.Uninstall(tool)
				switch {
				case err != nil:
					return err
				case removed:
					fmt.Printf("Uninstalled from %s\n", tool)
				default:
					fmt.Printf("Not installed for %s\n", tool)
				}
			}
			return nil
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show skill installation status for every supported tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := &skill.Installer{}
			statuses, err := in.Status()
			if err != nil {
				return err
			}
			for _, st := range statuses {
				state := "not installed"
				switch {
				case st.Installed && st.Symlinked:
					state = "installed (symlink)"
				case st.Installed:
					state = "installed"
				}
				fmt.Printf("%-20s %-20s %s\n", st.Tool.DisplayName, state, st.Path)
			}
			return nil
		},
	}
}
