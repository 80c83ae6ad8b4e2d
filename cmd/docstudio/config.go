package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write doc-studio preferences",
	}

	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigResetCommand())
	cmd.AddCommand(newConfigValidateCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting by dot path",
		Example: `  docstudio config get output.pdf_dir
  docstudio config get preflight.enabled`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := configManager().Get(args[0])
			if value == nil {
				return fmt.Errorf("unknown setting: %s", args[0])
			}
			out, err := json.Marshal(value)
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting by dot path",
		Example: `  docstudio config set output.pdf_dir ~/Documents/pdf
  docstudio config set preflight.enabled false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value any
			if err := json.Unmarshal([]byte(args[1]), &value); err != nil {
				// bare strings are accepted without quoting
				value = args[1]
			}
			return configManager().Set(args[0], value)
		},
	}
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the full configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(configManager().Show())
			return nil
		},
	}
}

func newConfigResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := configManager().Reset(); err != nil {
				return err
			}
			fmt.Println("Configuration reset to defaults")
			return nil
		},
	}
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration for problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			problems := configManager().Validate()
			if len(problems) == 0 {
				fmt.Println("Configuration is valid")
				return nil
			}
			for _, p := range problems {
				fmt.Printf("  - %s\n", p)
			}
			return fmt.Errorf("configuration has %d problem(s)", len(problems))
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a project-local configuration, or save global defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := configManager()
			if global {
				if err := m.Save(m.Load()); err != nil {
					return err
				}
				fmt.Println("Saved global configuration")
				return nil
			}
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			path, err := m.CreateProjectConfig(cwd)
			if err != nil {
				return err
			}
			fmt.Printf("Created project configuration at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Write the global configuration instead of a project one")

	return cmd
}
