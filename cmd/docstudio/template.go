package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/flanksource/docstudio"
	"github.com/flanksource/docstudio/template"
	"github.com/spf13/cobra"
)

func templateManager() *template.Manager {
	return template.NewManager(configManager().TemplatePath())
}

func newTemplateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "List and manage document templates",
	}

	cmd.AddCommand(newTemplateListCommand())
	cmd.AddCommand(newTemplateInfoCommand())
	cmd.AddCommand(newTemplateCreateCommand())
	cmd.AddCommand(newTemplateDeleteCommand())
	cmd.AddCommand(newTemplateExportCommand())
	cmd.AddCommand(newTemplateImportCommand())

	return cmd
}

func newTemplateListCommand() *cobra.Command {
	var filter template.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom templates",
		Example: `  docstudio template list
  docstudio template list --format pptx
  docstudio template list --tag dashboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := templateManager().List(filter)
			if err != nil {
				return err
			}
			sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

			if docstudio.Flags.OutputOptions.JSON {
				out, err := json.MarshalIndent(infos, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			for _, info := range infos {
				kind := "custom"
				if info.Builtin {
					kind = "builtin"
				}
				fmt.Printf("%-28s %-5s %-8s %s\n", info.Name, info.Format, kind, info.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Format, "format", "", "Only templates for this format")
	cmd.Flags().StringVar(&filter.Tag, "tag", "", "Only templates carrying this tag")

	return cmd
}

func newTemplateInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <name>",
		Short: "Show one template's metadata and expected data fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := templateManager().Get(args[0])
			if err != nil {
				return err
			}
			schema := template.DataSchema(args[0])

			if docstudio.Flags.OutputOptions.JSON {
				out, err := json.MarshalIndent(map[string]any{
					"template": info,
					"data":     schema,
				}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Printf("Name:        %s\n", info.Name)
			if info.DisplayName != "" {
				fmt.Printf("Display:     %s\n", info.DisplayName)
			}
			fmt.Printf("Format:      %s\n", info.Format)
			fmt.Printf("Engine:      %s\n", info.Engine)
			if info.Description != "" {
				fmt.Printf("Description: %s\n", info.Description)
			}
			if len(info.ColorSchemes) > 0 {
				fmt.Printf("Schemes:     %s\n", strings.Join(info.ColorSchemes, ", "))
			}
			if len(info.Tags) > 0 {
				fmt.Printf("Tags:        %s\n", strings.Join(info.Tags, ", "))
			}
			if len(schema) > 0 {
				fmt.Println("Data fields:")
				keys := make([]string, 0, len(schema))
				for k := range schema {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Printf("  %-16s %s\n", k, schema[k])
				}
			}
			return nil
		},
	}
}

func newTemplateCreateCommand() *cobra.Command {
	var format, description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Scaffold a custom template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := templateManager().Create(args[0], format, description)
			if err != nil {
				return err
			}
			fmt.Printf("Created template at %s\n", dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "pdf", "Output format of the new template")
	cmd.Flags().StringVar(&description, "description", "", "Template description")

	return cmd
}

func newTemplateDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a custom template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := templateManager().Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted template %s\n", args[0])
			return nil
		},
	}
}

func newTemplateExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <name> <archive.zip>",
		Short: "Export a custom template as a zip archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := templateManager().Export(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Exported %s to %s\n", args[0], args[1])
			return nil
		},
	}
}

func newTemplateImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <archive.zip>",
		Short: "Import a template archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := templateManager().Import(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported template %s\n", name)
			return nil
		},
	}
}
