package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/khrees2412/cvforge/internal/extract"
	"github.com/khrees2412/cvforge/internal/lang"
	"github.com/khrees2412/cvforge/internal/templates"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:     "templates",
	Aliases: []string{"template"},
	Short:   "Manage base CV templates",
	Long:    "List, save and delete the named base CVs used instead of a profile",
}

var listTemplatesCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := mustApp(cmd)
		if err != nil {
			return err
		}

		all, err := a.Templates.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list templates: %w", err)
		}
		if len(all) == 0 {
			fmt.Println("No templates saved. Import one with 'cvforge templates import <file>'")
			return nil
		}

		fmt.Println(titleStyle.Render("Saved Templates"))
		for i, name := range templates.Names(all) {
			fmt.Printf("%d. %s %s\n", i+1, name, valueStyle.Render(fmt.Sprintf("(%d chars)", len(all[name]))))
		}
		return nil
	},
}

var showTemplateCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a saved template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := mustApp(cmd)
		if err != nil {
			return err
		}

		content, err := a.Templates.Get(cmd.Context(), args[0])
		if errors.Is(err, templates.ErrNotFound) {
			return fmt.Errorf("template %q not found", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Println(content)
		return nil
	},
}

var importTemplateCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Save the text of a CV file as a template",
	Args:  cobra.ExactArgs(1),
	Example: `  cvforge templates import ~/Documents/cv.pdf
  cvforge templates import ./cv.docx --name backend`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := mustApp(cmd)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			base := filepath.Base(args[0])
			name = strings.TrimSuffix(base, filepath.Ext(base))
		}

		text, err := extract.File(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("no text found in %s", args[0])
		}

		if err := a.Templates.Save(cmd.Context(), name, text); err != nil {
			return fmt.Errorf("save template: %w", err)
		}
		fmt.Printf("✓ Template saved: %s\n", name)
		return nil
	},
}

var deleteTemplateCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := mustApp(cmd)
		if err != nil {
			return err
		}

		err = a.Templates.Delete(cmd.Context(), args[0])
		if errors.Is(err, templates.ErrNotFound) {
			return fmt.Errorf("template %q not found", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Printf("✓ Template deleted: %s\n", args[0])
		return nil
	},
}

var builtinTemplateCmd = &cobra.Command{
	Use:   "builtin [language]",
	Short: "Print a built-in template (english or polish)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := mustApp(cmd)
		if err != nil {
			return err
		}

		l := lang.English
		if len(args) == 1 {
			var ok bool
			if l, ok = lang.Parse(args[0]); !ok {
				return fmt.Errorf("unknown language %q", args[0])
			}
		}

		content, err := a.Builtins.Load(l)
		if err != nil {
			return err
		}
		fmt.Println(content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(listTemplatesCmd)
	templatesCmd.AddCommand(showTemplateCmd)
	templatesCmd.AddCommand(importTemplateCmd)
	templatesCmd.AddCommand(deleteTemplateCmd)
	templatesCmd.AddCommand(builtinTemplateCmd)

	importTemplateCmd.Flags().String("name", "", "Template name (defaults to the file name)")
}
