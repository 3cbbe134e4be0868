package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
)

var (
	templatesSkip  int
	templatesLimit int
	templatesJSON  bool
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage the template library",
	Long:  `List, inspect and delete templates stored on the drafting backend.`,
	RunE:  runTemplatesList,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	RunE:  runTemplatesList,
}

var templatesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show template detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesShow,
}

var templatesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesDelete,
}

func init() {
	templatesCmd.PersistentFlags().IntVar(&templatesSkip, "skip", 0, "number of templates to skip")
	templatesCmd.PersistentFlags().IntVarP(&templatesLimit, "limit", "n", 20, "maximum number of templates")
	templatesCmd.PersistentFlags().BoolVar(&templatesJSON, "json", false, "output as JSON")
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesShowCmd)
	templatesCmd.AddCommand(templatesDeleteCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runTemplatesList(cmd *cobra.Command, _ []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	page, err := templateService.List(cmd.Context(), templatesSkip, templatesLimit)
	if err != nil {
		return fmt.Errorf("list templates failed: %w", err)
	}

	if templatesJSON {
		return outputJSON(cmd, page)
	}

	if len(page.Items) == 0 {
		cmd.Println("No templates found.")
		return nil
	}

	cmd.Printf("Templates (%d-%d of %d):\n\n", page.Skip+1, page.Skip+page.Returned, page.Total)
	for i := range page.Items {
		item := &page.Items[i]
		cmd.Printf("  %s  %s\n", item.ID, item.Title)
		if item.DocType != "" || item.Jurisdiction != "" {
			cmd.Printf("      %s %s\n", item.DocType, item.Jurisdiction)
		}
	}
	return nil
}

func runTemplatesShow(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	tpl, err := templateService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get template failed: %w", err)
	}

	if templatesJSON {
		return outputJSON(cmd, tpl)
	}

	cmd.Printf("%s\n", tpl.Title)
	cmd.Printf("  ID:           %s\n", tpl.ID)
	if tpl.DocType != "" {
		cmd.Printf("  Type:         %s\n", tpl.DocType)
	}
	if tpl.Jurisdiction != "" {
		cmd.Printf("  Jurisdiction: %s\n", tpl.Jurisdiction)
	}
	if len(tpl.Variables) > 0 {
		cmd.Println("  Variables:")
		for _, v := range tpl.Variables {
			printQuestion(cmd, v)
		}
	}
	return nil
}

func runTemplatesDelete(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	if err := templateService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete template failed: %w", err)
	}
	cmd.Printf("Deleted template %s\n", args[0])
	return nil
}

// printQuestion renders one variable line for template and question
// listings.
func printQuestion(cmd *cobra.Command, q domain.Question) {
	required := ""
	if q.Required {
		required = " (required)"
	}
	cmd.Printf("    %s%s - %s\n", q.Key, required, q.Prompt)
}

// outputJSON renders any value as indented JSON.
func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
