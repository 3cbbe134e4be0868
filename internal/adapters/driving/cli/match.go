package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
)

var matchJSON bool

var matchCmd = &cobra.Command{
	Use:   "match [query]",
	Short: "Match a request to a template",
	Long: `Matches a free-text description of the document you need against
the template library and prints the best candidates.`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	if draftService == nil {
		return errors.New("draft service not configured")
	}

	// JSON output is for scripts, which want the single final result
	// rather than a status narrative.
	if matchJSON {
		result, err := draftService.Match(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("match failed: %w", err)
		}
		return outputJSON(cmd, result)
	}

	events, err := draftService.MatchEvents(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	for ev := range events {
		switch {
		case ev.Status == domain.StatusSuccess:
			result := domain.MatchResult{Top: ev.Match, Alternatives: ev.Alternatives, Found: ev.Match != nil}
			printCandidates(cmd, result.Candidates())
			return nil

		case ev.Status == domain.StatusNoTemplates:
			printNoMatch(cmd)
			return nil

		case ev.Status == domain.StatusError:
			return fmt.Errorf("match failed: %s", ev.Message)

		default:
			cmd.Println(ev.Status.Progress())
		}
	}

	printNoMatch(cmd)
	return nil
}

func printNoMatch(cmd *cobra.Command) {
	cmd.Println("No matching template found.")
	cmd.Println("Try rephrasing your request, or upload a document with 'lexdraft upload'.")
}

func printCandidates(cmd *cobra.Command, candidates []domain.TemplateMatch) {
	if len(candidates) == 0 {
		printNoMatch(cmd)
		return
	}

	cmd.Println("Candidates:")
	cmd.Println()
	for i, c := range candidates {
		cmd.Printf("  [%d] %s (%.0f%%)\n", i+1, c.Title, c.Confidence*100)
		cmd.Printf("      ID: %s\n", c.TemplateID)
		if c.Reason != "" {
			cmd.Printf("      %s\n", c.Reason)
		}
		cmd.Println()
	}
}
