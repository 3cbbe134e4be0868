package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
)

var (
	draftQuery   string
	draftAnswers []string
	draftOutput  string
)

var questionsCmd = &cobra.Command{
	Use:   "questions [template-id]",
	Short: "Show the questions a template needs answered",
	Long: `Fetches the question set for a template. Pass the original request
with --query so the backend can pre-fill answers it can infer.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuestions,
}

var draftCmd = &cobra.Command{
	Use:   "draft [template-id]",
	Short: "Generate a draft from a template",
	Long: `Generates a draft document from a template and a set of answers.

Answers are passed with repeated --answer key=value flags. When run in
a terminal with no answers given, missing questions are prompted for
interactively. Boolean answers accept true/false; numeric answers are
parsed as numbers.`,
	Args: cobra.ExactArgs(1),
	RunE: runDraft,
}

func init() {
	questionsCmd.Flags().StringVarP(&draftQuery, "query", "q", "", "original request for answer pre-filling")
	draftCmd.Flags().StringVarP(&draftQuery, "query", "q", "", "original request for answer pre-filling")
	draftCmd.Flags().StringArrayVarP(&draftAnswers, "answer", "a", nil, "answer as key=value (repeatable)")
	draftCmd.Flags().StringVarP(&draftOutput, "output", "o", "", "write the draft markdown to a file")
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(draftCmd)
}

func runQuestions(cmd *cobra.Command, args []string) error {
	if draftService == nil {
		return errors.New("draft service not configured")
	}

	qs, err := draftService.Questions(cmd.Context(), args[0], draftQuery)
	if err != nil {
		return fmt.Errorf("fetch questions failed: %w", err)
	}

	title := qs.TemplateTitle
	if title == "" {
		title = qs.TemplateID
	}
	cmd.Printf("Questions for %s:\n\n", title)
	for _, q := range qs.Questions {
		printQuestion(cmd, q)
		if v, ok := qs.Prefilled[q.Key]; ok {
			cmd.Printf("      pre-filled: %v\n", v)
		}
	}
	return nil
}

func runDraft(cmd *cobra.Command, args []string) error {
	if draftService == nil {
		return errors.New("draft service not configured")
	}

	templateID := args[0]
	qs, err := draftService.Questions(cmd.Context(), templateID, draftQuery)
	if err != nil {
		return fmt.Errorf("fetch questions failed: %w", err)
	}

	answers := qs.Prefilled.Clone()
	if answers == nil {
		answers = domain.AnswerMap{}
	}
	if err := applyAnswerFlags(answers, qs.Questions, draftAnswers); err != nil {
		return err
	}

	// Prompt for anything still missing when attached to a terminal.
	if missing := missingRequired(qs.Questions, answers); len(missing) > 0 {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("%w: missing answers for %v", domain.ErrInvalidInput, missing)
		}
		if err := promptAnswers(cmd, qs.Questions, answers); err != nil {
			return err
		}
	}

	draft, err := draftService.Generate(cmd.Context(), templateID, answers, draftQuery)
	if err != nil {
		return fmt.Errorf("draft generation failed: %w", err)
	}

	if draftOutput != "" {
		if err := os.WriteFile(draftOutput, []byte(draft.Markdown), 0600); err != nil {
			return fmt.Errorf("write draft: %w", err)
		}
		cmd.Printf("Draft written to %s\n", draftOutput)
	} else {
		cmd.Println(draft.Markdown)
	}

	if draft.HasMissing {
		cmd.Printf("\nWarning: the draft has unfilled variables: %v\n", draft.MissingVariables)
	}
	return nil
}

// applyAnswerFlags parses key=value flags into the answer map, coercing
// values to the question's declared type.
func applyAnswerFlags(answers domain.AnswerMap, questions []domain.Question, flags []string) error {
	for _, raw := range flags {
		key, value, ok := strings.Cut(raw, "=")
		if !ok {
			return fmt.Errorf("%w: answer %q is not key=value", domain.ErrInvalidInput, raw)
		}
		answers[key] = coerceAnswer(questionType(questions, key), value)
	}
	return nil
}

// questionType returns the declared type for a key, defaulting to
// string for unknown keys.
func questionType(questions []domain.Question, key string) domain.QuestionType {
	for _, q := range questions {
		if q.Key == key {
			return q.Type
		}
	}
	return domain.TypeString
}

// coerceAnswer converts raw CLI input to the value type the backend
// expects. Unparseable input is passed through as a string so
// validation produces a useful message.
func coerceAnswer(t domain.QuestionType, raw string) any {
	switch t {
	case domain.TypeNumber:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
	case domain.TypeBoolean:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}

// missingRequired lists required questions without an answer.
func missingRequired(questions []domain.Question, answers domain.AnswerMap) []string {
	var missing []string
	for _, q := range questions {
		if !q.Required {
			continue
		}
		if v, ok := answers[q.Key]; !ok || v == nil || v == "" {
			missing = append(missing, q.Key)
		}
	}
	return missing
}

// promptAnswers asks for every unanswered question on stdin.
func promptAnswers(cmd *cobra.Command, questions []domain.Question, answers domain.AnswerMap) error {
	reader := bufio.NewReader(os.Stdin)

	for _, q := range questions {
		if v, ok := answers[q.Key]; ok && v != nil && v != "" {
			continue
		}

		cmd.Printf("%s", q.Prompt)
		if q.Example != "" {
			cmd.Printf(" (e.g. %s)", q.Example)
		}
		if len(q.Enum) > 0 {
			cmd.Printf(" [%s]", strings.Join(q.Enum, "/"))
		}
		cmd.Print(": ")

		input := readLine(reader)
		if input == "" {
			if q.Required {
				return fmt.Errorf("%w: %q is required", domain.ErrInvalidInput, q.Key)
			}
			continue
		}
		answers[q.Key] = coerceAnswer(q.Type, input)
	}
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
