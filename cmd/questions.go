package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberguard/internal/quiz"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Inspect the quiz question bank",
}

var questionsValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a question bank file (the built-in bank when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var bank []quiz.Question
		source := "built-in bank"
		if len(args) == 0 {
			bank = quiz.DefaultBank()
		} else {
			source = args[0]
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			bank, err = quiz.ParseBank(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d questions\n", source, len(bank))
		if len(bank) < quiz.SessionSize {
			return fmt.Errorf("%s: need at least %d questions for a session", source, quiz.SessionSize)
		}
		fmt.Fprintln(out, "OK")
		return nil
	},
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in questions",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for i, q := range quiz.DefaultBank() {
			fmt.Fprintf(out, "%3d. %s\n", i+1, q.Text)
			fmt.Fprintf(out, "     answer: %s\n", q.CorrectOption())
		}
	},
}

func init() {
	questionsCmd.AddCommand(questionsValidateCmd)
	questionsCmd.AddCommand(questionsListCmd)
}
