package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/moodcheck/internal/questionnaire"
	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the questionnaire with option ordinals",
	RunE: func(cmd *cobra.Command, args []string) error {
		qn, err := questionnaire.Load()
		if err != nil {
			return fmt.Errorf("load questionnaire: %w", err)
		}
		printQuestionnaire(cmd.OutOrStdout(), qn)
		return nil
	},
}

func printQuestionnaire(w io.Writer, qn *questionnaire.Questionnaire) {
	fmt.Fprintf(w, "Questionnaire %s (%d questions)\n", qn.Version, qn.Len())

	for i, q := range qn.Questions {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%2d. %s  [%s, %s]\n", i+1, q.Prompt, q.ID, strings.ToLower(q.Kind.DisplayName()))

		mapping := q.Mapping()
		for _, opt := range q.Options {
			var marks []string
			if opt == q.Default {
				marks = append(marks, "default")
			}
			if opt == q.Sentinel {
				mark := "none"
				if q.Exclusive {
					mark = "none, exclusive"
				}
				marks = append(marks, mark)
			}
			suffix := ""
			if len(marks) > 0 {
				suffix = "  (" + strings.Join(marks, "; ") + ")"
			}

			if q.IsMulti() {
				fmt.Fprintf(w, "      - %s%s\n", opt, suffix)
				continue
			}
			ord, _ := mapping.Ordinal(opt)
			fmt.Fprintf(w, "    %2d  %s%s\n", ord, opt, suffix)
		}
	}
}
