package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/moodcheck/internal/assessment"
	"github.com/abhisek/moodcheck/internal/questionnaire"
	"github.com/abhisek/moodcheck/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect stored assessments",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		label, _ := cmd.Flags().GetString("label")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rows, err := s.AssessmentRepo().List(context.Background(), store.QueryOpts{Limit: limit, Label: label})
		if err != nil {
			return fmt.Errorf("query assessments: %w", err)
		}
		if len(rows) == 0 {
			fmt.Println("No assessments found.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-8s  %-10s  %s\n", "ID", "Timestamp", "Label", "Classifier", "Warnings")
		fmt.Println(strings.Repeat("─", 90))
		for _, row := range rows {
			res, err := assessment.FromStored(row)
			if err != nil {
				return err
			}
			fmt.Printf("%-36s  %-19s  %-8s  %-10s  %d\n",
				res.ID,
				res.Timestamp.Local().Format("2006-01-02 15:04:05"),
				res.Label,
				res.Classifier,
				len(res.Warnings),
			)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View one assessment with its answers and features",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		row, err := s.AssessmentRepo().Get(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("get assessment: %w", err)
		}
		if row == nil {
			return fmt.Errorf("assessment %s not found", args[0])
		}
		res, err := assessment.FromStored(*row)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printResult(out, res)

		sep := strings.Repeat("─", 60)
		fmt.Fprintln(out)
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, "ANSWERS")
		fmt.Fprintln(out, sep)
		qn, err := questionnaire.Load()
		if err != nil {
			return fmt.Errorf("load questionnaire: %w", err)
		}
		for _, id := range qn.IDs() {
			if a, ok := res.Responses[id]; ok {
				fmt.Fprintf(out, "%-28s  %s\n", id, strings.Join(a.Selected(), ", "))
			}
		}

		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, "FEATURES")
		fmt.Fprintln(out, sep)
		for _, col := range res.Features.Columns() {
			v, _ := res.Features.Value(col)
			fmt.Fprintf(out, "%-28s  %g\n", col, v)
		}
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of assessments to show")
	historyListCmd.Flags().StringP("label", "l", "", "Only show assessments with this label")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
}
