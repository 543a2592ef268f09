package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/moodcheck/internal/assessment"
	"github.com/abhisek/moodcheck/internal/encoder"
	"github.com/abhisek/moodcheck/internal/export"
	"github.com/abhisek/moodcheck/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export assessment history to an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		label, _ := cmd.Flags().GetString("label")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rows, err := s.AssessmentRepo().List(context.Background(), store.QueryOpts{Label: label})
		if err != nil {
			return fmt.Errorf("query assessments: %w", err)
		}

		results := make([]*assessment.Result, 0, len(rows))
		for _, row := range rows {
			res, err := assessment.FromStored(row)
			if err != nil {
				return err
			}
			results = append(results, res)
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		if err := export.WriteWorkbook(f, results, encoder.Columns()); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", out, err)
		}

		fmt.Printf("Exported %d assessments to %s\n", len(results), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "moodcheck.xlsx", "Output workbook path")
	exportCmd.Flags().StringP("label", "l", "", "Only export assessments with this label")
}
