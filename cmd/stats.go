package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how often each emotional state was assessed",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		counts, err := s.AssessmentRepo().CountByLabel(context.Background())
		if err != nil {
			return fmt.Errorf("count assessments: %w", err)
		}
		if len(counts) == 0 {
			fmt.Println("No assessments recorded yet.")
			return nil
		}

		var total int
		for _, c := range counts {
			total += c.Count
		}

		fmt.Printf("%-16s  %6s  %7s\n", "Label", "Count", "Share")
		fmt.Println(strings.Repeat("─", 33))
		for _, c := range counts {
			share := 100 * float64(c.Count) / float64(total)
			fmt.Printf("%-16s  %6d  %6.1f%%\n", c.Label, c.Count, share)
		}
		fmt.Println(strings.Repeat("─", 33))
		fmt.Printf("%-16s  %6d\n", "TOTAL", total)
		return nil
	},
}
