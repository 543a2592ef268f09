package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete stored assessments and drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if !yes {
			fmt.Fprint(cmd.OutOrStdout(), "Delete all stored assessments and drafts? [y/N] ")
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		ctx := context.Background()
		n, err := s.AssessmentRepo().DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("delete assessments: %w", err)
		}
		if err := s.DraftRepo().Clear(ctx); err != nil {
			return fmt.Errorf("clear drafts: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d assessments.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
