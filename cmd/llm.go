package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/moodcheck/internal/llm"
	"github.com/abhisek/moodcheck/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect calls made by the LLM classifier",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")
		failedOnly, _ := cmd.Flags().GetBool("failed")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		events, err := s.EventRepo().QueryLLMEvents(context.Background(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if failedOnly {
			kept := events[:0]
			for _, e := range events {
				if !e.Success {
					kept = append(kept, e)
				}
			}
			events = kept
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM calls found.")
			return nil
		}
		writeLLMEvents(out, events)
		return nil
	},
}

func writeLLMEvents(w io.Writer, events []store.LLMCallRecord) {
	fmt.Fprintf(w, "%-5s  %-19s  %-10s  %-28s  %-6s  %-6s  %-7s  %s\n",
		"ID", "Timestamp", "Provider", "Model", "In", "Out", "Ms", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 96))

	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗ " + truncate(e.ErrorMessage, 40)
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-10s  %-28s  %-6d  %-6d  %-7d  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Provider,
			truncate(e.Model, 28),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			ok,
		)
	}
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full prompt and reply of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(context.Background(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		writeLLMEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

func writeLLMEvent(w io.Writer, e *store.LLMCallRecord) {
	fmt.Fprintf(w, "ID:        %d (sequence %d)\n", e.ID, e.Sequence)
	fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Provider:  %s\n", e.Provider)
	fmt.Fprintf(w, "Model:     %s\n", e.Model)
	fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
	fmt.Fprintf(w, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
	if cost := llm.LookupCost(e.Model); cost != nil {
		fmt.Fprintf(w, "Cost:      %s\n", formatCost(cost.Cost(e.InputTokens, e.OutputTokens)))
	}
	fmt.Fprintf(w, "Latency:   %dms\n", e.LatencyMs)
	fmt.Fprintf(w, "Success:   %v\n", e.Success)
	if e.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:     %s\n", e.ErrorMessage)
	}

	for _, part := range []struct{ title, body string }{
		{"REQUEST", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		sep := strings.Repeat("─", 60)
		fmt.Fprintln(w)
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, part.title)
		fmt.Fprintln(w, sep)
		if part.body == "" {
			fmt.Fprintln(w, "(not captured)")
		} else {
			fmt.Fprintln(w, part.body)
		}
	}
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}
		writePurposeUsage(out, byPurpose)
		fmt.Fprintln(out)
		writeModelCost(out, byModel)
		return nil
	},
}

func writePurposeUsage(w io.Writer, usage []store.LLMUsage) {
	rule := strings.Repeat("─", 72)
	fmt.Fprintln(w, "Usage by Purpose")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-16s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	fmt.Fprintln(w, rule)

	var calls, in, out int
	for _, u := range usage {
		fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %10d  %8d\n",
			u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %10d\n", "TOTAL", calls, in, out, in+out)
}

// writeModelCost prices each model with llm.LookupCost. Models without a
// known price are listed and excluded from the total.
func writeModelCost(w io.Writer, usage []store.LLMUsage) {
	rule := strings.Repeat("─", 72)
	fmt.Fprintln(w, "Estimated Cost (USD)")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(w, rule)

	var total float64
	var unpriced []string
	for _, u := range usage {
		cost := "?"
		if c := llm.LookupCost(u.Model); c != nil {
			usd := c.Cost(u.InputTokens, u.OutputTokens)
			total += usd
			cost = formatCost(usd)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
			truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, cost)
	}

	fmt.Fprintln(w, rule)
	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. classify)")
	llmListCmd.Flags().Duration("since", 0, "Only show calls from this long ago (e.g. 24h)")
	llmListCmd.Flags().Bool("failed", false, "Only show failed calls")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
