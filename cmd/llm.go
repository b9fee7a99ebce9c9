package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vitalcheck/internal/llm"
	"github.com/abhisek/vitalcheck/internal/store"
)

func (a *app) newLLMCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llm",
		Short: "Inspect LLM request/response events",
	}
	cmd.AddCommand(a.newLLMListCmd(), a.newLLMViewCmd(), a.newLLMStatsCmd())
	return cmd
}

func (a *app) openStore() (*store.Store, error) {
	dbPath, err := a.cfg.DBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func (a *app) newLLMListCmd() *cobra.Command {
	var (
		limit   int
		purpose string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent LLM events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(w, "No LLM events found.")
				return nil
			}

			fmt.Fprintf(w, "%-5s  %-19s  %-14s  %-28s  %-6s  %-6s  %-7s  %s\n",
				"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
			fmt.Fprintln(w, strings.Repeat("─", 100))

			for _, e := range events {
				ok := "✓"
				if !e.Success {
					ok = "✗"
				}
				fmt.Fprintf(w, "%-5d  %-19s  %-14s  %-28s  %-6d  %-6d  %-7d  %s\n",
					e.ID,
					e.Timestamp.Local().Format("2006-01-02 15:04:05"),
					truncate(e.Purpose, 14),
					truncate(e.Model, 28),
					e.InputTokens,
					e.OutputTokens,
					e.LatencyMs,
					ok,
				)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of events to show")
	cmd.Flags().StringVarP(&purpose, "purpose", "p", "", "Filter by purpose (e.g. health-report)")
	return cmd
}

func (a *app) newLLMViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <id>",
		Short: "View full request/response for an LLM event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid ID %q: %w", args[0], err)
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}

			w := cmd.OutOrStdout()
			sep := strings.Repeat("─", 60)

			fmt.Fprintf(w, "ID:        %d\n", e.ID)
			fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(w, "Provider:  %s\n", e.Provider)
			fmt.Fprintf(w, "Model:     %s\n", e.Model)
			fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
			fmt.Fprintf(w, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
			fmt.Fprintf(w, "Latency:   %dms\n", e.LatencyMs)
			fmt.Fprintf(w, "Success:   %v\n", e.Success)
			if e.ErrorMessage != "" {
				fmt.Fprintf(w, "Error:     %s\n", e.ErrorMessage)
			}

			for _, section := range []struct{ title, body string }{
				{"REQUEST", e.RequestBody},
				{"RESPONSE", e.ResponseBody},
			} {
				fmt.Fprintln(w)
				fmt.Fprintln(w, sep)
				fmt.Fprintln(w, section.title)
				fmt.Fprintln(w, sep)
				if section.body == "" {
					fmt.Fprintln(w, "(not captured)")
					continue
				}
				fmt.Fprintln(w, section.body)
			}
			return nil
		},
	}
}

func (a *app) newLLMStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregated LLM token usage and estimated cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			usage, err := s.EventRepo().LLMUsageByModel(cmd.Context())
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(usage) == 0 {
				fmt.Fprintln(w, "No LLM usage recorded yet.")
				return nil
			}

			fmt.Fprintln(w, "Usage and Estimated Cost (USD)")
			fmt.Fprintln(w, strings.Repeat("─", 84))
			fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %8s  %10s\n",
				"Model", "Calls", "Input", "Output", "Avg Ms", "Cost")
			fmt.Fprintln(w, strings.Repeat("─", 84))

			var (
				totalCalls, totalIn, totalOut int
				totalCost                     float64
				unknown                       []string
			)
			for _, mu := range usage {
				totalCalls += mu.Calls
				totalIn += mu.InputTokens
				totalOut += mu.OutputTokens

				cost := "?"
				if price := llm.LookupCost(mu.Model); price != nil {
					c := price.Cost(mu.InputTokens, mu.OutputTokens)
					totalCost += c
					cost = formatCost(c)
				} else {
					unknown = append(unknown, mu.Model)
				}
				fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %8d  %10s\n",
					truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, mu.AvgLatencyMs, cost)
			}

			fmt.Fprintln(w, strings.Repeat("─", 84))
			label := "TOTAL"
			if len(unknown) > 0 {
				label = "TOTAL (partial)"
			}
			fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %8s  %10s\n",
				label, totalCalls, totalIn, totalOut, "", formatCost(totalCost))

			if len(unknown) > 0 {
				fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
			}
			return nil
		},
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
