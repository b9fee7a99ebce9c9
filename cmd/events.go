package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vitalcheck/internal/store"
)

func (a *app) newEventsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List recorded vital updates and their diagnoses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := a.openDeps(ctx, false)
			if err != nil {
				return err
			}
			defer d.Close()

			events, err := d.events.QueryDiagnosisEvents(ctx, store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(w, "No events recorded yet.")
				return nil
			}

			fmt.Fprintf(w, "%-5s  %-19s  %-18s  %9s  %-3s  %s\n",
				"ID", "Timestamp", "Vital", "Value", "Set", "Diagnosis")
			fmt.Fprintln(w, strings.Repeat("─", 90))
			for _, e := range events {
				vital := e.Vital
				if vital == "" {
					vital = e.Token
				}
				set := "✓"
				if !e.Applied {
					set = "✗"
				}
				label := "-"
				if e.Priority >= 0 {
					label = fmt.Sprintf("%s (#%d)", e.Label, e.Priority)
				}
				fmt.Fprintf(w, "%-5d  %-19s  %-18s  %9.2f  %-3s  %s\n",
					e.ID,
					e.Timestamp.Local().Format("2006-01-02 15:04:05"),
					truncate(vital, 18),
					e.Value,
					set,
					label,
				)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of events to show")
	return cmd
}
