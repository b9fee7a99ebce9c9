package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/vitalcheck/internal/patient"
	"github.com/abhisek/vitalcheck/internal/ui/theme"
)

func (a *app) newUpdateCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "update <vital> <value>",
		Short: "Set one vital, then diagnose and report",
		Long: "Set one vital reading and save it, then evaluate the rule table and\n" +
			"generate the health report.\n\nVitals: " + strings.Join(patient.Tokens(), ", "),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[1], err)
			}

			ctx := cmd.Context()
			d, err := a.openDeps(ctx, true)
			if err != nil {
				return err
			}
			defer d.Close()

			res, err := d.svc.Update(ctx, args[0], value)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				out := struct {
					RequestID string `json:"request_id"`
					Applied   bool   `json:"applied"`
					evaluationJSON
				}{res.RequestID, res.Applied, newEvaluationJSON(&res.Evaluation)}
				return writeJSON(w, out)
			}

			if res.Applied {
				lipgloss.Fprintln(w, theme.Hint.Render(fmt.Sprintf("%s: %g → %g %s",
					res.Vital.Label(), res.Previous, value, res.Vital.Unit())))
			} else {
				lipgloss.Fprintln(w, theme.Hint.Render(fmt.Sprintf("Unknown vital %q, nothing changed. Valid vitals: %s",
					args[0], strings.Join(patient.Tokens(), ", "))))
			}
			renderEvaluation(w, &res.Evaluation, false)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of the styled view")
	return cmd
}
