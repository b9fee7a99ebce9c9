package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/vitalcheck/internal/patient"
)

func (a *app) newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the stored vitals with generated healthy values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := a.openDeps(ctx, false)
			if err != nil {
				return err
			}
			defer d.Close()

			ev, err := d.svc.Reset(ctx, patient.Healthy(d.rng))
			if err != nil {
				return err
			}
			renderEvaluation(cmd.OutOrStdout(), ev, true)
			return nil
		},
	}
}
