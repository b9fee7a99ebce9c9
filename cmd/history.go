package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vitalcheck/internal/vitals"
)

func (a *app) newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored patient snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := a.openDeps(ctx, false)
			if err != nil {
				return err
			}
			defer d.Close()
			if d.patients == nil {
				return errNeedsSQLite
			}

			records, err := d.patients.History(ctx, limit)
			if err != nil {
				return fmt.Errorf("query history: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(w, "No snapshots stored yet.")
				return nil
			}

			cols := []string{fmt.Sprintf("%-5s  %-19s", "ID", "Timestamp")}
			for _, k := range vitals.All() {
				cols = append(cols, fmt.Sprintf("%9s", shortKey(k)))
			}
			fmt.Fprintln(w, strings.Join(cols, " "))
			fmt.Fprintln(w, strings.Repeat("─", 26+10*len(vitals.All())))

			for _, rec := range records {
				row := []string{fmt.Sprintf("%-5d  %-19s", rec.ID, rec.Timestamp.Local().Format("2006-01-02 15:04:05"))}
				for _, k := range vitals.All() {
					row = append(row, fmt.Sprintf("%9.2f", rec.Patient.Get(k)))
				}
				fmt.Fprintln(w, strings.Join(row, " "))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of snapshots to show")
	return cmd
}

var shortNames = map[vitals.Kind]string{
	vitals.BodyTemperature:   "temp",
	vitals.SystolicPressure:  "systolic",
	vitals.DiastolicPressure: "diastolic",
	vitals.HeartRate:         "hr",
	vitals.RespiratoryRate:   "rr",
	vitals.BloodGlucose:      "glucose",
	vitals.BloodSaturation:   "spo2",
	vitals.Sodium:            "sodium",
	vitals.Potassium:         "potassium",
}

func shortKey(k vitals.Kind) string {
	return shortNames[k]
}
