package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/vitalcheck/internal/diagnosis"
	"github.com/abhisek/vitalcheck/internal/patient"
	"github.com/abhisek/vitalcheck/internal/ui/metrics"
	"github.com/abhisek/vitalcheck/internal/ui/theme"
)

type showOptions struct {
	all    bool
	report bool
	json   bool
}

func (a *app) newShowCmd() *cobra.Command {
	var opts showOptions
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current vitals and diagnosis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShow(cmd, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "List all nine vitals, not just the rule vitals")
	cmd.Flags().BoolVarP(&opts.report, "report", "r", false, "Also generate the LLM health report")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print JSON instead of the styled view")
	return cmd
}

func (a *app) runShow(cmd *cobra.Command, opts showOptions) error {
	ctx := cmd.Context()
	d, err := a.openDeps(ctx, opts.report)
	if err != nil {
		return err
	}
	defer d.Close()

	ev, err := d.svc.Current(ctx)
	if err != nil {
		return err
	}
	if opts.report {
		ev.Report = d.svc.Report(ctx, ev.Snapshot)
	}

	w := cmd.OutOrStdout()
	if opts.json {
		return writeJSON(w, newEvaluationJSON(ev))
	}
	renderEvaluation(w, ev, opts.all)
	return nil
}

func renderEvaluation(w io.Writer, ev *diagnosis.Evaluation, all bool) {
	lipgloss.Fprintln(w, theme.Title.Render("Patient vitals"))
	if ev.Defaulted {
		lipgloss.Fprintln(w, theme.Hint.Render("No stored readings yet; showing generated healthy values."))
	}
	lipgloss.Fprintln(w, metrics.Cards(ev.Snapshot))
	if all {
		lipgloss.Fprintln(w, metrics.Table(ev.Snapshot))
		fmt.Fprintln(w)
	}
	lipgloss.Fprintln(w, metrics.Verdict(ev.Diagnosis))
	if ev.Report != "" {
		fmt.Fprintln(w)
		lipgloss.Fprintln(w, theme.Title.Render("Health report"))
		fmt.Fprintln(w, ev.Report)
	}
}

// evaluationJSON is the machine-readable form of an evaluation. Diagnosis
// is null when no rule matched.
type evaluationJSON struct {
	Snapshot  patient.Patient `json:"snapshot"`
	Diagnosis *string         `json:"diagnosis"`
	Rule      int             `json:"rule"`
	Report    string          `json:"report,omitempty"`
	Defaulted bool            `json:"defaulted"`
}

func newEvaluationJSON(ev *diagnosis.Evaluation) evaluationJSON {
	out := evaluationJSON{
		Snapshot:  ev.Snapshot,
		Rule:      ev.Diagnosis.Priority,
		Report:    ev.Report,
		Defaulted: ev.Defaulted,
	}
	if ev.Diagnosis.Matched() {
		label := ev.Diagnosis.Label
		out.Diagnosis = &label
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
