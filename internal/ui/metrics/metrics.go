// Package metrics renders patient readings for the terminal.
package metrics

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vitalcheck/internal/diagnosis"
	"github.com/abhisek/vitalcheck/internal/patient"
	"github.com/abhisek/vitalcheck/internal/ui/theme"
	"github.com/abhisek/vitalcheck/internal/vitals"
)

// Delta formats the ideal-range deviation of x with two decimals. Ideal
// readings give "0.00"; others carry a sign, so a reading exactly at the
// exclusive upper bound shows as "+0.00".
func Delta(k vitals.Kind, x float64) string {
	if vitals.Ideal(k).Contains(x) {
		return "0.00"
	}
	return fmt.Sprintf("%+.2f", vitals.Deviation(k, x))
}

// direction is -1 below, 0 inside, +1 at or above the ideal range.
func direction(k vitals.Kind, x float64) int {
	r := vitals.Ideal(k)
	switch {
	case x < r.Low:
		return -1
	case x >= r.High:
		return 1
	}
	return 0
}

func deltaStyle(k vitals.Kind, x float64) lipgloss.Style {
	switch direction(k, x) {
	case 1:
		return theme.DeltaUp
	case -1:
		return theme.DeltaDown
	}
	return theme.DeltaZero
}

func arrow(k vitals.Kind, x float64) string {
	switch direction(k, x) {
	case 1:
		return "▲ "
	case -1:
		return "▼ "
	}
	return "● "
}

// Cards renders one card per rule vital, side by side: label, reading and
// deviation from the ideal range.
func Cards(p patient.Patient) string {
	kinds := diagnosis.RuleVitals()
	cards := make([]string, len(kinds))
	for i, k := range kinds {
		x := p.Get(k)
		body := lipgloss.JoinVertical(lipgloss.Left,
			theme.Label.Render(k.Label()),
			theme.Value.Render(fmt.Sprintf("%g %s", x, k.Unit())),
			deltaStyle(k, x).Render(arrow(k, x)+Delta(k, x)),
		)
		cards[i] = theme.Card.Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// Table renders all nine vitals with their ideal range and deviation.
func Table(p patient.Patient) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-20s %10s  %-7s %-16s %s\n", "Vital", "Value", "Unit", "Ideal", "Delta")
	b.WriteString(theme.Label.Render(strings.Repeat("─", 64)))
	b.WriteByte('\n')
	for _, k := range vitals.All() {
		x := p.Get(k)
		fmt.Fprintf(&b, "%-20s %10g  %-7s %-16s %s\n",
			k.Label(), x, k.Unit(), vitals.Ideal(k), deltaStyle(k, x).Render(Delta(k, x)))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Verdict renders the diagnosis line.
func Verdict(r diagnosis.Result) string {
	if !r.Matched() {
		return theme.Healthy.Render("No diagnosis: no rule matched")
	}
	return theme.Diagnosis.Render(fmt.Sprintf("Diagnosis: %s (rule #%d)", r.Label, r.Priority))
}
