package report

import (
	"fmt"
	"strings"

	"github.com/abhisek/vitalcheck/internal/patient"
	"github.com/abhisek/vitalcheck/internal/vitals"
)

const systemPrompt = `You are a clinical assistant reviewing a single set of patient vitals. You do not diagnose. You describe what the readings suggest and what the patient should do next, in plain language.`

func buildUserMessage(p patient.Patient) string {
	var b strings.Builder
	b.WriteString("Analyze the following patient vitals and provide a detailed health check report:\n\n")

	temp := p.Get(vitals.BodyTemperature)
	fmt.Fprintf(&b, "- Body Temperature: %s°C%s\n", num(temp), flag(vitals.BodyTemperature, temp))

	sys, dia := p.Get(vitals.SystolicPressure), p.Get(vitals.DiastolicPressure)
	fmt.Fprintf(&b, "- Blood Pressure: %s/%s mmHg%s%s\n", num(sys), num(dia),
		flag(vitals.SystolicPressure, sys), flag(vitals.DiastolicPressure, dia))

	for _, line := range []struct {
		label string
		kind  vitals.Kind
	}{
		{"Heart Rate", vitals.HeartRate},
		{"Respiratory Rate", vitals.RespiratoryRate},
		{"Blood Glucose", vitals.BloodGlucose},
		{"Blood Saturation", vitals.BloodSaturation},
		{"Sodium Rate", vitals.Sodium},
		{"Potassium Rate", vitals.Potassium},
	} {
		v := p.Get(line.kind)
		unit := " " + line.kind.Unit()
		if line.kind == vitals.BloodSaturation {
			unit = "%"
		}
		fmt.Fprintf(&b, "- %s: %s%s%s\n", line.label, num(v), unit, flag(line.kind, v))
	}

	b.WriteString(`
Provide:
1. A short health summary
2. Potential health risks
3. Recommended actions`)
	return b.String()
}

// flag marks a reading outside its ideal range.
func flag(k vitals.Kind, v float64) string {
	d := vitals.Deviation(k, v)
	switch {
	case d < 0:
		return fmt.Sprintf(" (below ideal %s)", vitals.Ideal(k))
	case d > 0:
		return fmt.Sprintf(" (above ideal %s)", vitals.Ideal(k))
	}
	return ""
}

func num(v float64) string {
	return fmt.Sprintf("%g", v)
}
