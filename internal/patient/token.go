package patient

import (
	"strings"

	"github.com/abhisek/vitalcheck/internal/vitals"
)

// tokens maps the external vital names accepted by single-vital updates.
var tokens = map[string]vitals.Kind{
	"bp_systolic":      vitals.SystolicPressure,
	"bp_diastolic":     vitals.DiastolicPressure,
	"blood_glucose":    vitals.BloodGlucose,
	"body_temperature": vitals.BodyTemperature,
	"respiratory_rate": vitals.RespiratoryRate,
	"heart_rate":       vitals.HeartRate,
	"blood_saturation": vitals.BloodSaturation,
	"sodium_rate":      vitals.Sodium,
	"potassium_rate":   vitals.Potassium,
}

// ParseToken maps an external vital name to its Kind. Matching ignores
// case and surrounding whitespace.
func ParseToken(token string) (vitals.Kind, bool) {
	k, ok := tokens[strings.ToLower(strings.TrimSpace(token))]
	return k, ok
}

// Tokens returns the recognized external names in canonical vital order.
func Tokens() []string {
	out := make([]string, 0, len(tokens))
	for _, k := range vitals.All() {
		for name, kind := range tokens {
			if kind == k {
				out = append(out, name)
			}
		}
	}
	return out
}
