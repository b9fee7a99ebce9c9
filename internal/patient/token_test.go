package patient

import (
	"testing"

	"github.com/abhisek/vitalcheck/internal/vitals"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		token string
		want  vitals.Kind
		ok    bool
	}{
		{"bp_systolic", vitals.SystolicPressure, true},
		{"bp_diastolic", vitals.DiastolicPressure, true},
		{"blood_glucose", vitals.BloodGlucose, true},
		{"body_temperature", vitals.BodyTemperature, true},
		{"respiratory_rate", vitals.RespiratoryRate, true},
		{"heart_rate", vitals.HeartRate, true},
		{"blood_saturation", vitals.BloodSaturation, true},
		{"  Heart_Rate ", vitals.HeartRate, true},
		{"pulse", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseToken(tt.token)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokens_CoverEveryVital(t *testing.T) {
	names := Tokens()
	if len(names) != vitals.NumKinds {
		t.Fatalf("got %d tokens, want %d", len(names), vitals.NumKinds)
	}
	if names[0] != "body_temperature" {
		t.Errorf("first token = %q, want body_temperature", names[0])
	}
}
