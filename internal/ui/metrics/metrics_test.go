package metrics

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vitalcheck/internal/diagnosis"
	"github.com/abhisek/vitalcheck/internal/patient"
	"github.com/abhisek/vitalcheck/internal/vitals"
)

func testPatient(t *testing.T) patient.Patient {
	t.Helper()
	f := patient.Fields{}
	for _, k := range vitals.All() {
		f[k] = vitals.Ideal(k).Low
	}
	f[vitals.SystolicPressure] = 85
	f[vitals.BodyTemperature] = 38.5
	f[vitals.HeartRate] = 110
	p, err := patient.FromFields(f)
	require.NoError(t, err)
	return p
}

func TestDelta(t *testing.T) {
	tests := []struct {
		kind vitals.Kind
		x    float64
		want string
	}{
		{vitals.SystolicPressure, 85, "-5.00"},
		{vitals.SystolicPressure, 90, "0.00"},
		{vitals.SystolicPressure, 121, "+0.00"},
		{vitals.BodyTemperature, 38.5, "+1.20"},
		{vitals.BloodSaturation, 100, "+0.00"},
		{vitals.HeartRate, 75, "0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Delta(tt.kind, tt.x), "%s=%g", tt.kind, tt.x)
	}
}

func TestCards(t *testing.T) {
	out := ansi.Strip(Cards(testPatient(t)))

	for _, want := range []string{"Blood pressure", "85 mmHg", "▼ -5.00", "Body temperature", "▲ +1.20", "Heart rate", "▲ +9.00", "● 0.00"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Sodium", "only rule vitals get a card")
}

func TestTable(t *testing.T) {
	out := ansi.Strip(Table(testPatient(t)))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2+vitals.NumKinds)
	assert.Contains(t, lines[2], "Body temperature")
	assert.Contains(t, lines[2], "[36.1, 37.3)")
	assert.Contains(t, out, "Potassium")
}

func TestVerdict(t *testing.T) {
	assert.Contains(t, ansi.Strip(Verdict(diagnosis.NoDiagnosis)), "No diagnosis")
	assert.Contains(t, ansi.Strip(Verdict(diagnosis.Result{Label: "Pneumonia", Priority: 0})), "Diagnosis: Pneumonia (rule #0)")
}
