package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vitalcheck/internal/llm"
	"github.com/abhisek/vitalcheck/internal/patient"
	"github.com/abhisek/vitalcheck/internal/vitals"
)

func feverish(t *testing.T) patient.Patient {
	t.Helper()
	p, err := patient.FromFields(patient.Fields{
		vitals.BodyTemperature:   38.5,
		vitals.SystolicPressure:  85,
		vitals.DiastolicPressure: 70,
		vitals.HeartRate:         110,
		vitals.RespiratoryRate:   16,
		vitals.BloodGlucose:      110,
		vitals.BloodSaturation:   90,
		vitals.Sodium:            140,
		vitals.Potassium:         4.2,
	})
	require.NoError(t, err)
	return p
}

func TestGenerator_Generate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"summary": "Fever with low oxygen saturation.",
		"risks":   []string{"Respiratory infection", "Hypoxemia"},
		"actions": []string{"Seek medical attention today"},
	}))
	g := NewGenerator(mock, DefaultConfig())

	r, err := g.Generate(context.Background(), feverish(t))
	require.NoError(t, err)
	assert.Equal(t, "Fever with low oxygen saturation.", r.Summary)
	assert.Equal(t, []string{"Respiratory infection", "Hypoxemia"}, r.Risks)
	assert.Equal(t, "mock", r.Model)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	req := calls[0]
	assert.Same(t, Schema, req.Schema)
	assert.Equal(t, 1024, req.MaxTokens)
	assert.Equal(t, systemPrompt, req.System)
}

func TestGenerator_ReportText(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"summary": "Stable.",
		"risks":   []string{},
		"actions": []string{"Rest", "Hydrate"},
	}))
	text := NewGenerator(mock, DefaultConfig()).Report(context.Background(), feverish(t))

	assert.Equal(t, "Summary\nStable.\n\nPotential risks\n- none\n\nRecommended actions\n- Rest\n- Hydrate", text)
}

func TestGenerator_ReportInlineError(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider failure", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}}},
		{"schema violation", llm.MockJSON(map[string]any{"summary": "only"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(llm.NewMockProvider(tt.resp), DefaultConfig())
			text := g.Report(context.Background(), feverish(t))
			assert.True(t, strings.HasPrefix(text, "Error: "), text)
		})
	}
}

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage(feverish(t))

	for _, want := range []string{
		"- Body Temperature: 38.5°C (above ideal [36.1, 37.3))",
		"- Blood Pressure: 85/70 mmHg (below ideal [90, 121))",
		"- Heart Rate: 110 bpm (above ideal [60, 101))",
		"- Respiratory Rate: 16 bpm\n",
		"- Blood Saturation: 90% (below ideal [95, 100))",
		"- Sodium Rate: 140 mEq/L\n",
		"- Potassium Rate: 4.2 mEq/L\n",
		"3. Recommended actions",
	} {
		assert.Contains(t, msg, want)
	}
}
