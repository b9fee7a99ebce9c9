package vitals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRanges(t *testing.T) {
	require.NoError(t, CheckRanges())
}

func TestRangeContains_HalfOpen(t *testing.T) {
	r := Range{Low: 90, High: 121}
	assert.True(t, r.Contains(90), "low bound is inside")
	assert.True(t, r.Contains(120.99))
	assert.False(t, r.Contains(121), "high bound is outside")
	assert.False(t, r.Contains(89.99))
}

func TestDeviation(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		x    float64
		want float64
	}{
		{"ideal", SystolicPressure, 110, 0},
		{"at low", SystolicPressure, 90, 0},
		{"below", SystolicPressure, 85, -5},
		{"at high", SystolicPressure, 121, 0},
		{"above", SystolicPressure, 200, 79},
		{"fever", BodyTemperature, 38.5, 38.5 - 37.3},
		{"hypoxia", BloodSaturation, 90, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Deviation(tt.kind, tt.x), 1e-9)
		})
	}
}

func TestKindKeysRoundTrip(t *testing.T) {
	seen := make(map[string]bool)
	for _, k := range All() {
		key := k.Key()
		if seen[key] {
			t.Fatalf("duplicate key %q", key)
		}
		seen[key] = true

		got, ok := ParseKey(key)
		if !ok || got != k {
			t.Errorf("ParseKey(%q) = %v, %v; want %v", key, got, ok, k)
		}
	}
	if len(seen) != NumKinds {
		t.Errorf("got %d kinds, want %d", len(seen), NumKinds)
	}
}

func TestParseKey_Unknown(t *testing.T) {
	if _, ok := ParseKey("bp_systolic"); ok {
		t.Error("external tokens are not canonical keys")
	}
}

func TestKind_Invalid(t *testing.T) {
	k := Kind(42)
	assert.False(t, k.Valid())
	assert.Equal(t, "vital(42)", k.String())
	assert.Empty(t, k.Unit())
}
