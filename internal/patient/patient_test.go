package patient

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vitalcheck/internal/vitals"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestNew_DefaultsStayInIdealRange(t *testing.T) {
	rng := testRand(1)
	for i := 0; i < 1000; i++ {
		p := Healthy(rng)
		for _, k := range vitals.All() {
			v := p.Get(k)
			if !vitals.Ideal(k).Contains(v) {
				t.Fatalf("iteration %d: %s = %v outside %s", i, k, v, vitals.Ideal(k))
			}
			if math.Abs(v*100-math.Round(v*100)) > 1e-6 {
				t.Fatalf("iteration %d: %s = %v has more than two decimals", i, k, v)
			}
		}
	}
}

func TestNew_SeededIsReproducible(t *testing.T) {
	a := Healthy(testRand(7))
	b := Healthy(testRand(7))
	assert.Equal(t, a, b)
}

func TestNew_KeepsExplicitValues(t *testing.T) {
	p, err := New(testRand(2), Fields{
		vitals.SystolicPressure: 200,
		vitals.HeartRate:        -5,
	})
	require.NoError(t, err)
	assert.Equal(t, 200.0, p.Get(vitals.SystolicPressure))
	// No allowed-range validation: negative heart rate is kept as given.
	assert.Equal(t, -5.0, p.Get(vitals.HeartRate))
	assert.True(t, vitals.Ideal(vitals.BodyTemperature).Contains(p.Get(vitals.BodyTemperature)))
}

func TestNew_RejectsNonFinite(t *testing.T) {
	_, err := New(testRand(3), Fields{vitals.BloodGlucose: math.NaN()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFinite))

	_, err = New(testRand(3), Fields{vitals.Kind(12): 1})
	assert.True(t, errors.Is(err, ErrUnknownVital))
}

func TestFromFields_RequiresAllVitals(t *testing.T) {
	fields := Healthy(testRand(4)).Fields()
	delete(fields, vitals.Potassium)

	_, err := FromFields(fields)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncomplete))
	assert.Contains(t, err.Error(), "potassium_rate")
}

func TestWith_ReturnsNewSnapshot(t *testing.T) {
	orig := Healthy(testRand(5))
	updated, err := orig.With(vitals.SystolicPressure, 200)
	require.NoError(t, err)

	assert.Equal(t, 200.0, updated.Get(vitals.SystolicPressure))
	assert.NotEqual(t, 200.0, orig.Get(vitals.SystolicPressure), "receiver must not change")
	for _, k := range vitals.All() {
		if k == vitals.SystolicPressure {
			continue
		}
		assert.Equal(t, orig.Get(k), updated.Get(k), k.String())
	}

	_, err = orig.With(vitals.HeartRate, math.Inf(1))
	assert.True(t, errors.Is(err, ErrNotFinite))
}

func TestJSONRoundTrip(t *testing.T) {
	p := Healthy(testRand(6))
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"blood_pressure_systolic_mm_hg"`)

	var got Patient
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, p, got)
}

func TestUnmarshalJSON_Incomplete(t *testing.T) {
	var p Patient
	err := json.Unmarshal([]byte(`{"blood_saturation": 97}`), &p)
	assert.True(t, errors.Is(err, ErrIncomplete))
}

func TestDeviationsAndOutsideAllowed(t *testing.T) {
	p, err := New(testRand(8), Fields{
		vitals.HeartRate:        250,
		vitals.SystolicPressure: 110,
	})
	require.NoError(t, err)

	dev := p.Deviations()
	assert.Equal(t, 0.0, dev[vitals.SystolicPressure])
	assert.Equal(t, 149.0, dev[vitals.HeartRate])
	assert.Equal(t, []vitals.Kind{vitals.HeartRate}, p.OutsideAllowed())
}

func TestValid(t *testing.T) {
	var zero Patient
	assert.False(t, zero.Valid())

	healthy := Healthy(rand.New(rand.NewPCG(3, 4)))
	assert.True(t, healthy.Valid())

	next, err := healthy.With(vitals.HeartRate, 130)
	require.NoError(t, err)
	assert.True(t, next.Valid())

	partial, err := zero.With(vitals.HeartRate, 130)
	require.NoError(t, err)
	assert.False(t, partial.Valid())

	var decoded Patient
	data, err := json.Marshal(healthy)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Valid())
}
