package patient

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/abhisek/vitalcheck/internal/vitals"
)

var (
	// ErrIncomplete is returned when a required vital is missing.
	ErrIncomplete = errors.New("patient snapshot is incomplete")
	// ErrNotFinite is returned when a reading is NaN or infinite.
	ErrNotFinite = errors.New("vital reading is not a finite number")
	// ErrUnknownVital is returned for a Kind outside the nine vitals.
	ErrUnknownVital = errors.New("unknown vital")
)

// Fields holds readings keyed by vital. A missing key means "unset".
type Fields map[vitals.Kind]float64

// Patient is an immutable snapshot of all nine vitals. Copies are
// independent; With returns a new value instead of mutating the receiver.
//
// Only New, Healthy, FromFields and UnmarshalJSON produce valid values. The
// zero Patient is not a snapshot of nine zero readings: Valid reports false
// and the rule table never diagnoses it.
type Patient struct {
	values [vitals.NumKinds]float64
	valid  bool
}

// New builds a Patient from any subset of readings. Every omitted vital is
// drawn uniformly from its ideal range using rng and rounded to two decimals.
func New(rng *rand.Rand, fields Fields) (Patient, error) {
	var p Patient
	for k, v := range fields {
		if err := checkReading(k, v); err != nil {
			return Patient{}, err
		}
	}
	for _, k := range vitals.All() {
		if v, ok := fields[k]; ok {
			p.values[k] = v
			continue
		}
		p.values[k] = randomIdeal(rng, k)
	}
	p.valid = true
	return p, nil
}

// Healthy returns a patient with every vital drawn from its ideal range.
func Healthy(rng *rand.Rand) Patient {
	p, _ := New(rng, nil)
	return p
}

// FromFields builds a Patient that must have all nine readings set. It is
// the constructor to use when data arrives from outside and guessing
// missing values would be wrong.
func FromFields(fields Fields) (Patient, error) {
	var p Patient
	for k, v := range fields {
		if err := checkReading(k, v); err != nil {
			return Patient{}, err
		}
	}
	for _, k := range vitals.All() {
		v, ok := fields[k]
		if !ok {
			return Patient{}, fmt.Errorf("%w: %s is missing", ErrIncomplete, k)
		}
		p.values[k] = v
	}
	p.valid = true
	return p, nil
}

// Valid reports whether p came from a constructor, meaning all nine
// readings are set and finite.
func (p Patient) Valid() bool {
	return p.valid
}

// Get returns the reading for k.
func (p Patient) Get(k vitals.Kind) float64 {
	return p.values[k]
}

// With returns a copy of p with k set to v.
func (p Patient) With(k vitals.Kind, v float64) (Patient, error) {
	if err := checkReading(k, v); err != nil {
		return p, err
	}
	p.values[k] = v
	return p, nil
}

// Fields returns the readings as a map.
func (p Patient) Fields() Fields {
	f := make(Fields, vitals.NumKinds)
	for _, k := range vitals.All() {
		f[k] = p.values[k]
	}
	return f
}

// Deviations returns the ideal-range deviation of every vital.
func (p Patient) Deviations() map[vitals.Kind]float64 {
	out := make(map[vitals.Kind]float64, vitals.NumKinds)
	for _, k := range vitals.All() {
		out[k] = vitals.Deviation(k, p.values[k])
	}
	return out
}

// OutsideAllowed lists vitals whose reading falls outside the allowed range.
func (p Patient) OutsideAllowed() []vitals.Kind {
	var out []vitals.Kind
	for _, k := range vitals.All() {
		if !vitals.Allowed(k).Contains(p.values[k]) {
			out = append(out, k)
		}
	}
	return out
}

// MarshalJSON writes the snapshot with canonical field names.
func (p Patient) MarshalJSON() ([]byte, error) {
	m := make(map[string]float64, vitals.NumKinds)
	for _, k := range vitals.All() {
		m[k.Key()] = p.values[k]
	}
	return json.Marshal(m)
}

// UnmarshalJSON reads a canonical snapshot; all nine fields are required.
func (p *Patient) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	fields := make(Fields, len(m))
	for key, v := range m {
		k, ok := vitals.ParseKey(key)
		if !ok {
			continue
		}
		fields[k] = v
	}
	parsed, err := FromFields(fields)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func checkReading(k vitals.Kind, v float64) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownVital, int(k))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s = %v", ErrNotFinite, k, v)
	}
	return nil
}

// randomIdeal draws from [Low, High) and rounds to two decimals, stepping
// down one hundredth if rounding lands on High.
func randomIdeal(rng *rand.Rand, k vitals.Kind) float64 {
	r := vitals.Ideal(k)
	v := round2(r.Low + rng.Float64()*r.Width())
	if v >= r.High {
		v = round2(r.High - 0.01)
	}
	if v < r.Low {
		v = r.Low
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
