package vitals

import "fmt"

// Range is the half-open interval [Low, High).
type Range struct {
	Low  float64
	High float64
}

// Contains reports whether x lies in [Low, High).
func (r Range) Contains(x float64) bool {
	return x >= r.Low && x < r.High
}

// Midpoint returns the centre of the range.
func (r Range) Midpoint() float64 {
	return r.Low + (r.High-r.Low)/2
}

// Width returns High - Low.
func (r Range) Width() float64 {
	return r.High - r.Low
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g)", r.Low, r.High)
}

// RangeSet pairs the ideal interval of a vital with the wider interval of
// plausible inputs. Only Ideal feeds the predicates.
type RangeSet struct {
	Ideal   Range
	Allowed Range
}

// ranges is indexed by Kind and never mutated.
var ranges = [NumKinds]RangeSet{
	BodyTemperature:   {Ideal: Range{36.1, 37.3}, Allowed: Range{30, 40}},
	SystolicPressure:  {Ideal: Range{90, 121}, Allowed: Range{20, 300}},
	DiastolicPressure: {Ideal: Range{60, 81}, Allowed: Range{20, 300}},
	HeartRate:         {Ideal: Range{60, 101}, Allowed: Range{0, 220}},
	RespiratoryRate:   {Ideal: Range{12, 21}, Allowed: Range{0, 60}},
	BloodGlucose:      {Ideal: Range{70, 101}, Allowed: Range{0, 350}},
	BloodSaturation:   {Ideal: Range{95, 100}, Allowed: Range{0, 100}},
	Sodium:            {Ideal: Range{135, 145}, Allowed: Range{120, 160}},
	Potassium:         {Ideal: Range{3.5, 5.1}, Allowed: Range{2.5, 6.5}},
}

// Ranges returns the range set for k. It panics on an unknown Kind.
func Ranges(k Kind) RangeSet {
	return ranges[k]
}

// Ideal returns the ideal interval for k.
func Ideal(k Kind) Range {
	return ranges[k].Ideal
}

// Allowed returns the plausible-input interval for k.
func Allowed(k Kind) Range {
	return ranges[k].Allowed
}

// Deviation returns 0 when x is ideal, otherwise the signed distance past
// the violated bound: x-Low below the range, x-High at or above it.
func Deviation(k Kind, x float64) float64 {
	r := ranges[k].Ideal
	switch {
	case x < r.Low:
		return x - r.Low
	case x >= r.High:
		return x - r.High
	default:
		return 0
	}
}

// CheckRanges verifies Low < High and Allowed ⊇ Ideal for every vital.
func CheckRanges() error {
	for _, k := range All() {
		rs := ranges[k]
		if !(rs.Ideal.Low < rs.Ideal.High) {
			return fmt.Errorf("%s: ideal range %s is empty", k, rs.Ideal)
		}
		if !(rs.Allowed.Low < rs.Allowed.High) {
			return fmt.Errorf("%s: allowed range %s is empty", k, rs.Allowed)
		}
		if rs.Allowed.Low > rs.Ideal.Low || rs.Ideal.High > rs.Allowed.High {
			return fmt.Errorf("%s: allowed range %s does not cover ideal %s", k, rs.Allowed, rs.Ideal)
		}
	}
	return nil
}
