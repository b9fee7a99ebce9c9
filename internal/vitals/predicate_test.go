package vitals

import (
	"fmt"
	"testing"
)

// probeValues returns readings around and between the ideal bounds of k,
// plus the extremes of the allowed range.
func probeValues(k Kind) []float64 {
	rs := Ranges(k)
	lo, hi := rs.Ideal.Low, rs.Ideal.High
	return []float64{
		rs.Allowed.Low, lo - 1, lo - 0.01, lo, lo + 0.01,
		rs.Ideal.Midpoint(), hi - 0.01, hi, hi + 0.01, hi + 1,
		rs.Allowed.High, -1000, 1000,
	}
}

func TestPredicates_ComplementIdentities(t *testing.T) {
	for _, k := range All() {
		for _, x := range probeValues(k) {
			if AtOrAbove.Eval(k, x) != !NormalOrBelow.Eval(k, x) {
				t.Errorf("%s x=%g: at_or_above != !normal_or_below", k, x)
			}
			if Below.Eval(k, x) != !NormalOrAbove.Eval(k, x) {
				t.Errorf("%s x=%g: below != !normal_or_above", k, x)
			}
			if OutOfRange.Eval(k, x) != (Below.Eval(k, x) || AtOrAbove.Eval(k, x)) {
				t.Errorf("%s x=%g: out_of_range is not the union of below and at_or_above", k, x)
			}
		}
	}
}

func TestPredicates_Boundaries(t *testing.T) {
	tests := []struct {
		pred Predicate
		x    float64
		want bool
	}{
		{Below, 89.99, true},
		{Below, 90, false},
		{AtOrAbove, 121, true},
		{AtOrAbove, 120.99, false},
		{OutOfRange, 90, false},
		{OutOfRange, 121, true},
		{OutOfRange, 85, true},
		{NormalOrAbove, 90, true},
		{NormalOrAbove, 300, true},
		{NormalOrAbove, 89, false},
		{NormalOrBelow, 121, false},
		{NormalOrBelow, 20, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%g", tt.pred, tt.x), func(t *testing.T) {
			if got := tt.pred.Eval(SystolicPressure, tt.x); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPredicate_UnknownIsFalse(t *testing.T) {
	if Predicate(99).Eval(HeartRate, 80) {
		t.Error("unknown predicate should never match")
	}
}

func TestParsePredicate(t *testing.T) {
	for _, p := range Predicates() {
		got, ok := ParsePredicate(p.String())
		if !ok || got != p {
			t.Errorf("ParsePredicate(%q) = %v, %v", p.String(), got, ok)
		}
	}
	if _, ok := ParsePredicate("above"); ok {
		t.Error("expected unknown predicate name to fail")
	}
}
