package vitals

import "fmt"

// Predicate is a comparison of a reading against its ideal range.
type Predicate int

const (
	// Below is x < Low.
	Below Predicate = iota
	// AtOrAbove is x >= High.
	AtOrAbove
	// OutOfRange is x < Low or x >= High.
	OutOfRange
	// NormalOrAbove is x >= Low, the complement of Below.
	NormalOrAbove
	// NormalOrBelow is x < High, the complement of AtOrAbove.
	NormalOrBelow
)

var predicateNames = [...]string{
	Below:         "below",
	AtOrAbove:     "at_or_above",
	OutOfRange:    "out_of_range_either_side",
	NormalOrAbove: "normal_or_above",
	NormalOrBelow: "normal_or_below",
}

// Predicates returns all five operators.
func Predicates() []Predicate {
	return []Predicate{Below, AtOrAbove, OutOfRange, NormalOrAbove, NormalOrBelow}
}

// Valid reports whether p is a known operator.
func (p Predicate) Valid() bool {
	return p >= Below && p <= NormalOrBelow
}

func (p Predicate) String() string {
	if !p.Valid() {
		return fmt.Sprintf("predicate(%d)", int(p))
	}
	return predicateNames[p]
}

// Eval applies p to reading x of vital k. A value equal to High is outside
// the ideal range; a value equal to Low is inside it.
func (p Predicate) Eval(k Kind, x float64) bool {
	r := ranges[k].Ideal
	switch p {
	case Below:
		return x < r.Low
	case AtOrAbove:
		return x >= r.High
	case OutOfRange:
		return x < r.Low || x >= r.High
	case NormalOrAbove:
		return x >= r.Low
	case NormalOrBelow:
		return x < r.High
	default:
		return false
	}
}

// ParsePredicate resolves an operator by name.
func ParsePredicate(name string) (Predicate, bool) {
	for i, n := range predicateNames {
		if n == name {
			return Predicate(i), true
		}
	}
	return 0, false
}
