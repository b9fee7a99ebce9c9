package diagnosis

import (
	"fmt"
	"strings"

	"github.com/abhisek/vitalcheck/internal/patient"
	"github.com/abhisek/vitalcheck/internal/vitals"
)

// TermsPerRule is the number of terms in every rule.
const TermsPerRule = 5

// ruleVitals is the fixed quintet every rule conditions on.
var ruleVitals = [TermsPerRule]vitals.Kind{
	vitals.SystolicPressure,
	vitals.BodyTemperature,
	vitals.BloodSaturation,
	vitals.BloodGlucose,
	vitals.HeartRate,
}

// RuleVitals returns the vitals every rule conditions on, in term order.
func RuleVitals() []vitals.Kind {
	out := ruleVitals
	return out[:]
}

// Term applies one predicate to one vital.
type Term struct {
	Vital     vitals.Kind
	Predicate vitals.Predicate
}

// Holds reports whether the term is true for p.
func (t Term) Holds(p patient.Patient) bool {
	return t.Predicate.Eval(t.Vital, p.Get(t.Vital))
}

func (t Term) String() string {
	return t.Vital.Key() + ":" + t.Predicate.String()
}

// Rule is a labeled conjunction of five terms. Priority is the rule's index
// in its table; lower fires first.
type Rule struct {
	Label    string
	Terms    [TermsPerRule]Term
	Priority int
}

// Matches evaluates the conjunction, stopping at the first false term.
func (r Rule) Matches(p patient.Patient) bool {
	for _, t := range r.Terms {
		if !t.Holds(p) {
			return false
		}
	}
	return true
}

// conjunction returns the terms ordered by vital so that two rules listing
// the same terms in a different order compare equal.
func (r Rule) conjunction() [TermsPerRule]Term {
	c := r.Terms
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && c[j].Vital < c[j-1].Vital; j-- {
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
	return c
}

func (r Rule) String() string {
	parts := make([]string, len(r.Terms))
	for i, t := range r.Terms {
		parts[i] = t.String()
	}
	return fmt.Sprintf("#%d %s [%s]", r.Priority, r.Label, strings.Join(parts, " && "))
}

// Result is the outcome of evaluating a table. Priority is -1 when no rule
// matched.
type Result struct {
	Label    string
	Priority int
}

// NoDiagnosis is the result when no rule matches.
var NoDiagnosis = Result{Priority: -1}

// Matched reports whether a rule fired.
func (r Result) Matched() bool {
	return r.Priority >= 0
}

func (r Result) String() string {
	if !r.Matched() {
		return "no diagnosis"
	}
	return r.Label
}

// Duplicate records a rule whose conjunction repeats an earlier rule's and
// therefore can never fire.
type Duplicate struct {
	Rule       Rule
	ShadowedBy Rule
}
