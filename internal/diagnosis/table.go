package diagnosis

import (
	"errors"
	"fmt"

	"github.com/abhisek/vitalcheck/internal/patient"
)

// ErrInvalidRule is returned when a rule definition is malformed.
var ErrInvalidRule = errors.New("invalid rule")

// Table is an ordered, immutable list of rules evaluated first-match-wins.
// It is safe for concurrent use.
type Table struct {
	rules []Rule
}

// NewTable builds a table from definitions in the given order. Order is
// kept exactly; rules are never sorted or deduplicated.
func NewTable(defs []RuleDef) (*Table, error) {
	rules := make([]Rule, len(defs))
	for i, d := range defs {
		if d.Label == "" {
			return nil, fmt.Errorf("%w: rule %d has no label", ErrInvalidRule, i)
		}
		r := Rule{Label: d.Label, Terms: d.terms(), Priority: i}
		for _, t := range r.Terms {
			if !t.Predicate.Valid() {
				return nil, fmt.Errorf("%w: rule %d (%s) uses %s on %s",
					ErrInvalidRule, i, d.Label, t.Predicate, t.Vital)
			}
		}
		rules[i] = r
	}
	return &Table{rules: rules}, nil
}

func mustNewTable(defs []RuleDef) *Table {
	t, err := NewTable(defs)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// Rules returns a copy of the rules in evaluation order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Diagnose scans the table from the top and returns the first rule whose
// conjunction holds for p, or NoDiagnosis. An invalid p is never diagnosed.
func (t *Table) Diagnose(p patient.Patient) Result {
	if !p.Valid() {
		return NoDiagnosis
	}
	for _, r := range t.rules {
		if r.Matches(p) {
			return Result{Label: r.Label, Priority: r.Priority}
		}
	}
	return NoDiagnosis
}

// Matching returns every rule that holds for p, in table order. Only the
// first one is the diagnosis; the rest are shadowed.
func (t *Table) Matching(p patient.Patient) []Rule {
	if !p.Valid() {
		return nil
	}
	var out []Rule
	for _, r := range t.rules {
		if r.Matches(p) {
			out = append(out, r)
		}
	}
	return out
}

// DuplicateConjunctions lists every rule whose conjunction repeats an
// earlier rule's. Such rules are unreachable under first-match evaluation.
func (t *Table) DuplicateConjunctions() []Duplicate {
	first := make(map[[TermsPerRule]Term]int, len(t.rules))
	var dups []Duplicate
	for i, r := range t.rules {
		key := r.conjunction()
		if j, ok := first[key]; ok {
			dups = append(dups, Duplicate{Rule: r, ShadowedBy: t.rules[j]})
			continue
		}
		first[key] = i
	}
	return dups
}
