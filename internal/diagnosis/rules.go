package diagnosis

import "github.com/abhisek/vitalcheck/internal/vitals"

// RuleDef is the authoring form of a rule: one predicate per vital of the
// quintet, listed as pressure, temperature, saturation, glucose, heart rate.
type RuleDef struct {
	Label       string
	Pressure    vitals.Predicate
	Temperature vitals.Predicate
	Saturation  vitals.Predicate
	Glucose     vitals.Predicate
	HeartRate   vitals.Predicate
}

func (d RuleDef) terms() [TermsPerRule]Term {
	return [TermsPerRule]Term{
		{vitals.SystolicPressure, d.Pressure},
		{vitals.BodyTemperature, d.Temperature},
		{vitals.BloodSaturation, d.Saturation},
		{vitals.BloodGlucose, d.Glucose},
		{vitals.HeartRate, d.HeartRate},
	}
}

const (
	lt  = vitals.Below
	gte = vitals.AtOrAbove
	oor = vitals.OutOfRange
	nge = vitals.NormalOrAbove
	nlt = vitals.NormalOrBelow
)

// canonicalRules is the hand-authored table in evaluation order. Several
// entries share a conjunction with an earlier entry; they are kept in place
// because reordering or removing them changes which label is returned.
// The third entry repeats the "Pulmonary Embolism" label as authored.
var canonicalRules = []RuleDef{
	{"Pneumonia", oor, gte, lt, nge, gte},
	{"Pulmonary Embolism", lt, gte, lt, nge, gte},
	{"Pulmonary Embolism", nge, gte, lt, nge, gte},
	{"Asthma Exacerbation", nge, gte, lt, nge, gte},
	{"ARDS", lt, gte, lt, nge, gte},
	{"Pulmonary Edema", nge, gte, lt, nge, gte},
	{"Bronchiolitis", nge, gte, lt, nge, gte},
	{"Pleural Effusion", nge, nge, lt, nge, gte},
	{"CHF", oor, gte, lt, nge, oor},
	{"Pulmonary Fibrosis", nge, gte, lt, nge, gte},
	{"Lung Cancer", nge, nge, lt, nge, oor},
	{"Acute Bronchitis", nge, gte, lt, nge, gte},
	{"Tuberculosis (TB)", nge, gte, lt, nge, gte},
	{"Cystic Fibrosis", nge, nge, lt, nge, gte},
	{"Pneumothorax", oor, gte, lt, nge, gte},
	{"Interstitial Lung Disease", nge, gte, lt, nge, gte},
	{"Pulmonary Hypertension", nge, nge, lt, nge, oor},
	{"Sepsis", oor, gte, lt, nge, gte},
	{"Diabetic Ketoacidosis (DKA)", oor, nge, lt, gte, gte},
	{"Metabolic Acidosis", lt, gte, nge, lt, gte},
	{"Heatstroke", oor, gte, lt, nge, gte},
	{"Anemia", lt, lt, nlt, nlt, gte},
	{"Thryoid Storm", oor, gte, nlt, nge, gte},
	{"Drug Overdose", oor, nge, lt, nge, oor},
	{"Anxiety or Panic Attacks", oor, gte, lt, nge, oor},
	{"Neurological Disorders", oor, nge, nlt, nge, oor},
	{"Acidosis (Respiratory or Metabolic)", lt, gte, nlt, lt, gte},
	{"Sarcoidosis", nge, gte, lt, nge, gte},
	{"Myasthenia Gravis", lt, nge, nlt, nge, lt},
	{"Sleep Apnea Exacerbation", oor, nge, lt, nge, oor},
}

// CanonicalRules returns a copy of the built-in rule definitions.
func CanonicalRules() []RuleDef {
	out := make([]RuleDef, len(canonicalRules))
	copy(out, canonicalRules)
	return out
}

// defaultTable is built once at package initialization.
var defaultTable = mustNewTable(canonicalRules)

// DefaultTable returns the built-in rule table.
func DefaultTable() *Table {
	return defaultTable
}
