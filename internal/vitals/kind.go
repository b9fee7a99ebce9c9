package vitals

import "fmt"

// Kind identifies one of the nine measured vitals.
type Kind int

const (
	BodyTemperature Kind = iota
	SystolicPressure
	DiastolicPressure
	HeartRate
	RespiratoryRate
	BloodGlucose
	BloodSaturation
	Sodium
	Potassium
)

// NumKinds is the number of vitals in a patient snapshot.
const NumKinds = 9

type kindInfo struct {
	key   string
	label string
	unit  string
}

// kindTable is indexed by Kind. Keys are the persisted field names and must
// not change: existing state files depend on them.
var kindTable = [NumKinds]kindInfo{
	BodyTemperature:   {"body_temperature_celcius", "Body temperature", "°C"},
	SystolicPressure:  {"blood_pressure_systolic_mm_hg", "Blood pressure", "mmHg"},
	DiastolicPressure: {"blood_pressure_diastolic_mm_hg", "Diastolic pressure", "mmHg"},
	HeartRate:         {"resting_heart_rate_bpm", "Heart rate", "bpm"},
	RespiratoryRate:   {"respiratory_rate_bpm", "Respiratory rate", "bpm"},
	BloodGlucose:      {"blood_glucose_mg_dL", "Blood glucose", "mg/dL"},
	BloodSaturation:   {"blood_saturation", "Blood saturation", "%"},
	Sodium:            {"sodium_rate", "Sodium", "mEq/L"},
	Potassium:         {"potassium_rate", "Potassium", "mEq/L"},
}

// All returns every vital in canonical order.
func All() []Kind {
	out := make([]Kind, NumKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Valid reports whether k is one of the nine known vitals.
func (k Kind) Valid() bool {
	return k >= 0 && k < NumKinds
}

// Key returns the canonical field name used in persisted snapshots.
func (k Kind) Key() string {
	if !k.Valid() {
		return fmt.Sprintf("vital(%d)", int(k))
	}
	return kindTable[k].key
}

// Label returns a human-readable name.
func (k Kind) Label() string {
	if !k.Valid() {
		return k.Key()
	}
	return kindTable[k].label
}

// Unit returns the measurement unit.
func (k Kind) Unit() string {
	if !k.Valid() {
		return ""
	}
	return kindTable[k].unit
}

func (k Kind) String() string { return k.Key() }

// ParseKey resolves a canonical field name to its Kind.
func ParseKey(key string) (Kind, bool) {
	for i, info := range kindTable {
		if info.key == key {
			return Kind(i), true
		}
	}
	return 0, false
}
