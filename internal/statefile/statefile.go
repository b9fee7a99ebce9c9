// Package statefile persists the patient snapshot as a JSON file and reads
// back every key shape older versions of the file used.
package statefile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/abhisek/vitalcheck/internal/logging"
	"github.com/abhisek/vitalcheck/internal/patient"
	"github.com/abhisek/vitalcheck/internal/vitals"
)

// DefaultFileName is the file name used when no path is configured.
const DefaultFileName = "patient_data.json"

// Gateway reads and writes the snapshot file at Path.
type Gateway struct {
	path   string
	rng    *rand.Rand
	logger *log.Logger
}

var _ patient.Gateway = (*Gateway)(nil)

// New returns a gateway for path. rng seeds the default patient used when
// the file is missing or unreadable.
func New(path string, rng *rand.Rand) *Gateway {
	return &Gateway{path: path, rng: rng, logger: logging.Logger(logging.SourceStateFile)}
}

// Path returns the file location.
func (g *Gateway) Path() string {
	return g.path
}

// Load reads the file and normalizes it to the nine canonical vitals.
// A missing, empty or malformed file yields a defaulted healthy patient.
func (g *Gateway) Load(_ context.Context) (patient.LoadResult, error) {
	data, err := os.ReadFile(g.path)
	if errors.Is(err, fs.ErrNotExist) {
		g.logger.Debug("state file not found, using default patient", "path", g.path)
		return g.defaulted(), nil
	}
	if err != nil {
		return patient.LoadResult{}, fmt.Errorf("read state file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		g.logger.Warn("state file is empty, using default patient", "path", g.path)
		return g.defaulted(), nil
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		g.logger.Warn("state file is corrupted, using default patient", "path", g.path, "err", err)
		return g.defaulted(), nil
	}

	p, err := patient.FromFields(Normalize(doc))
	if err != nil {
		// Normalize fills every vital, so this only trips on bad fallbacks.
		return patient.LoadResult{}, fmt.Errorf("normalize state file: %w", err)
	}
	return patient.LoadResult{Patient: p}, nil
}

// Save overwrites the file with the canonical nine-field snapshot. The
// write goes through a temp file and rename so a crash never leaves a
// truncated file behind.
func (g *Gateway) Save(_ context.Context, p patient.Patient) error {
	data, err := json.MarshalIndent(p, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".patient-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), g.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

func (g *Gateway) defaulted() patient.LoadResult {
	return patient.LoadResult{Patient: patient.Healthy(g.rng), Defaulted: true}
}

// source is one place a vital may be stored: a flat key, or a nested
// {"key": {"value": x}} object when nested is set.
type source struct {
	key    string
	nested bool
}

type fieldSpec struct {
	sources  []source
	fallback float64
}

// fieldSpecs lists, per vital, where to look in priority order and the
// value to use when none is present. Canonical keys come first so files
// written by Save read back unchanged.
var fieldSpecs = map[vitals.Kind]fieldSpec{
	vitals.BodyTemperature: {
		sources:  []source{{key: vitals.BodyTemperature.Key()}, {key: "temperature", nested: true}},
		fallback: 36.8,
	},
	vitals.SystolicPressure: {
		sources:  []source{{key: vitals.SystolicPressure.Key()}, {key: "bp_systolic"}, {key: "blood_pressure", nested: true}},
		fallback: 120,
	},
	vitals.DiastolicPressure: {
		sources:  []source{{key: vitals.DiastolicPressure.Key()}, {key: "bp_diastolic"}},
		fallback: 80,
	},
	vitals.HeartRate: {
		sources:  []source{{key: vitals.HeartRate.Key()}, {key: "heart_rate"}},
		fallback: 75,
	},
	vitals.RespiratoryRate: {
		sources:  []source{{key: vitals.RespiratoryRate.Key()}, {key: "respiratory_rate"}},
		fallback: 16,
	},
	vitals.BloodGlucose: {
		sources:  []source{{key: vitals.BloodGlucose.Key()}, {key: "blood_glucose"}, {key: "glucose", nested: true}},
		fallback: 90,
	},
	vitals.BloodSaturation: {
		sources:  []source{{key: vitals.BloodSaturation.Key()}, {key: "saturation", nested: true}},
		fallback: 98,
	},
	vitals.Sodium: {
		sources:  []source{{key: vitals.Sodium.Key()}},
		fallback: 140,
	},
	vitals.Potassium: {
		sources:  []source{{key: vitals.Potassium.Key()}},
		fallback: 4.2,
	},
}

// Normalize maps a decoded state document to all nine vitals. Values that
// are absent or not numbers fall through to the next source and finally to
// the per-vital fallback.
func Normalize(doc map[string]any) patient.Fields {
	fields := make(patient.Fields, vitals.NumKinds)
	for _, k := range vitals.All() {
		spec := fieldSpecs[k]
		v, ok := lookup(doc, spec.sources)
		if !ok {
			v = spec.fallback
		}
		fields[k] = v
	}
	return fields
}

// Fallback returns the value Normalize uses for k when the document has none.
func Fallback(k vitals.Kind) float64 {
	return fieldSpecs[k].fallback
}

func lookup(doc map[string]any, sources []source) (float64, bool) {
	for _, src := range sources {
		raw, ok := doc[src.key]
		if !ok {
			continue
		}
		if src.nested {
			obj, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			raw, ok = obj["value"]
			if !ok {
				continue
			}
		}
		if v, ok := raw.(float64); ok {
			return v, true
		}
	}
	return 0, false
}
