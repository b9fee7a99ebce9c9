package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vitalcheck/internal/logging"
)

// harness runs commands against a private data directory.
type harness struct {
	t    *testing.T
	base []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, name := range []string{
		"VITALCHECK_CONFIG", "VITALCHECK_BACKEND", "VITALCHECK_STATE_FILE", "VITALCHECK_DB",
		"VITALCHECK_SEED", "VITALCHECK_LOG_LEVEL", "VITALCHECK_REPORT",
	} {
		t.Setenv(name, "")
	}
	return &harness{t: t, base: []string{
		"--db", filepath.Join(dir, "vitalcheck.db"),
		"--state-file", filepath.Join(dir, "patient_data.json"),
		"--seed", "7",
		"--log-level", "error",
		"--no-report",
	}}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, h.base...))
	err := root.Execute()
	return out.String(), err
}

type evalOutput struct {
	RequestID string             `json:"request_id"`
	Applied   bool               `json:"applied"`
	Snapshot  map[string]float64 `json:"snapshot"`
	Diagnosis *string            `json:"diagnosis"`
	Rule      int                `json:"rule"`
	Report    string             `json:"report"`
	Defaulted bool               `json:"defaulted"`
}

func decodeEval(t *testing.T, s string) evalOutput {
	t.Helper()
	var out evalOutput
	require.NoError(t, json.Unmarshal([]byte(s), &out))
	return out
}

func TestShowDefaultsWhenNothingStored(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("show", "--json")
	require.NoError(t, err)

	ev := decodeEval(t, out)
	assert.True(t, ev.Defaulted)
	assert.Len(t, ev.Snapshot, 9)
	assert.Nil(t, ev.Diagnosis)
	assert.Equal(t, -1, ev.Rule)
	assert.Empty(t, ev.Report)
}

func TestUpdateRoundTrip(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			h := newHarness(t)
			h.base = append(h.base, "--backend", backend)

			out, err := h.run("update", "bp_systolic", "200", "--json")
			require.NoError(t, err)
			updated := decodeEval(t, out)
			assert.True(t, updated.Applied)
			assert.NotEmpty(t, updated.RequestID)
			assert.Equal(t, 200.0, updated.Snapshot["blood_pressure_systolic_mm_hg"])

			out, err = h.run("show", "--json")
			require.NoError(t, err)
			shown := decodeEval(t, out)
			assert.False(t, shown.Defaulted)
			assert.Equal(t, updated.Snapshot, shown.Snapshot)
		})
	}
}

func TestUpdateUnknownVital(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("update", "pulse", "80")
	require.NoError(t, err)
	assert.Contains(t, out, `Unknown vital "pulse"`)
	assert.Contains(t, out, "bp_systolic")
}

func TestUpdateRejectsBadValue(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("update", "heart_rate", "fast")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid value")

	_, err = h.run("update", "heart_rate", "NaN")
	require.Error(t, err)
}

func TestRulesListsTableInOrder(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("rules")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 32)
	assert.True(t, strings.HasPrefix(lines[2], "0 "))
	assert.Contains(t, lines[2], "Pneumonia")

	out, err = h.run("rules", "--duplicates")
	require.NoError(t, err)
	assert.Contains(t, out, "16 rules can never fire")
	assert.Contains(t, out, "shadowed by #1 Pulmonary Embolism")
}

func TestHistoryNeedsSQLite(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("history")
	require.ErrorIs(t, err, errNeedsSQLite)

	h.base = append(h.base, "--backend", "sqlite")
	_, err = h.run("update", "heart_rate", "130")
	require.NoError(t, err)

	out, err := h.run("history", "-n", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "systolic")
	assert.Contains(t, out, "130.00")
}

func TestEventsRecordsUpdates(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("events")
	require.NoError(t, err)
	assert.Contains(t, out, "No events recorded yet.")

	_, err = h.run("update", "blood_glucose", "250")
	require.NoError(t, err)
	_, err = h.run("update", "pulse", "1")
	require.NoError(t, err)

	out, err = h.run("events")
	require.NoError(t, err)
	assert.Contains(t, out, "blood_glucose_mg_d")
	assert.Contains(t, out, "250.00")
	assert.Contains(t, out, "pulse")
}

func TestResetReplacesState(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("update", "bp_systolic", "250")
	require.NoError(t, err)
	_, err = h.run("reset")
	require.NoError(t, err)

	out, err := h.run("show", "--json")
	require.NoError(t, err)
	ev := decodeEval(t, out)
	assert.False(t, ev.Defaulted)
	assert.Less(t, ev.Snapshot["blood_pressure_systolic_mm_hg"], 121.0)
	assert.Nil(t, ev.Diagnosis)
}

func TestLLMCommandsOnEmptyDB(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("llm", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM events found.")

	out, err = h.run("llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM usage recorded yet.")

	_, err = h.run("llm", "view", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event 1 not found")
}

func TestVersion(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("version")
	require.NoError(t, err)
	assert.Equal(t, "vitalcheck (devel)\n", out)
}

func TestInvalidBackend(t *testing.T) {
	h := newHarness(t)
	h.base = append(h.base, "--backend", "redis")

	_, err := h.run("show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown state backend")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0012", formatCost(0.00123))
	assert.Equal(t, "$1.50", formatCost(1.5))
}

func TestLogLevelFlagReachesLoggers(t *testing.T) {
	h := newHarness(t)
	t.Cleanup(func() { _ = logging.SetLevel("info") })

	quiet := h.base
	h.base = append(append([]string{}, quiet...), "--log-level", "debug")
	_, err := h.run("version")
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, logging.Logger(logging.SourceApp).GetLevel())
	assert.Equal(t, log.DebugLevel, logging.Logger(logging.SourceStore).GetLevel())

	h.base = quiet
	_, err = h.run("version")
	require.NoError(t, err)
	assert.Equal(t, log.ErrorLevel, logging.Logger(logging.SourceApp).GetLevel())
}
