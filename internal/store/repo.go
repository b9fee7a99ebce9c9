package store

import (
	"context"
	"database/sql"
	"time"
)

const (
	tablePatientSnapshots = "patient_snapshots"
	tableDiagnosisEvents  = "diagnosis_events"
	tableLLMRequestEvents = "llm_request_events"
)

// DefaultSnapshotHistory is how many patient snapshots are retained.
const DefaultSnapshotHistory = 100

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	After   int64  // sequence > After
	Purpose string // LLM events only; empty = all
}

// DiagnosisEventData captures one single-vital update and its outcome.
type DiagnosisEventData struct {
	RequestID string
	Token     string
	Vital     string // canonical key; empty when the token was not recognized
	Value     float64
	Applied   bool
	Label     string // empty when no rule matched
	Priority  int    // matched rule index, -1 when none
	Snapshot  string // JSON of the evaluated patient
}

// DiagnosisEvent is a stored DiagnosisEventData.
type DiagnosisEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	DiagnosisEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls for one model.
type LLMUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to events.
type EventRepo interface {
	// AppendDiagnosis records a single-vital update.
	AppendDiagnosis(ctx context.Context, data DiagnosisEventData) error

	// AppendLLMRequest records an LLM API call.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryDiagnosisEvents returns diagnosis events, newest first.
	QueryDiagnosisEvents(ctx context.Context, opts QueryOpts) ([]DiagnosisEvent, error)

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one LLM request event, or nil if id is unknown.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}

// eventRepo implements EventRepo on SQLite with the shared sequence.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
