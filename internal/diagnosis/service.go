package diagnosis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/abhisek/vitalcheck/internal/logging"
	"github.com/abhisek/vitalcheck/internal/patient"
	"github.com/abhisek/vitalcheck/internal/store"
	"github.com/abhisek/vitalcheck/internal/vitals"
)

// Reporter produces narrative text for a snapshot. Failures are reported
// inline in the returned text.
type Reporter interface {
	Report(ctx context.Context, p patient.Patient) string
}

// EventRecorder stores one event per update. store.EventRepo satisfies it.
type EventRecorder interface {
	AppendDiagnosis(ctx context.Context, data store.DiagnosisEventData) error
}

// Evaluation is a snapshot together with its diagnosis.
type Evaluation struct {
	Snapshot  patient.Patient
	Diagnosis Result
	Report    string // empty when no reporter is configured
	Defaulted bool   // snapshot was generated, not loaded
}

// UpdateResult is the outcome of a single-vital update.
type UpdateResult struct {
	Evaluation
	RequestID string
	Token     string
	Vital     vitals.Kind
	Applied   bool    // false when the token was not recognized
	Previous  float64 // reading before the update, when Applied
}

// Service loads, updates and diagnoses the persisted patient. Classification
// itself is delegated to the Table and never depends on the reporter.
type Service struct {
	table    *Table
	gateway  patient.Gateway
	reporter Reporter
	events   EventRecorder
	logger   *log.Logger

	// serializes load-modify-save
	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

func WithReporter(r Reporter) Option { return func(s *Service) { s.reporter = r } }

func WithEventRecorder(r EventRecorder) Option { return func(s *Service) { s.events = r } }

func WithLogger(l *log.Logger) Option { return func(s *Service) { s.logger = l } }

func NewService(table *Table, gateway patient.Gateway, opts ...Option) *Service {
	s := &Service{
		table:   table,
		gateway: gateway,
	}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = logging.Logger(logging.SourceDiagnosis)
	}
	return s
}

// Table returns the rule table the service evaluates.
func (s *Service) Table() *Table { return s.table }

// Current loads the persisted patient and diagnoses it. No report is
// generated.
func (s *Service) Current(ctx context.Context) (*Evaluation, error) {
	res, err := s.gateway.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}
	if res.Defaulted {
		s.logger.Info("no stored patient, using generated healthy values")
	}
	return &Evaluation{
		Snapshot:  res.Patient,
		Diagnosis: s.table.Diagnose(res.Patient),
		Defaulted: res.Defaulted,
	}, nil
}

// Report returns the narrative report for p, or "" without a reporter.
func (s *Service) Report(ctx context.Context, p patient.Patient) string {
	if s.reporter == nil {
		return ""
	}
	return s.reporter.Report(ctx, p)
}

// Update sets one vital identified by its external token, persists the new
// snapshot, then diagnoses it and generates the report.
//
// An unrecognized token is not an error: the stored snapshot is left
// untouched and evaluated as is. A non-finite value is rejected before
// anything is saved. Values outside the allowed range are accepted with a
// warning.
func (s *Service) Update(ctx context.Context, token string, value float64) (*UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.gateway.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}

	out := &UpdateResult{
		RequestID: uuid.NewString(),
		Token:     token,
	}
	logger := s.logger.With("request_id", out.RequestID, "token", token)

	snap := res.Patient
	kind, ok := patient.ParseToken(token)
	if !ok {
		logger.Warn("unrecognized vital, snapshot unchanged", "valid", patient.Tokens())
	} else {
		next, err := snap.With(kind, value)
		if err != nil {
			return nil, fmt.Errorf("update %s: %w", token, err)
		}
		if !vitals.Allowed(kind).Contains(value) {
			logger.Warn("reading outside allowed range",
				"vital", kind.Key(), "value", value, "allowed", vitals.Allowed(kind))
		}
		if err := s.gateway.Save(ctx, next); err != nil {
			return nil, fmt.Errorf("save patient: %w", err)
		}
		out.Vital = kind
		out.Applied = true
		out.Previous = snap.Get(kind)
		snap = next
	}

	out.Evaluation = Evaluation{
		Snapshot:  snap,
		Diagnosis: s.table.Diagnose(snap),
		Defaulted: res.Defaulted,
	}
	out.Report = s.Report(ctx, snap)

	logger.Info("vital updated", "applied", out.Applied, "diagnosis", out.Diagnosis)
	s.record(ctx, out, value)
	return out, nil
}

// Reset replaces the persisted snapshot with p.
func (s *Service) Reset(ctx context.Context, p patient.Patient) (*Evaluation, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("reset: %w", patient.ErrIncomplete)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gateway.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save patient: %w", err)
	}
	ev := &Evaluation{Snapshot: p, Diagnosis: s.table.Diagnose(p)}
	s.logger.Info("patient reset", "diagnosis", ev.Diagnosis)
	return ev, nil
}

func (s *Service) record(ctx context.Context, r *UpdateResult, value float64) {
	if s.events == nil {
		return
	}
	data := store.DiagnosisEventData{
		RequestID: r.RequestID,
		Token:     r.Token,
		Value:     value,
		Applied:   r.Applied,
		Label:     r.Diagnosis.Label,
		Priority:  r.Diagnosis.Priority,
	}
	if r.Applied {
		data.Vital = r.Vital.Key()
	}
	if b, err := json.Marshal(r.Snapshot); err == nil {
		data.Snapshot = string(b)
	}
	if err := s.events.AppendDiagnosis(ctx, data); err != nil {
		s.logger.Warn("recording diagnosis event", "request_id", r.RequestID, "err", err)
	}
}
