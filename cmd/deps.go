package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/vitalcheck/internal/config"
	"github.com/abhisek/vitalcheck/internal/diagnosis"
	"github.com/abhisek/vitalcheck/internal/llm"
	"github.com/abhisek/vitalcheck/internal/logging"
	"github.com/abhisek/vitalcheck/internal/patient"
	"github.com/abhisek/vitalcheck/internal/report"
	"github.com/abhisek/vitalcheck/internal/statefile"
	"github.com/abhisek/vitalcheck/internal/store"
)

// deps are the collaborators a command works with. The store is always
// opened because events live there whichever backend holds the patient.
type deps struct {
	store    *store.Store
	events   store.EventRepo
	patients *store.PatientRepo // nil with the file backend
	rng      *rand.Rand
	svc      *diagnosis.Service
}

func (d *deps) Close() error {
	return d.store.Close()
}

// openDeps wires the service. withReport attaches the LLM reporter when
// reports are enabled.
func (a *app) openDeps(ctx context.Context, withReport bool) (*deps, error) {
	dbPath, err := a.cfg.DBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	d := &deps{store: st, events: st.EventRepo(), rng: a.cfg.Rand()}

	var gw patient.Gateway
	switch a.cfg.State.Backend {
	case config.BackendSQLite:
		d.patients = st.PatientRepo(d.rng).KeepHistory(a.cfg.State.History)
		gw = d.patients
	default:
		path, err := a.cfg.StateFilePath()
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("resolve state file: %w", err)
		}
		gw = statefile.New(path, d.rng)
	}

	opts := []diagnosis.Option{diagnosis.WithEventRecorder(d.events)}
	if withReport && a.cfg.Report.Enabled {
		opts = append(opts, diagnosis.WithReporter(a.reporter(ctx, d.events)))
	}
	d.svc = diagnosis.NewService(diagnosis.DefaultTable(), gw, opts...)
	return d, nil
}

// reporter builds the report generator. Without a usable provider the
// returned reporter explains why in place of the report.
func (a *app) reporter(ctx context.Context, sink llm.EventSink) diagnosis.Reporter {
	cfg := a.cfg.LLM
	if !cfg.HasKey() {
		if found, ok := llm.DiscoverConfig(); ok {
			found.Timeout, found.Retry = cfg.Timeout, cfg.Retry
			cfg = found
		}
	}

	provider, err := llm.NewProvider(ctx, cfg, sink, logging.Logger(logging.SourceLLM))
	if err != nil {
		a.logger.Warn("LLM provider not configured, health report unavailable", "err", err)
		return failedReporter{err: fmt.Errorf("LLM provider not configured: %w", err)}
	}
	return report.NewGenerator(provider, a.cfg.Report.Config)
}

type failedReporter struct{ err error }

func (f failedReporter) Report(context.Context, patient.Patient) string {
	return "Error: " + f.err.Error()
}

var errNeedsSQLite = errors.New("this command needs the sqlite backend (--backend sqlite)")
