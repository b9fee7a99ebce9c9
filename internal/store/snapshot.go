package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/charmbracelet/log"

	"github.com/abhisek/vitalcheck/internal/patient"
)

// PatientRepo stores patient snapshots in SQLite. The most recent row is
// the current state; older rows are kept as history up to keep rows.
type PatientRepo struct {
	db     *sql.DB
	rng    *rand.Rand
	keep   int
	logger *log.Logger
}

var _ patient.Gateway = (*PatientRepo)(nil)

// SnapshotRecord is one stored snapshot.
type SnapshotRecord struct {
	ID        int
	Timestamp time.Time
	Patient   patient.Patient
}

// Load returns the newest snapshot. An empty table or an unreadable row
// yields a defaulted healthy patient.
func (r *PatientRepo) Load(ctx context.Context) (patient.LoadResult, error) {
	records, err := r.History(ctx, 1)
	if err != nil {
		var decodeErr *snapshotDecodeError
		if !errors.As(err, &decodeErr) {
			return patient.LoadResult{}, err
		}
		r.logger.Warn("stored snapshot is unreadable, using default patient", "id", decodeErr.id, "err", decodeErr.err)
		return patient.LoadResult{Patient: patient.Healthy(r.rng), Defaulted: true}, nil
	}
	if len(records) == 0 {
		return patient.LoadResult{Patient: patient.Healthy(r.rng), Defaulted: true}, nil
	}
	return patient.LoadResult{Patient: records[0].Patient}, nil
}

// Save appends p as the newest snapshot and prunes old history.
func (r *PatientRepo) Save(ctx context.Context, p patient.Patient) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	query, args := builder().Insert(tablePatientSnapshots).
		Columns("created_at", "data").
		Values(formatTime(time.Now()), string(data)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	if r.keep > 0 {
		if err := r.Prune(ctx, r.keep); err != nil {
			return err
		}
	}
	return nil
}

// History returns up to limit snapshots, newest first. limit <= 0 returns
// all of them.
func (r *PatientRepo) History(ctx context.Context, limit int) ([]SnapshotRecord, error) {
	sel := builder().Select("id", "created_at", "data").
		From(entsql.Table(tablePatientSnapshots)).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []SnapshotRecord
	for rows.Next() {
		var (
			id        int
			createdAt string
			data      string
		)
		if err := rows.Scan(&id, &createdAt, &data); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		var p patient.Patient
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, &snapshotDecodeError{id: id, err: err}
		}
		out = append(out, SnapshotRecord{ID: id, Timestamp: parseTime(createdAt), Patient: p})
	}
	return out, rows.Err()
}

// Prune deletes all but the keep most recent snapshots.
func (r *PatientRepo) Prune(ctx context.Context, keep int) error {
	query, args := builder().Select("id").
		From(entsql.Table(tablePatientSnapshots)).
		OrderBy(entsql.Desc("id")).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep snapshots exist
	}
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	query, args = builder().Delete(tablePatientSnapshots).
		Where(entsql.LTE("id", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

type snapshotDecodeError struct {
	id  int
	err error
}

func (e *snapshotDecodeError) Error() string {
	return fmt.Sprintf("decode snapshot %d: %v", e.id, e.err)
}

func (e *snapshotDecodeError) Unwrap() error { return e.err }
