package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendDiagnosis(ctx context.Context, data DiagnosisEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableDiagnosisEvents).
		Columns("sequence", "created_at", "request_id", "token", "vital", "value",
			"applied", "label", "priority", "snapshot").
		Values(seqNum, formatTime(time.Now()), data.RequestID, data.Token, data.Vital, data.Value,
			data.Applied, data.Label, data.Priority, data.Snapshot).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save diagnosis event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryDiagnosisEvents(ctx context.Context, opts QueryOpts) ([]DiagnosisEvent, error) {
	sel := builder().Select("id", "sequence", "created_at", "request_id", "token", "vital",
		"value", "applied", "label", "priority", "snapshot").
		From(entsql.Table(tableDiagnosisEvents)).
		OrderBy(entsql.Desc("sequence"))
	if opts.After > 0 {
		sel = sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query diagnosis events: %w", err)
	}
	defer rows.Close()

	var out []DiagnosisEvent
	for rows.Next() {
		var (
			e         DiagnosisEvent
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &createdAt, &e.RequestID, &e.Token, &e.Vital,
			&e.Value, &e.Applied, &e.Label, &e.Priority, &e.Snapshot); err != nil {
			return nil, fmt.Errorf("scan diagnosis event: %w", err)
		}
		e.Timestamp = parseTime(createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}
