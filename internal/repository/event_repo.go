package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"hvacsim/internal/models"

	"github.com/google/uuid"
)

const (
	insertEventSQL = `
		INSERT INTO sim_events (id, occurred_at, type, message, meta)
		VALUES (?, ?, ?, ?, ?)
	`
	selectEventsSQL = `SELECT id, occurred_at, type, message, meta FROM sim_events`
)

// EventSQLite persists the append-only event journal.
type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

var _ EventRepo = (*EventSQLite)(nil)

// Append inserts one event. A missing EventID gets a fresh UUID, a zero
// OccurredAt is stamped with the current UTC time and Type is normalized
// to upper case.
func (r *EventSQLite) Append(ctx context.Context, e models.SimEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.OccurredAt.Format("2006-01-02 15:04:05"),
		normalizeEventType(e.Type),
		e.Description,
		encodeMeta(e.Metadata),
	)
	return err
}

// List returns events inside [from, to] (zero bounds are open), filtered by
// type when one is given, oldest first.
func (r *EventSQLite) List(ctx context.Context, from, to time.Time, typ string) ([]models.SimEvent, error) {
	var b strings.Builder
	b.WriteString(selectEventsSQL)

	var (
		args []any
		sep  = " WHERE "
	)
	add := func(clause string, arg any) {
		b.WriteString(sep)
		b.WriteString(clause)
		args = append(args, arg)
		sep = " AND "
	}

	if !from.IsZero() {
		add("occurred_at >= ?", from.UTC())
	}
	if !to.IsZero() {
		add("occurred_at <= ?", to.UTC())
	}
	if t := normalizeEventType(typ); t != "" {
		add("type = ?", t)
	}
	b.WriteString(" ORDER BY occurred_at ASC")

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.SimEvent, 0, 64)
	for rows.Next() {
		var (
			ev   models.SimEvent
			meta sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &ev.Description, &meta); err != nil {
			return nil, err
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		ev.Metadata = decodeMeta(meta)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeEventType(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// encodeMeta renders Metadata as a JSON column value, NULL when absent or
// unmarshalable.
func encodeMeta(v any) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

// decodeMeta restores the stored JSON document; a malformed payload comes
// back as the raw string.
func decodeMeta(ns sql.NullString) any {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(ns.String), &v); err != nil {
		return ns.String
	}
	return v
}
