// Package audit appends an immutable record of every administrative mutation
// to billing rules, with before/after snapshots. Entries are write-once: no
// update or delete path exists, and a recording failure aborts the mutation
// that triggered it.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Modules
const (
	ModuleRates         = "tarifas"
	ModulePlans         = "planes"
	ModuleBenefits      = "beneficios"
	ModuleFleets        = "flotillas"
	ModuleSubscriptions = "suscripciones"
)

// Operation types, as the administration front-end records them
type OperationType string

const (
	OpInsert OperationType = "Insercion"
	OpUpdate OperationType = "Actualizacion"
	OpDelete OperationType = "Eliminacion"
)

// Actor identifies who performed an audited mutation and from where
type Actor struct {
	UserID   string
	ClientIP string
}

// Entry is one append-only audit record
type Entry struct {
	ID             uuid.UUID       `json:"id"`
	Module         string          `json:"module"`
	Entity         string          `json:"entity"`
	Operation      OperationType   `json:"operation_type"`
	UserID         string          `json:"user_id"`
	PreviousValues json.RawMessage `json:"previous_values,omitempty"`
	NewValues      json.RawMessage `json:"new_values,omitempty"`
	ClientIP       string          `json:"client_ip,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Snapshot marshals an entity state for the previous/new columns. A nil
// entity (e.g. no superseded rate) yields a nil snapshot.
func Snapshot(v interface{}) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal audit snapshot: %w", err)
	}
	return data, nil
}

// Recorder persists audit entries
type Recorder interface {
	Record(ctx context.Context, entry *Entry) error
	RecordTx(ctx context.Context, tx pgx.Tx, entry *Entry) error
}

// DB is the pool surface the recorder needs (compatible with pgxpool.Pool
// and pgxmock)
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

// PGRecorder writes audit entries to Postgres and mirrors them to slog
type PGRecorder struct {
	db     DB
	logger *slog.Logger
}

func NewPGRecorder(db DB, logger *slog.Logger) *PGRecorder {
	return &PGRecorder{
		db:     db,
		logger: logger.With("component", "audit"),
	}
}

const insertEntry = `
	INSERT INTO audit_log (id, module, entity, operation_type, user_id, previous_values, new_values, client_ip, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
`

// Record appends one entry. Storage failure is returned to the caller, never
// swallowed: a billing-rule change without an audit trail is a defect.
func (r *PGRecorder) Record(ctx context.Context, entry *Entry) error {
	r.fill(entry)

	_, err := r.db.Exec(ctx, insertEntry,
		entry.ID,
		entry.Module,
		entry.Entity,
		string(entry.Operation),
		entry.UserID,
		entry.PreviousValues,
		entry.NewValues,
		entry.ClientIP,
	)
	if err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}

	r.log(ctx, entry)
	return nil
}

// RecordTx appends one entry inside the caller's transaction so the audited
// mutation and its trail commit or roll back together.
func (r *PGRecorder) RecordTx(ctx context.Context, tx pgx.Tx, entry *Entry) error {
	r.fill(entry)

	_, err := tx.Exec(ctx, insertEntry,
		entry.ID,
		entry.Module,
		entry.Entity,
		string(entry.Operation),
		entry.UserID,
		entry.PreviousValues,
		entry.NewValues,
		entry.ClientIP,
	)
	if err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}

	r.log(ctx, entry)
	return nil
}

func (r *PGRecorder) fill(entry *Entry) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
}

func (r *PGRecorder) log(ctx context.Context, entry *Entry) {
	r.logger.InfoContext(ctx, "audit_entry",
		slog.String("entry_id", entry.ID.String()),
		slog.String("module", entry.Module),
		slog.String("entity", entry.Entity),
		slog.String("operation", string(entry.Operation)),
		slog.String("user_id", entry.UserID),
	)
}

// NoOpRecorder discards entries (tests only)
type NoOpRecorder struct{}

func (NoOpRecorder) Record(_ context.Context, _ *Entry) error { return nil }

func (NoOpRecorder) RecordTx(_ context.Context, _ pgx.Tx, _ *Entry) error { return nil }
