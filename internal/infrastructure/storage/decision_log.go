package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"ContentDesk/internal/domain"
	"ContentDesk/internal/ports"
)

// Fixed width so text order matches time order.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

var schema = []string{`CREATE TABLE IF NOT EXISTS decisions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id TEXT NOT NULL,
	origin     TEXT NOT NULL DEFAULT '',
	user_id    INTEGER NOT NULL,
	user_name  TEXT NOT NULL,
	role       TEXT NOT NULL,
	kind       TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL,
	verdict    TEXT NOT NULL,
	message    TEXT NOT NULL DEFAULT '',
	reason     TEXT NOT NULL DEFAULT '',
	decided_at TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS decisions_decided_at ON decisions (decided_at)`,
}

var decisionColumns = []string{
	"request_id", "origin", "user_id", "user_name", "role", "kind",
	"status", "verdict", "message", "reason", "decided_at",
}

// DecisionLog persists dispatch decisions into SQLite.
type DecisionLog struct {
	db *sql.DB
}

var _ ports.DecisionLog = (*DecisionLog)(nil)

// NewDecisionLog wraps an already opened database. The schema must exist.
func NewDecisionLog(db *sql.DB) *DecisionLog {
	return &DecisionLog{db: db}
}

// Open opens the SQLite database at dsn and applies the schema.
func Open(dsn string) (*DecisionLog, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, &domain.OpError{Op: "storage.open", Kind: domain.KindStorage, Err: fmt.Errorf("dsn is required: %w", domain.ErrStorage)}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// :memory: databases are per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return &DecisionLog{db: db}, nil
}

// Close releases the database.
func (l *DecisionLog) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Record appends one decision.
func (l *DecisionLog) Record(ctx context.Context, d domain.Decision) error {
	if l == nil || l.db == nil {
		return nil
	}

	query, args, err := sq.Insert("decisions").
		Columns(decisionColumns...).
		Values(
			d.RequestID, d.Origin, d.UserID, d.UserName, string(d.Role), string(d.Kind),
			string(d.Status), string(d.Verdict), d.Message, string(d.Reason),
			d.DecidedAt.UTC().Format(timeFormat),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return &domain.OpError{Op: "storage.record", Kind: domain.KindStorage, Err: fmt.Errorf("insert decision %s: %w", d.RequestID, err)}
	}
	return nil
}

// List returns decisions matching filter, newest first.
func (l *DecisionLog) List(ctx context.Context, filter ports.DecisionFilter) ([]domain.Decision, error) {
	if l == nil || l.db == nil {
		return nil, nil
	}

	where := sq.Eq{}
	if filter.Verdict != "" {
		where["verdict"] = string(filter.Verdict)
	}
	if filter.Role != "" {
		where["role"] = string(filter.Role)
	}

	builder := sq.Select(decisionColumns...).
		From("decisions").
		OrderBy("decided_at DESC", "id DESC")
	if len(where) > 0 {
		builder = builder.Where(where)
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.OpError{Op: "storage.list", Kind: domain.KindStorage, Err: fmt.Errorf("query decisions: %w", err)}
	}

	var out []domain.Decision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		out = append(out, d)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}
	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return out, nil
}

func scanDecision(rows *sql.Rows) (domain.Decision, error) {
	var (
		d                                       domain.Decision
		role, kind, status, verdict, reason, at string
	)
	if err := rows.Scan(
		&d.RequestID, &d.Origin, &d.UserID, &d.UserName, &role, &kind,
		&status, &verdict, &d.Message, &reason, &at,
	); err != nil {
		return domain.Decision{}, fmt.Errorf("scan decision: %w", err)
	}

	decidedAt, err := time.Parse(timeFormat, at)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("parse decided_at %q: %w", at, err)
	}

	d.Role = domain.Role(role)
	d.Kind = domain.ContentKind(kind)
	d.Status = domain.StatusTag(status)
	d.Verdict = domain.Verdict(verdict)
	d.Reason = domain.Reason(reason)
	d.DecidedAt = decidedAt
	return d, nil
}
