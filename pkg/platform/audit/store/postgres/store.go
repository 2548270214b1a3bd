// Package postgres implements the durable audit store on PostgreSQL. Appends
// are single INSERTs so atomicity comes from the database; the bigserial seq
// column provides the store-wide monotonic order.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver

	audit "arbiter/pkg/platform/audit"
)

// Schema is applied at startup. Kept here rather than a migration tool because
// the service owns exactly one table.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_entries (
	seq         BIGSERIAL PRIMARY KEY,
	id          TEXT NOT NULL UNIQUE,
	ts          TIMESTAMPTZ NOT NULL,
	decision_id TEXT NOT NULL,
	module      TEXT NOT NULL DEFAULT '',
	action      TEXT NOT NULL,
	actor       TEXT NOT NULL DEFAULT '',
	outcome     TEXT NOT NULL DEFAULT '',
	score       INT NOT NULL DEFAULT 0,
	request_id  TEXT NOT NULL DEFAULT '',
	metadata    JSONB
);
CREATE INDEX IF NOT EXISTS audit_entries_decision_idx ON audit_entries (decision_id);
CREATE INDEX IF NOT EXISTS audit_entries_module_ts_idx ON audit_entries (module, ts);
`

type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL audit store over an existing connection pool.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects via the pgx stdlib driver and ensures the schema exists.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply audit schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Append(ctx context.Context, entry audit.Entry) (audit.Entry, error) {
	if err := entry.Validate(); err != nil {
		return audit.Entry{}, err
	}

	var metadata []byte
	if len(entry.Metadata) > 0 {
		var err error
		metadata, err = json.Marshal(entry.Metadata)
		if err != nil {
			return audit.Entry{}, fmt.Errorf("marshal audit metadata: %w", err)
		}
	}

	const query = `
		INSERT INTO audit_entries (id, ts, decision_id, module, action, actor, outcome, score, request_id, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING seq
	`
	err := s.db.QueryRowContext(ctx, query,
		entry.ID,
		entry.Timestamp,
		entry.DecisionID,
		entry.Module,
		string(entry.Action),
		entry.Actor,
		entry.Outcome,
		entry.Score,
		entry.RequestID,
		metadata,
	).Scan(&entry.Seq)
	if err != nil {
		return audit.Entry{}, fmt.Errorf("insert audit entry: %w", err)
	}
	return entry, nil
}

func (s *Store) Query(ctx context.Context, filter audit.Filter, page audit.Page) (*audit.QueryResult, error) {
	page = page.Normalize()

	where, args := buildWhere(filter)

	result := &audit.QueryResult{Page: page.Number, Limit: page.Limit, Entries: []audit.Entry{}}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_entries").Scan(&result.TotalRecords); err != nil {
		return nil, fmt.Errorf("count audit entries: %w", err)
	}

	summaryQuery := fmt.Sprintf(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE action = 'evaluate'),
		       COUNT(*) FILTER (WHERE action = 'approve'),
		       COUNT(*) FILTER (WHERE action = 'reject'),
		       COUNT(*) FILTER (WHERE action = 'escalate'),
		       COALESCE(AVG(score) FILTER (WHERE action = 'evaluate'), 0)
		FROM audit_entries %s`, where)
	err := s.db.QueryRowContext(ctx, summaryQuery, args...).Scan(
		&result.FilteredRecords,
		&result.Summary.Evaluated,
		&result.Summary.Approved,
		&result.Summary.Rejected,
		&result.Summary.Escalated,
		&result.Summary.AvgScore,
	)
	if err != nil {
		return nil, fmt.Errorf("summarize audit entries: %w", err)
	}

	pageQuery := fmt.Sprintf(`
		SELECT seq, id, ts, decision_id, module, action, actor, outcome, score, request_id, metadata
		FROM audit_entries %s
		ORDER BY seq
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	rows, err := s.db.QueryContext(ctx, pageQuery, append(args, page.Limit, (page.Number-1)*page.Limit)...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e audit.Entry
		var action string
		var metadata []byte
		if err := rows.Scan(&e.Seq, &e.ID, &e.Timestamp, &e.DecisionID, &e.Module, &action, &e.Actor, &e.Outcome, &e.Score, &e.RequestID, &metadata); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Action = audit.Action(action)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal audit metadata: %w", err)
			}
		}
		result.Entries = append(result.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return result, nil
}

func buildWhere(filter audit.Filter) (string, []any) {
	var clauses []string
	var args []any

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.DecisionID != "" {
		add("decision_id = $%d", filter.DecisionID)
	}
	if filter.Module != "" {
		add("module = $%d", filter.Module)
	}
	if !filter.From.IsZero() {
		add("ts >= $%d", filter.From)
	}
	if !filter.To.IsZero() {
		add("ts <= $%d", filter.To)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}
