// Package journal records what happens in each game session to a SQL
// database. It is write-mostly: sessions are never restored from it.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/lawnchairsociety/castaway/internal/quest"
)

// writeTimeout bounds each journal write so a slow database never stalls a turn.
const writeTimeout = 2 * time.Second

// Event is one journal row.
type Event struct {
	ID        int64
	SessionID string
	Kind      string
	Subject   string
	At        time.Time
}

// Journal wraps the database connection.
type Journal struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open connects to the configured database and creates the schema.
func Open(cfg Config) (*Journal, error) {
	dialect := NewDialect(DialectType(cfg.Driver))

	var dsn string
	switch d := dialect.(type) {
	case *SQLiteDialect:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite journal needs a path")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
		dsn = cfg.SQLitePath
	case *PostgresDialect:
		dsn = cfg.Postgres.ConnectionString()
	default:
		return nil, fmt.Errorf("unsupported dialect %T", d)
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if _, ok := dialect.(*PostgresDialect); ok {
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
	} else {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize journal (%s): %w", stmt, err)
		}
	}

	j := &Journal{db: db, dialect: dialect, qb: NewQueryBuilder(dialect)}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			started_at BIGINT NOT NULL,
			ended_at BIGINT,
			outcome TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT ''
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS events (
			id %s,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			subject TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`, j.dialect.SerialPrimaryKey()),
		`CREATE INDEX IF NOT EXISTS idx_events_session_id ON events(session_id)`,
	}
	for _, m := range migrations {
		if _, err := j.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// StartSession registers a new session and returns a recorder for it.
func (j *Journal) StartSession(ctx context.Context, player string) (*SessionRecorder, error) {
	id := uuid.New().String()
	_, err := j.db.ExecContext(ctx,
		j.qb.Build(`INSERT INTO sessions (id, player, started_at) VALUES (?, ?, ?)`),
		id, player, time.Now().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return &SessionRecorder{j: j, id: id}, nil
}

// Record appends an event to a session.
func (j *Journal) Record(ctx context.Context, sessionID, kind, subject string) error {
	_, err := j.db.ExecContext(ctx,
		j.qb.Build(`INSERT INTO events (session_id, kind, subject, created_at) VALUES (?, ?, ?, ?)`),
		sessionID, kind, subject, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record %s event: %w", kind, err)
	}
	return nil
}

// EndSession stores the outcome and a summary of a session.
func (j *Journal) EndSession(ctx context.Context, sessionID, outcome, summary string) error {
	_, err := j.db.ExecContext(ctx,
		j.qb.Build(`UPDATE sessions SET ended_at = ?, outcome = ?, summary = ? WHERE id = ?`),
		time.Now().UnixMilli(), outcome, summary, sessionID)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// Events returns the events of a session in order.
func (j *Journal) Events(ctx context.Context, sessionID string) ([]Event, error) {
	rows, err := j.db.QueryContext(ctx,
		j.qb.Build(`SELECT id, session_id, kind, subject, created_at FROM events WHERE session_id = ? ORDER BY id`),
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var at int64
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Kind, &e.Subject, &at); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.At = time.UnixMilli(at)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Outcome returns the recorded outcome of a session.
func (j *Journal) Outcome(ctx context.Context, sessionID string) (string, error) {
	var outcome string
	err := j.db.QueryRowContext(ctx,
		j.qb.Build(`SELECT outcome FROM sessions WHERE id = ?`), sessionID).Scan(&outcome)
	if err != nil {
		return "", fmt.Errorf("failed to query session: %w", err)
	}
	return outcome, nil
}

// SessionRecorder writes the events of one session. It satisfies
// quest.Tracker so it can sit next to the quest manager.
type SessionRecorder struct {
	j  *Journal
	id string
}

var _ quest.Tracker = (*SessionRecorder)(nil)

// ID returns the session id.
func (s *SessionRecorder) ID() string {
	return s.id
}

func (s *SessionRecorder) record(kind, subject string) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return s.j.Record(ctx, s.id, kind, subject)
}

func (s *SessionRecorder) RecordAction(kind quest.ActionKind, subject string) error {
	return s.record(string(kind), subject)
}

func (s *SessionRecorder) RecordArrival(roomID string) error {
	return s.record(string(quest.ActionVisit), roomID)
}

// RecordCommand stores a raw command line.
func (s *SessionRecorder) RecordCommand(line string) error {
	return s.record("command", line)
}

// End stores the outcome and summary of the session.
func (s *SessionRecorder) End(outcome, summary string) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return s.j.EndSession(ctx, s.id, outcome, summary)
}
