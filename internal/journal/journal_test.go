package journal

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lawnchairsociety/castaway/internal/quest"
)

func TestNewDialect(t *testing.T) {
	if _, ok := NewDialect(DialectPostgres).(*PostgresDialect); !ok {
		t.Error("Expected *PostgresDialect")
	}
	if _, ok := NewDialect("unknown").(*SQLiteDialect); !ok {
		t.Error("Expected unknown dialect to default to SQLite")
	}
}

func TestQueryBuilder(t *testing.T) {
	query := "SELECT * FROM events WHERE session_id = ? AND kind = ?"

	sqlite := NewQueryBuilder(&SQLiteDialect{})
	if got := sqlite.Build(query); got != query {
		t.Errorf("SQLite Build() = %q, want unchanged", got)
	}

	pg := NewQueryBuilder(&PostgresDialect{})
	want := "SELECT * FROM events WHERE session_id = $1 AND kind = $2"
	if got := pg.Build(query); got != want {
		t.Errorf("Postgres Build() = %q, want %q", got, want)
	}
}

func TestPostgresConnectionString(t *testing.T) {
	cfg := DefaultPostgresConfig()
	cfg.User = "castaway"
	cfg.Password = "secret"
	cfg.Database = "journal"

	got := cfg.ConnectionString()
	for _, part := range []string{"host=localhost", "port=5432", "user=castaway", "dbname=journal", "sslmode=disable"} {
		if !strings.Contains(got, part) {
			t.Errorf("Connection string %q missing %q", got, part)
		}
	}

	cfg.DSN = "postgres://x@y/z"
	if cfg.ConnectionString() != "postgres://x@y/z" {
		t.Error("Expected DSN to be used verbatim")
	}
}

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(DefaultConfig(filepath.Join(t.TempDir(), "journal", "test.db")))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestSessionRoundTrip(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	rec, err := j.StartSession(ctx, "Captain")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if len(rec.ID()) != 36 {
		t.Errorf("Expected a UUID session id, got %q", rec.ID())
	}

	var tracker quest.Tracker = rec
	if err := tracker.RecordAction(quest.ActionTake, "rope"); err != nil {
		t.Fatalf("RecordAction failed: %v", err)
	}
	if err := tracker.RecordArrival("cove"); err != nil {
		t.Fatalf("RecordArrival failed: %v", err)
	}
	if err := rec.RecordCommand("go O"); err != nil {
		t.Fatalf("RecordCommand failed: %v", err)
	}
	if err := rec.End("quit", "{}"); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	events, err := j.Events(ctx, rec.ID())
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	if events[0].Kind != "take" || events[0].Subject != "rope" {
		t.Errorf("Unexpected first event %+v", events[0])
	}
	if events[1].Kind != "visit" || events[1].Subject != "cove" {
		t.Errorf("Unexpected second event %+v", events[1])
	}
	if events[2].Kind != "command" {
		t.Errorf("Unexpected third event %+v", events[2])
	}

	outcome, err := j.Outcome(ctx, rec.ID())
	if err != nil {
		t.Fatalf("Outcome failed: %v", err)
	}
	if outcome != "quit" {
		t.Errorf("Expected outcome 'quit', got %q", outcome)
	}
}

func TestSessionsAreSeparate(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	a, _ := j.StartSession(ctx, "A")
	b, _ := j.StartSession(ctx, "B")
	a.RecordAction(quest.ActionTalk, "Jacob")

	events, err := j.Events(ctx, b.ID())
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Expected no events for session B, got %d", len(events))
	}
}

func TestOpenRequiresSQLitePath(t *testing.T) {
	if _, err := Open(Config{Driver: "sqlite"}); err == nil {
		t.Error("Expected error without a sqlite path")
	}
}
