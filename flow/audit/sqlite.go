package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrClosed is returned by sink operations after Close.
var ErrClosed = errors.New("audit sink is closed")

// SQLiteSink is a SQLite-backed Sink.
//
// It stores the audit trail in a single-file database:
//   - "./audit.db" - file in current directory
//   - ":memory:" - in-memory database (data lost on close)
//
// The sink auto-creates its schema on first use and enables WAL mode
// so concurrent runs can query while another emits. Details maps are
// stored as JSON.
type SQLiteSink struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteSink opens (creating if needed) a SQLite audit database at
// path.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// SQLite supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %s: %w", pragma, err)
		}
	}

	sink := &SQLiteSink{db: db}
	if err := sink.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return sink, nil
}

func (s *SQLiteSink) createTables(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS audit_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_type TEXT NOT NULL,
			job_id TEXT NOT NULL,
			node_id TEXT NOT NULL,
			status TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			details TEXT
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create audit_events table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_audit_job_id ON audit_events(job_id)"); err != nil {
		return fmt.Errorf("failed to create idx_audit_job_id: %w", err)
	}
	return nil
}

// Emit appends the event. The insert is a single statement; the
// autoincrement id preserves emission order for Query.
func (s *SQLiteSink) Emit(ctx context.Context, event Event) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	var details interface{}
	if event.Details != nil {
		data, err := json.Marshal(event.Details)
		if err != nil {
			return fmt.Errorf("failed to marshal event details: %w", err)
		}
		details = string(data)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_events (event_type, job_id, node_id, status, timestamp, details)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(event.EventType), event.JobID, event.NodeID, event.Status,
		event.Timestamp.UTC().Format(time.RFC3339Nano), details,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}
	return nil
}

// Query returns the job's events in emission order.
func (s *SQLiteSink) Query(ctx context.Context, jobID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT event_type, job_id, node_id, status, timestamp, details
		 FROM audit_events WHERE job_id = ? ORDER BY id`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEvents(rows)
}

// Close releases the database connection. Further Emit/Query calls
// return ErrClosed.
func (s *SQLiteSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// scanEvents converts audit rows back into events. Shared by the
// SQLite and MySQL sinks, whose column layouts are identical.
func scanEvents(rows *sql.Rows) ([]Event, error) {
	events := make([]Event, 0)
	for rows.Next() {
		var (
			eventType, jobID, nodeID, status, timestamp string
			details                                     sql.NullString
		)
		if err := rows.Scan(&eventType, &jobID, &nodeID, &status, &timestamp, &details); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}

		ts, err := time.Parse(time.RFC3339Nano, timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse event timestamp: %w", err)
		}

		event := Event{
			EventType: EventType(eventType),
			JobID:     jobID,
			NodeID:    nodeID,
			Status:    status,
			Timestamp: ts,
		}
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &event.Details); err != nil {
				return nil, fmt.Errorf("failed to unmarshal event details: %w", err)
			}
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
