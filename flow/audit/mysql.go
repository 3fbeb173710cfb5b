package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLSink is a MySQL/MariaDB-backed Sink for deployments where the
// audit trail must survive process restarts and be shared across
// workers.
//
// The DSN format is the go-sql-driver one:
//
//	user:password@tcp(localhost:3306)/audit
//
// Never hardcode credentials; read the DSN from the environment:
//
//	dsn := os.Getenv("MYSQL_DSN")
//	sink, err := audit.NewMySQLSink(dsn)
type MySQLSink struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewMySQLSink opens a MySQL audit sink, verifying connectivity and
// creating the schema if needed.
func NewMySQLSink(dsn string) (*MySQLSink, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	sink := &MySQLSink{db: db}
	if err := sink.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return sink, nil
}

func (s *MySQLSink) createTables(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS audit_events (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			event_type VARCHAR(32) NOT NULL,
			job_id VARCHAR(255) NOT NULL,
			node_id VARCHAR(255) NOT NULL,
			status VARCHAR(32) NOT NULL,
			timestamp VARCHAR(64) NOT NULL,
			details TEXT,
			INDEX idx_audit_job_id (job_id)
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create audit_events table: %w", err)
	}
	return nil
}

// Emit appends the event.
func (s *MySQLSink) Emit(ctx context.Context, event Event) error {
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
func (s *MySQLSink) Query(ctx context.Context, jobID string) ([]Event, error) {
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

// Close releases the connection pool. Further Emit/Query calls return
// ErrClosed.
func (s *MySQLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
