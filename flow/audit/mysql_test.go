package audit

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
)

// TestMySQLSink needs a live database; it is skipped unless MYSQL_DSN
// is set, e.g.
//
//	MYSQL_DSN="user:pass@tcp(localhost:3306)/audit_test" go test ./flow/audit/
func TestMySQLSink(t *testing.T) {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		t.Skip("MYSQL_DSN not set")
	}

	ctx := context.Background()
	sink, err := NewMySQLSink(dsn)
	if err != nil {
		t.Fatalf("NewMySQLSink() error = %v", err)
	}
	defer func() { _ = sink.Close() }()

	// Random job id keeps reruns against a shared database independent.
	jobID := uuid.NewString()

	t.Run("emit and query in order", func(t *testing.T) {
		events := []Event{
			testEvent(StepStarted, jobID, "start", "started"),
			testEvent(StepStarted, jobID, "ocr", "started"),
			testEvent(StepEnded, jobID, "ocr", "ended"),
		}
		for i, e := range events {
			if err := sink.Emit(ctx, e); err != nil {
				t.Fatalf("Emit(#%d) error = %v", i, err)
			}
		}

		got, err := sink.Query(ctx, jobID)
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		for i, want := range events {
			if got[i].EventType != want.EventType || got[i].NodeID != want.NodeID {
				t.Errorf("got[%d] = %s/%s, want %s/%s",
					i, got[i].EventType, got[i].NodeID, want.EventType, want.NodeID)
			}
		}
	})

	t.Run("details round trip", func(t *testing.T) {
		detailJob := uuid.NewString()
		e := testEvent(StepErrored, detailJob, "n", "errored")
		e.Details = map[string]interface{}{"error": "timeout"}
		if err := sink.Emit(ctx, e); err != nil {
			t.Fatal(err)
		}
		got, err := sink.Query(ctx, detailJob)
		if err != nil {
			t.Fatal(err)
		}
		if got[0].Details["error"] != "timeout" {
			t.Errorf("Details = %v, want error=timeout", got[0].Details)
		}
	})
}
