package audit

import (
	"context"
	"sync"
)

// MemSink is an in-memory Sink.
//
// Designed for tests, development, and single-process deployments
// where durability isn't required. MemSink is safe for concurrent use;
// entries live for the lifetime of the process.
type MemSink struct {
	mu     sync.RWMutex
	events []Event
	byJob  map[string][]int // jobID -> indexes into events, emission order
}

// NewMemSink creates an empty in-memory audit sink.
func NewMemSink() *MemSink {
	return &MemSink{
		byJob: make(map[string][]int),
	}
}

// Emit appends the event.
func (s *MemSink) Emit(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byJob[event.JobID] = append(s.byJob[event.JobID], len(s.events))
	s.events = append(s.events, event)
	return nil
}

// Query returns the job's events in emission order. The returned slice
// is a copy; mutating it does not affect the trail.
func (s *MemSink) Query(_ context.Context, jobID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	indexes := s.byJob[jobID]
	result := make([]Event, 0, len(indexes))
	for _, i := range indexes {
		result = append(result, s.events[i])
	}
	return result, nil
}

// Len returns the total number of events across all jobs.
func (s *MemSink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
