package tool

import (
	"context"
	"sync"
)

// MockClient is a test implementation of Client.
//
// It returns canned responses per tool name, records every call, and
// can inject errors:
//
//	mock := &MockClient{
//	    Responses: map[string]interface{}{
//	        "ocr_page": map[string]interface{}{"text": "hello"},
//	    },
//	}
//	out, err := mock.Call(ctx, "ocr_page", nil)
//
// With Err set, every call fails:
//
//	mock := &MockClient{Err: errors.New("backend down")}
//
// Thread-safe.
type MockClient struct {
	// Responses maps tool name to the value Call returns. Tools
	// without an entry return a map echoing the tool name.
	Responses map[string]interface{}

	// Err, if set, is returned by every Call instead of a response.
	Err error

	// Calls records all invocations in order.
	Calls []MockCall

	mu sync.Mutex
}

// MockCall records a single Call invocation.
type MockCall struct {
	Tool string
	Args map[string]interface{}
}

// Call implements Client.
func (m *MockClient) Call(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{Tool: name, Args: args})

	if m.Err != nil {
		return nil, m.Err
	}
	if resp, ok := m.Responses[name]; ok {
		return resp, nil
	}
	return map[string]interface{}{"tool": name}, nil
}

// CallCount returns how many times Call has been invoked.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// CallsFor returns the recorded calls for one tool name.
func (m *MockClient) CallsFor(name string) []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	var calls []MockCall
	for _, c := range m.Calls {
		if c.Tool == name {
			calls = append(calls, c)
		}
	}
	return calls
}

// Reset clears the recorded call history.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = nil
}
