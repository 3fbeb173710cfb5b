package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPClient is a Client that executes tools on a remote service.
//
// Each call POSTs a JSON envelope to the configured endpoint:
//
//	{"tool": "ocr_page", "args": {"image_path": "..."}}
//
// A 2xx response's JSON body becomes the tool result; any other status
// is an error. Timeouts and cancellation come from the caller's
// context plus whatever the injected *http.Client enforces.
type HTTPClient struct {
	endpoint string
	client   *http.Client
}

// NewHTTPClient creates an HTTP tool client for the given endpoint.
// When httpClient is nil, http.DefaultClient is used.
func NewHTTPClient(endpoint string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{endpoint: endpoint, client: httpClient}
}

// Call implements Client.
func (h *HTTPClient) Call(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	payload, err := json.Marshal(struct {
		Tool string                 `json:"tool"`
		Args map[string]interface{} `json:"args"`
	}{Tool: name, Args: args})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("tool %s: unexpected status %d: %s", name, resp.StatusCode, truncate(body, 256))
	}

	if len(body) == 0 {
		return nil, nil
	}
	var result interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("tool %s: invalid response body: %w", name, err)
	}
	return result, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
