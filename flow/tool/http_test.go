package tool

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPClient(t *testing.T) {
	ctx := context.Background()

	t.Run("posts envelope and decodes response", func(t *testing.T) {
		var gotBody map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method = %s, want POST", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("decode request: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"text": "hello"}`))
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, nil)
		out, err := client.Call(ctx, "ocr_page", map[string]interface{}{"page": 1})
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}

		if gotBody["tool"] != "ocr_page" {
			t.Errorf("request tool = %v, want ocr_page", gotBody["tool"])
		}
		args, _ := gotBody["args"].(map[string]interface{})
		if args["page"] != float64(1) {
			t.Errorf("request args = %v, want page=1", gotBody["args"])
		}
		result, ok := out.(map[string]interface{})
		if !ok || result["text"] != "hello" {
			t.Errorf("Call() = %v, want text=hello", out)
		}
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "tool crashed", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, nil)
		_, err := client.Call(ctx, "ocr_page", nil)
		if err == nil {
			t.Fatal("Call() error = nil, want status error")
		}
		if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "tool crashed") {
			t.Errorf("error = %v, want status and body included", err)
		}
	})

	t.Run("empty body yields nil result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, nil)
		out, err := client.Call(ctx, "fire_and_forget", nil)
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}
		if out != nil {
			t.Errorf("Call() = %v, want nil", out)
		}
	})

	t.Run("invalid response body is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, nil)
		if _, err := client.Call(ctx, "ocr_page", nil); err == nil {
			t.Error("Call() error = nil, want decode error")
		}
	})

	t.Run("context cancellation aborts the call", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		client := NewHTTPClient(server.URL, nil)
		if _, err := client.Call(cancelled, "ocr_page", nil); err == nil {
			t.Error("Call() error = nil, want context error")
		}
	})
}

func TestTruncate(t *testing.T) {
	if got := truncate([]byte("short"), 256); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("x", 300)
	got := truncate([]byte(long), 256)
	if len(got) != 259 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate(long) length = %d, want 259 with ellipsis", len(got))
	}
}
