package tool

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestRegistry(t *testing.T) {
	ctx := context.Background()

	echo := func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return args, nil
	}

	t.Run("register and call", func(t *testing.T) {
		r := NewRegistry()
		if err := r.Register(Spec{Name: "echo", Handler: echo}); err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		args := map[string]interface{}{"x": 1}
		out, err := r.Call(ctx, "echo", args)
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}
		if !reflect.DeepEqual(out, args) {
			t.Errorf("Call() = %v, want %v", out, args)
		}
	})

	t.Run("unknown tool", func(t *testing.T) {
		r := NewRegistry()
		_, err := r.Call(ctx, "missing", nil)
		if !errors.Is(err, ErrUnknownTool) {
			t.Errorf("error = %v, want ErrUnknownTool", err)
		}
	})

	t.Run("handler errors propagate", func(t *testing.T) {
		r := NewRegistry()
		cause := errors.New("boom")
		if err := r.Register(Spec{
			Name: "fail",
			Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				return nil, cause
			},
		}); err != nil {
			t.Fatal(err)
		}
		if _, err := r.Call(ctx, "fail", nil); !errors.Is(err, cause) {
			t.Errorf("error = %v, want handler error", err)
		}
	})

	t.Run("invalid registrations rejected", func(t *testing.T) {
		r := NewRegistry()
		if err := r.Register(Spec{Name: "", Handler: echo}); err == nil {
			t.Error("Register() with empty name: error = nil")
		}
		if err := r.Register(Spec{Name: "x", Handler: nil}); err == nil {
			t.Error("Register() with nil handler: error = nil")
		}
		if err := r.Register(Spec{Name: "dup", Handler: echo}); err != nil {
			t.Fatal(err)
		}
		if err := r.Register(Spec{Name: "dup", Handler: echo}); err == nil {
			t.Error("Register() duplicate name: error = nil")
		}
	})

	t.Run("list is sorted", func(t *testing.T) {
		r := NewRegistry()
		for _, name := range []string{"zeta", "alpha", "mid"} {
			if err := r.Register(Spec{Name: name, Handler: echo}); err != nil {
				t.Fatal(err)
			}
		}
		want := []string{"alpha", "mid", "zeta"}
		if got := r.List(); !reflect.DeepEqual(got, want) {
			t.Errorf("List() = %v, want %v", got, want)
		}
	})

	t.Run("lookup returns spec", func(t *testing.T) {
		r := NewRegistry()
		if err := r.Register(Spec{Name: "ocr_page", Description: "OCR a page", Handler: echo}); err != nil {
			t.Fatal(err)
		}
		spec, ok := r.Lookup("ocr_page")
		if !ok || spec.Description != "OCR a page" {
			t.Errorf("Lookup() = %+v, %v; want spec with description", spec, ok)
		}
		if _, ok := r.Lookup("absent"); ok {
			t.Error("Lookup(absent) = true, want false")
		}
	})
}
