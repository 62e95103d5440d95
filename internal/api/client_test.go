package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hirestack/recruit-core/internal/api"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, 5*time.Second, func() string { return token })
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}, "tok-123")

	if _, err := client.ListRequisitions(context.Background(), 0, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestNoAuthHeaderWhenSignedOut(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}, "")

	if _, err := client.ListRequisitions(context.Background(), 0, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "message field wins",
			status:  http.StatusBadRequest,
			body:    `{"message":"title is required"}`,
			wantMsg: "title is required",
		},
		{
			name:    "detail field as fallback key",
			status:  http.StatusNotFound,
			body:    `{"detail":"requisition not found"}`,
			wantMsg: "requisition not found",
		},
		{
			name:    "unparseable body falls back to operation message",
			status:  http.StatusInternalServerError,
			body:    `<html>boom</html>`,
			wantMsg: "Failed to fetch jobs",
		},
		{
			name:    "empty error object falls back",
			status:  http.StatusBadGateway,
			body:    `{}`,
			wantMsg: "Failed to fetch jobs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, "")

			_, err := client.ListRequisitions(context.Background(), 0, 100)
			if err == nil {
				t.Fatal("expected error")
			}
			var apiErr *api.Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *api.Error, got %T", err)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
		})
	}
}

func TestTransportErrorUsesFallbackMessage(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := api.NewClient(srv.URL, time.Second, nil)

	_, err := client.ListRequisitions(context.Background(), 0, 100)
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if apiErr.Message != "Failed to fetch jobs" {
		t.Errorf("Message = %q, want fallback", apiErr.Message)
	}
	if apiErr.Unwrap() == nil {
		t.Error("expected wrapped transport error")
	}
}
