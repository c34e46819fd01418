package fetch

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetch(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		statusCode int
		wantErr    error
	}{
		{
			name:       "successful fetch",
			body:       "<html><body>ok</body></html>",
			statusCode: http.StatusOK,
		},
		{
			name:       "not found",
			body:       "missing",
			statusCode: http.StatusNotFound,
			wantErr:    ErrStatus,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			wantErr:    ErrStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			body, err := New(Options{}).Fetch(server.URL)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Fetch() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch() unexpected error: %v", err)
			}
			if body != tt.body {
				t.Errorf("Fetch() body = %q, want %q", body, tt.body)
			}
		})
	}
}

func TestFetch_SendsClientSignature(t *testing.T) {
	var gotUA, gotFrom string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotFrom = r.Header.Get("From")
	}))
	defer server.Close()

	f := New(Options{UserAgent: "nps-test/0.1", Contact: "parks@example.com"})
	if _, err := f.Fetch(server.URL); err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}

	if gotUA != "nps-test/0.1" {
		t.Errorf("User-Agent = %q, want nps-test/0.1", gotUA)
	}
	if gotFrom != "parks@example.com" {
		t.Errorf("From = %q, want parks@example.com", gotFrom)
	}
}

func TestFetch_DefaultUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	if _, err := New(Options{}).Fetch(server.URL); err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, DefaultUserAgent)
	}
}

func TestFetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	if _, err := New(Options{}).Fetch(url); err == nil {
		t.Error("Fetch() expected error for closed server, got nil")
	}
}

func TestFetch_DefaultContact(t *testing.T) {
	var gotFrom string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFrom = r.Header.Get("From")
	}))
	defer server.Close()

	if _, err := New(Options{}).Fetch(server.URL); err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if gotFrom == "" {
		t.Error("From header is empty, want a contact address")
	}
	if gotFrom != DefaultContact {
		t.Errorf("From = %q, want %q", gotFrom, DefaultContact)
	}
}

func TestFetch_KeepsBodyBytes(t *testing.T) {
	const body = "  <html></html>\n\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	got, err := New(Options{}).Fetch(server.URL)
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if got != body {
		t.Errorf("Fetch() body = %q (%d bytes), want %q (%d bytes)", got, len(got), body, len(body))
	}
}
