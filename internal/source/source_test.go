package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestReadLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team.yaml")
	if err := os.WriteFile(path, []byte("---\nid: a\n---\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := New().Read(context.Background(), path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if got != "---\nid: a\n---\n" {
		t.Fatalf("unexpected payload %q", got)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := New().Read(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestReadURL(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("---\nid: remote\n---\n"))
	}))
	defer srv.Close()

	reader := New(WithHTTPClient(srv.Client()), WithUserAgent("instinct-test"))
	got, err := reader.Read(context.Background(), srv.URL+"/instincts.yaml")
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if got != "---\nid: remote\n---\n" {
		t.Fatalf("unexpected payload %q", got)
	}
	if agent != "instinct-test" {
		t.Fatalf("User-Agent = %q", agent)
	}
}

func TestReadURLStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(WithHTTPClient(srv.Client())).Read(context.Background(), srv.URL)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestName(t *testing.T) {
	tests := map[string]string{
		"https://example.com/x.yaml": "web-import",
		"http://example.com":         "web-import",
		"/tmp/team-instincts.yaml":   "team-instincts",
		"shared.md":                  "shared",
	}
	for location, want := range tests {
		if got := Name(location); got != want {
			t.Errorf("Name(%q) = %q, want %q", location, got, want)
		}
	}
}
