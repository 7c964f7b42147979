package chocolatey

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prime399/packmate/internal/core"
)

func TestFilterEscapesQuotes(t *testing.T) {
	got := Filter("o'reilly's-tool")
	want := "Id eq 'o''reilly''s-tool'"
	if got != want {
		t.Errorf("Filter = %q, want %q", got, want)
	}

	// n single quotes in the name produce 2n inside the literal.
	if n := strings.Count(got, "'"); n != 2+4 {
		t.Errorf("quote count = %d, want 6 (2 delimiters + 2x2 escaped)", n)
	}
}

func TestFilterPlainName(t *testing.T) {
	if got := Filter("7zip"); got != "Id eq '7zip'" {
		t.Errorf("Filter = %q, want %q", got, "Id eq '7zip'")
	}
}

func TestQueryURLDeterministic(t *testing.T) {
	a := QueryURL("https://feed.example/Packages()", "7zip")
	b := QueryURL("https://feed.example/Packages()", "  7zip  ")
	if a != b {
		t.Errorf("QueryURL should be a pure function of the trimmed name: %q vs %q", a, b)
	}
}

func entryFeed(entries int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?><feed>`)
	for i := 0; i < entries; i++ {
		b.WriteString(`<entry><title>pkg</title></entry>`)
	}
	b.WriteString(`</feed>`)
	return b.String()
}

func TestVerifyMatchFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("$filter") != "Id eq '7zip'" {
			t.Errorf("unexpected filter: %q", r.URL.Query().Get("$filter"))
		}
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(entryFeed(1)))
	}))
	defer server.Close()

	v := New(server.URL, core.DefaultClient())
	result, err := v.Verify(context.Background(), "7zip")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if result.Status != core.StatusVerified {
		t.Errorf("Status = %q, want verified", result.Status)
	}
}

func TestVerifyEmptyFeedIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(entryFeed(0)))
	}))
	defer server.Close()

	v := New(server.URL, core.DefaultClient())
	result, err := v.Verify(context.Background(), "definitely-missing")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if result.Status != core.StatusFailed {
		t.Errorf("Status = %q, want failed", result.Status)
	}
	if result.ErrorMessage != "Package not found" {
		t.Errorf("ErrorMessage = %q, want %q", result.ErrorMessage, "Package not found")
	}
}

func TestVerifyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	v := New(server.URL, core.DefaultClient())
	_, err := v.Verify(context.Background(), "7zip")
	if !core.IsRetryable(err) {
		t.Errorf("5xx should raise a retryable error, got %v", err)
	}
}
