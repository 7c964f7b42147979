package flatpak

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prime399/packmate/internal/core"
)

func TestQueryURL(t *testing.T) {
	got := QueryURL("https://flathub.org/api/v1/apps", "org.mozilla.firefox")
	want := "https://flathub.org/api/v1/apps/org.mozilla.firefox"
	if got != want {
		t.Errorf("QueryURL = %q, want %q", got, want)
	}
}

func TestQueryURLTrims(t *testing.T) {
	if QueryURL("https://x", " org.gimp.GIMP ") != "https://x/org.gimp.GIMP" {
		t.Errorf("QueryURL should use the trimmed identifier verbatim")
	}
}

func TestVerifyFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/org.mozilla.firefox" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(404)
			return
		}
		_, _ = w.Write([]byte(`{"flatpakAppId":"org.mozilla.firefox"}`))
	}))
	defer server.Close()

	v := New(server.URL, core.DefaultClient())
	result, err := v.Verify(context.Background(), "org.mozilla.firefox")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if result.Status != core.StatusVerified {
		t.Errorf("Status = %q, want verified", result.Status)
	}
}

func TestVerifyNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	v := New(server.URL, core.DefaultClient())
	result, err := v.Verify(context.Background(), "org.example.Missing")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if result.Status != core.StatusFailed || result.ErrorMessage != "Package not found" {
		t.Errorf("result = (%q, %q), want failed / Package not found", result.Status, result.ErrorMessage)
	}
}
