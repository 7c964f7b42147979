package core

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()
	_, err := client.Get(context.Background(), server.URL, nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if gotUA != "packmate-verifier" {
		t.Errorf("default User-Agent = %q, want %q", gotUA, "packmate-verifier")
	}
}

func TestClientExtraHeaders(t *testing.T) {
	var gotSeries string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSeries = r.Header.Get("Snap-Device-Series")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()
	_, err := client.Get(context.Background(), server.URL, map[string]string{"Snap-Device-Series": "16"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if gotSeries != "16" {
		t.Errorf("Snap-Device-Series = %q, want %q", gotSeries, "16")
	}
}

func TestClientTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient()
	_, err := client.Get(context.Background(), url, nil)

	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Errorf("err = %v, want *NetworkError", err)
	}
}

func TestInterpretVerified(t *testing.T) {
	resp := &Response{StatusCode: 200, Header: http.Header{}}
	result, err := Interpret(resp, Homebrew, "wget")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	if result.Status != StatusVerified {
		t.Errorf("Status = %q, want verified", result.Status)
	}
	if result.ErrorMessage != "" {
		t.Errorf("ErrorMessage = %q, want empty", result.ErrorMessage)
	}
	if result.AppID != "" {
		t.Errorf("AppID = %q, want empty (orchestrator stamps it)", result.AppID)
	}
	if result.PackageManagerID != Homebrew {
		t.Errorf("PackageManagerID = %q, want homebrew", result.PackageManagerID)
	}
}

func TestInterpretNotFound(t *testing.T) {
	resp := &Response{StatusCode: 404, Header: http.Header{}}
	result, err := Interpret(resp, Flatpak, "org.example.App")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	if result.Status != StatusFailed {
		t.Errorf("Status = %q, want failed", result.Status)
	}
	if result.ErrorMessage != NotFoundMessage {
		t.Errorf("ErrorMessage = %q, want %q", result.ErrorMessage, NotFoundMessage)
	}
}

func TestInterpretRateLimited(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "5")
	resp := &Response{StatusCode: 429, Header: h}

	_, err := Interpret(resp, Snap, "foo")
	var rl *RateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("err = %v, want *RateLimitError", err)
	}
	if rl.RetryAfter != 5 {
		t.Errorf("RetryAfter = %d, want 5", rl.RetryAfter)
	}
}

func TestInterpretServerError(t *testing.T) {
	resp := &Response{StatusCode: 503, Header: http.Header{}, URL: "https://registry/pkg"}
	_, err := Interpret(resp, Snap, "foo")

	var se *ServerError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *ServerError", err)
	}
	if se.StatusCode != 503 {
		t.Errorf("StatusCode = %d, want 503", se.StatusCode)
	}
}

func TestInterpretClientError(t *testing.T) {
	resp := &Response{StatusCode: 403, Status: "403 Forbidden", Header: http.Header{}}
	result, err := Interpret(resp, Chocolatey, "foo")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	if result.Status != StatusFailed {
		t.Errorf("Status = %q, want failed", result.Status)
	}
	if result.ErrorMessage != "HTTP 403 Forbidden" {
		t.Errorf("ErrorMessage = %q, want status text embedded", result.ErrorMessage)
	}
}
