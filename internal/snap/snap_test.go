package snap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prime399/packmate/internal/core"
)

func TestStripFlags(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"code --classic", "code"},
		{"code", "code"},
		{"multipass --devmode --beta", "multipass"},
		{"  spotify  ", "spotify"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := StripFlags(tc.in); got != tc.want {
			t.Errorf("StripFlags(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestQueryURLIgnoresFlags(t *testing.T) {
	a := QueryURL("https://api.snapcraft.io/v2/snaps/info", "foo --classic")
	b := QueryURL("https://api.snapcraft.io/v2/snaps/info", "foo")
	if a != b {
		t.Errorf("flagged and plain names must query the same resource: %q vs %q", a, b)
	}
	if a != "https://api.snapcraft.io/v2/snaps/info/foo" {
		t.Errorf("QueryURL = %q", a)
	}
}

func TestVerifySendsDeviceSeries(t *testing.T) {
	var gotSeries, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSeries = r.Header.Get("Snap-Device-Series")
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"name":"code"}`))
	}))
	defer server.Close()

	v := New(server.URL, core.DefaultClient())
	result, err := v.Verify(context.Background(), "code --classic")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if gotSeries != "16" {
		t.Errorf("Snap-Device-Series = %q, want 16", gotSeries)
	}
	if gotPath != "/code" {
		t.Errorf("path = %q, want /code (flags stripped)", gotPath)
	}
	if result.Status != core.StatusVerified {
		t.Errorf("Status = %q, want verified", result.Status)
	}
	if result.PackageName != "code --classic" {
		t.Errorf("PackageName = %q, want catalog name with flags", result.PackageName)
	}
}

func TestVerifyNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	v := New(server.URL, core.DefaultClient())
	result, err := v.Verify(context.Background(), "no-such-snap")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if result.Status != core.StatusFailed || result.ErrorMessage != "Package not found" {
		t.Errorf("result = (%q, %q), want failed / Package not found", result.Status, result.ErrorMessage)
	}
}
