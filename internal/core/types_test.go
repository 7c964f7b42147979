package core

import (
	"testing"
	"time"
)

func TestTimestampRoundTrip(t *testing.T) {
	ts := "2024-01-01T00:00:00.000Z"
	parsed, err := ParseTimestamp(ts)
	if err != nil {
		t.Fatalf("ParseTimestamp failed: %v", err)
	}
	if got := FormatTimestamp(parsed); got != ts {
		t.Errorf("FormatTimestamp = %q, want %q", got, ts)
	}
}

func TestNormalizeTimestampVariants(t *testing.T) {
	// RFC 3339 with offset normalizes to UTC milliseconds.
	got := NormalizeTimestamp("2024-06-15T12:30:00+02:00")
	if got != "2024-06-15T10:30:00.000Z" {
		t.Errorf("NormalizeTimestamp = %q, want 2024-06-15T10:30:00.000Z", got)
	}
}

func TestNormalizeTimestampUnparseable(t *testing.T) {
	before := time.Now().UTC().Add(-time.Second)
	got := NormalizeTimestamp("not a timestamp")
	parsed, err := ParseTimestamp(got)
	if err != nil {
		t.Fatalf("normalized output unparseable: %v", err)
	}
	if parsed.Before(before) || parsed.After(time.Now().UTC().Add(time.Second)) {
		t.Errorf("unparseable input should normalize to roughly now, got %v", parsed)
	}
}

func TestManagerPartition(t *testing.T) {
	if len(Managers()) != 11 {
		t.Errorf("Managers() = %d entries, want 11", len(Managers()))
	}
	if len(UnverifiableManagers()) != 6 {
		t.Errorf("UnverifiableManagers() = %d entries, want 6", len(UnverifiableManagers()))
	}

	all := make(map[string]bool)
	for _, m := range Managers() {
		all[m] = true
	}
	for _, m := range UnverifiableManagers() {
		if !all[m] {
			t.Errorf("unverifiable manager %q missing from Managers()", m)
		}
	}
}
