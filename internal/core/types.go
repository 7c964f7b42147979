// Package core provides shared types, the error taxonomy, the HTTP client,
// and the verifier registry used by all package-manager verifiers.
package core

import "time"

// Status is the outcome state of a verification check.
type Status string

const (
	// StatusPending is a placeholder only; a completed check never produces it.
	StatusPending      Status = "pending"
	StatusVerified     Status = "verified"
	StatusFailed       Status = "failed"
	StatusUnverifiable Status = "unverifiable"
)

// Package manager identifiers. The set is closed: five managers have a
// public registry API, the remaining six cannot be queried and are always
// reported as unverifiable.
const (
	Homebrew   = "homebrew"
	Chocolatey = "chocolatey"
	Winget     = "winget"
	Flatpak    = "flatpak"
	Snap       = "snap"

	Apt    = "apt"
	Dnf    = "dnf"
	Pacman = "pacman"
	Zypper = "zypper"
	Aur    = "aur"
	Nix    = "nix"
)

// Managers returns all eleven known package manager identifiers in
// canonical order. Batch sweeps walk per-app targets in this order.
func Managers() []string {
	return []string{
		Homebrew, Chocolatey, Winget, Flatpak, Snap,
		Apt, Dnf, Pacman, Zypper, Aur, Nix,
	}
}

// UnverifiableManagers returns the managers with no public query API.
func UnverifiableManagers() []string {
	return []string{Apt, Dnf, Pacman, Zypper, Aur, Nix}
}

// VerificationResult is one completed (or synthesized) check of a single
// (app, package manager) pairing. Records are append-only: history is never
// mutated, and "latest" is the record with the maximum timestamp for the pair.
type VerificationResult struct {
	ID               string `json:"id,omitempty"`
	AppID            string `json:"appId"`
	PackageManagerID string `json:"packageManagerId"`
	PackageName      string `json:"packageName"`
	Status           Status `json:"status"`
	Timestamp        string `json:"timestamp"`
	ErrorMessage     string `json:"errorMessage,omitempty"`

	// ManualReviewFlag marks a verified-to-failed regression. It is set at
	// the moment a failed result is produced and never recalculated;
	// clearing it is an explicit administrative action.
	ManualReviewFlag bool `json:"manualReviewFlag,omitempty"`
}

// VerificationSummary aggregates one batch sweep.
type VerificationSummary struct {
	Total        int `json:"total"`
	Verified     int `json:"verified"`
	Failed       int `json:"failed"`
	Errors       int `json:"errors"`
	Unverifiable int `json:"unverifiable"`
}

// TimestampLayout is the wire format for result timestamps: ISO 8601,
// UTC, millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Now returns the current time in the wire format.
func Now() string {
	return time.Now().UTC().Format(TimestampLayout)
}

// FormatTimestamp renders t in the wire format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a wire-format timestamp, accepting RFC 3339
// variants as a fallback.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// NormalizeTimestamp coerces s into the wire format. Unparseable input is
// replaced with the current time.
func NormalizeTimestamp(s string) string {
	t, err := ParseTimestamp(s)
	if err != nil {
		return Now()
	}
	return FormatTimestamp(t)
}
