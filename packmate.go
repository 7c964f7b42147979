// Package packmate provides package existence verification for catalog
// applications across desktop package managers.
//
// Five managers (Homebrew, Chocolatey, winget, Flatpak, Snap) expose a
// public registry API and are verified over the network; the remaining six
// (apt, dnf, pacman, zypper, AUR, Nix) have no queryable registry and are
// always reported as unverifiable.
//
// Basic usage:
//
//	import (
//		"context"
//		"github.com/prime399/packmate"
//		_ "github.com/prime399/packmate/all"
//	)
//
//	v, err := packmate.New("homebrew", "", packmate.DefaultClient())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := v.Verify(context.Background(), "wget")
//	if err != nil {
//		log.Fatal(err) // rate limited, server error, or unreachable
//	}
//	fmt.Println(result.Status)
package packmate

import (
	"github.com/prime399/packmate/internal/core"
)

// Re-export types from internal/core
type (
	// Verifier checks one package manager's registry for a package.
	Verifier = core.Verifier

	// VerificationResult is one completed check of an (app, manager) pairing.
	VerificationResult = core.VerificationResult

	// VerificationSummary aggregates a batch sweep.
	VerificationSummary = core.VerificationSummary

	// Status is the outcome state of a check.
	Status = core.Status

	// Client is the HTTP client used by verifiers.
	Client = core.Client

	// Option configures a Client.
	Option = core.Option
)

// Re-export statuses
const (
	StatusPending      = core.StatusPending
	StatusVerified     = core.StatusVerified
	StatusFailed       = core.StatusFailed
	StatusUnverifiable = core.StatusUnverifiable
)

// Error types
type (
	RateLimitError = core.RateLimitError
	ServerError    = core.ServerError
	NetworkError   = core.NetworkError
)

// New creates a verifier for the given package manager.
// If baseURL is empty, the default registry URL is used.
// If c is nil, DefaultClient() is used.
//
// Supported managers: "homebrew", "chocolatey", "winget", "flatpak", "snap"
// (each verifier package must be imported; see the all package).
func New(managerID string, baseURL string, c *Client) (Verifier, error) {
	return core.New(managerID, baseURL, c)
}

// DefaultClient returns a client with a 30s timeout and DNS-cached transport.
func DefaultClient() *Client {
	return core.DefaultClient()
}

// NewClient creates a client with the given options.
func NewClient(opts ...Option) *Client {
	return core.NewClient(opts...)
}

// WithTimeout sets the HTTP client timeout.
var WithTimeout = core.WithTimeout

// WithUserAgent sets the User-Agent header.
var WithUserAgent = core.WithUserAgent

// Managers returns all eleven known package manager identifiers.
func Managers() []string {
	return core.Managers()
}

// UnverifiableManagers returns the managers with no public query API.
func UnverifiableManagers() []string {
	return core.UnverifiableManagers()
}

// Verifiable reports whether a verifier is registered for the manager.
func Verifiable(managerID string) bool {
	return core.Verifiable(managerID)
}

// DefaultURL returns the default registry URL for a manager.
func DefaultURL(managerID string) string {
	return core.DefaultURL(managerID)
}

// IsRetryable reports whether an error from Verify may succeed on retry.
func IsRetryable(err error) bool {
	return core.IsRetryable(err)
}
