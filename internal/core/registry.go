package core

import (
	"context"
	"fmt"
	"sync"
)

// Verifier checks whether a package exists in one manager's registry.
// Implementations return a result with an empty AppID for terminal outcomes
// and raise *RateLimitError, *ServerError, or *NetworkError for retryable
// conditions.
type Verifier interface {
	// Manager returns the package manager identifier (e.g. "homebrew").
	Manager() string

	// Verify checks the given catalog package name against the registry.
	Verify(ctx context.Context, packageName string) (*VerificationResult, error)
}

// Factory creates a verifier for a given base URL.
type Factory func(baseURL string, client *Client) Verifier

var (
	factories = make(map[string]Factory)
	defaults  = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a verifier factory for a manager. Registration happens in
// package init; the set is fixed at process start.
func Register(managerID string, defaultURL string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[managerID] = factory
	defaults[managerID] = defaultURL
}

// New creates a verifier for the given manager. If baseURL is empty, the
// default registry URL is used. If client is nil, DefaultClient() is used.
func New(managerID string, baseURL string, client *Client) (Verifier, error) {
	mu.RLock()
	factory, ok := factories[managerID]
	defaultURL := defaults[managerID]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no verifier for package manager: %s", managerID)
	}

	if baseURL == "" {
		baseURL = defaultURL
	}

	if client == nil {
		client = DefaultClient()
	}

	return factory(baseURL, client), nil
}

// Verifiable reports whether a verifier is registered for the manager.
// Note: verifier packages must be imported (see the all package) or every
// manager reads as unverifiable.
func Verifiable(managerID string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[managerID]
	return ok
}

// VerifiableManagers returns all registered manager identifiers.
func VerifiableManagers() []string {
	mu.RLock()
	defer mu.RUnlock()

	managers := make([]string, 0, len(factories))
	for id := range factories {
		managers = append(managers, id)
	}
	return managers
}

// DefaultURL returns the default registry URL for a manager.
func DefaultURL(managerID string) string {
	mu.RLock()
	defer mu.RUnlock()
	return defaults[managerID]
}
