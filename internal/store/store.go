// Package store persists verification results. History is append-only:
// records are never mutated or deleted, with the single exception of
// clearing a manual review flag, which is an administrative acknowledgement.
package store

import (
	"context"

	"github.com/prime399/packmate/internal/core"
)

// Sort orders for the review queue.
const (
	SortByTimestamp = "timestamp"
	SortByApp       = "appId"
)

// FlaggedQuery filters the review queue listing.
type FlaggedQuery struct {
	PackageManagerID string
	SortBy           string // SortByTimestamp (default, newest first) or SortByApp
}

// Store is the persistence layer for verification results.
// Later this can be backed by a document database; SQLite and in-memory
// implementations are provided.
type Store interface {
	// Append persists a new result. Timestamps are normalized to the wire
	// format; an ID is assigned when missing.
	Append(ctx context.Context, result *core.VerificationResult) error

	// Latest returns the most recent result for an (app, manager) pair,
	// or nil when no record exists.
	Latest(ctx context.Context, appID, packageManagerID string) (*core.VerificationResult, error)

	// Flagged lists results with the manual review flag set.
	Flagged(ctx context.Context, q FlaggedQuery) ([]core.VerificationResult, error)

	// ClearFlag clears the review flag on the latest flagged record for
	// the pair. Clearing a pair with no flagged record is a no-op.
	ClearFlag(ctx context.Context, appID, packageManagerID string) error

	Close() error
}
