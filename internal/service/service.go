// Package service orchestrates package verification: routing to verifiers,
// retrying transient failures, regression detection, persistence, and the
// full-catalog batch sweep.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/prime399/packmate/internal/catalog"
	"github.com/prime399/packmate/internal/core"
	"github.com/prime399/packmate/internal/logging"
	"github.com/prime399/packmate/internal/monitoring"
	"github.com/prime399/packmate/internal/store"
)

// Service coordinates verification across all package managers.
type Service struct {
	verifiers map[string]core.Verifier
	store     store.Store
	catalog   *catalog.Catalog
	log       *logging.Logger
	metrics   *monitoring.Metrics
	retry     core.RetryConfig
	pacing    time.Duration
	breakers  *breakerGroup
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(log *logging.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRetryConfig tunes the retry loop.
func WithRetryConfig(cfg core.RetryConfig) Option {
	return func(s *Service) {
		s.retry = cfg
	}
}

// WithPacing sets the delay inserted between successive network-bound
// sweep items.
func WithPacing(d time.Duration) Option {
	return func(s *Service) {
		s.pacing = d
	}
}

// WithClient builds verifiers for every registered manager using the
// given HTTP client.
func WithClient(c *core.Client) Option {
	return func(s *Service) {
		for _, m := range core.VerifiableManagers() {
			v, err := core.New(m, "", c)
			if err != nil {
				continue
			}
			s.verifiers[m] = v
		}
	}
}

// WithVerifier installs (or overrides) a single verifier. Tests use this
// to inject fakes.
func WithVerifier(v core.Verifier) Option {
	return func(s *Service) {
		s.verifiers[v.Manager()] = v
	}
}

// New creates a Service. Without WithClient or WithVerifier options the
// service has no verifiers and reports every manager as unverifiable.
func New(st store.Store, cat *catalog.Catalog, opts ...Option) *Service {
	s := &Service{
		verifiers: make(map[string]core.Verifier),
		store:     st,
		catalog:   cat,
		log:       logging.NewNop(),
		retry:     core.DefaultRetryConfig(),
		pacing:    100 * time.Millisecond,
		breakers:  newBreakerGroup(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// VerifyOption configures a single VerifyPackage call.
type VerifyOption func(*verifyOptions)

type verifyOptions struct {
	skipStorage bool
}

// SkipStorage disables persistence for this call.
func SkipStorage() VerifyOption {
	return func(o *verifyOptions) {
		o.skipStorage = true
	}
}

// VerifyPackage checks one (app, manager) pairing.
//
// Managers without a verifier short-circuit to an unverifiable result with
// no network call. Terminal outcomes (found, not found, client errors)
// come back as results; a retry-exhausted rate limit, server error, or
// transport failure is returned as an error so callers can tell "the
// package does not exist" apart from "we could not get an answer".
//
// Storage failures are logged and swallowed: a persistence outage must not
// mask a successful verification.
func (s *Service) VerifyPackage(ctx context.Context, appID, packageManagerID, packageName string, opts ...VerifyOption) (*core.VerificationResult, error) {
	var o verifyOptions
	for _, opt := range opts {
		opt(&o)
	}

	verifier, ok := s.verifiers[packageManagerID]
	if !ok {
		result := &core.VerificationResult{
			AppID:            appID,
			PackageManagerID: packageManagerID,
			PackageName:      packageName,
			Status:           core.StatusUnverifiable,
			Timestamp:        core.Now(),
		}
		s.metrics.ObserveCheck(packageManagerID, string(result.Status))
		s.persist(ctx, result, o.skipStorage)
		return result, nil
	}

	result, err := core.ExecuteWithRetry(ctx, s.retry, func(ctx context.Context) (*core.VerificationResult, error) {
		return s.breakers.verify(ctx, verifier, packageName)
	})
	if err != nil {
		s.metrics.ObserveError(packageManagerID)
		return nil, fmt.Errorf("verify %s/%s: %w", packageManagerID, appID, err)
	}

	result.AppID = appID

	if result.Status == core.StatusFailed {
		s.flagRegression(ctx, result)
	}

	s.metrics.ObserveCheck(packageManagerID, string(result.Status))
	s.persist(ctx, result, o.skipStorage)
	return result, nil
}

// flagRegression sets the manual review flag when the previous latest
// stored result for the pair was verified. The read-then-append sequence
// is not atomic against a concurrent verification of the same pair; the
// flag is a best-effort signal (see DESIGN.md).
func (s *Service) flagRegression(ctx context.Context, result *core.VerificationResult) {
	prev, err := s.store.Latest(ctx, result.AppID, result.PackageManagerID)
	if err != nil {
		s.log.Warn("regression check failed",
			zap.String("app", result.AppID),
			zap.String("manager", result.PackageManagerID),
			zap.Error(err))
		return
	}
	if prev != nil && prev.Status == core.StatusVerified {
		result.ManualReviewFlag = true
		s.metrics.ObserveRegression()
		s.log.Info("package regressed, flagged for review",
			zap.String("app", result.AppID),
			zap.String("manager", result.PackageManagerID),
			zap.String("package", result.PackageName))
	}
}

func (s *Service) persist(ctx context.Context, result *core.VerificationResult, skip bool) {
	if skip {
		return
	}
	if err := s.store.Append(ctx, result); err != nil {
		s.log.Warn("failed to persist verification result",
			zap.String("app", result.AppID),
			zap.String("manager", result.PackageManagerID),
			zap.Error(err))
	}
}

// ClearReviewFlag acknowledges a flagged regression for an (app, manager)
// pair.
func (s *Service) ClearReviewFlag(ctx context.Context, appID, packageManagerID string) error {
	return s.store.ClearFlag(ctx, appID, packageManagerID)
}

// Flagged lists results awaiting manual review.
func (s *Service) Flagged(ctx context.Context, q store.FlaggedQuery) ([]core.VerificationResult, error) {
	return s.store.Flagged(ctx, q)
}

// BreakerStates reports circuit breaker states for health checks.
func (s *Service) BreakerStates() map[string]string {
	return s.breakers.states()
}

// Catalog returns the catalog this service sweeps.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}
