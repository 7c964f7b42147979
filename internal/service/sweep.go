package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/prime399/packmate/internal/core"
)

// VerifyAll sweeps the full catalog, checking every (app, manager) pairing
// that declares a package name. Items run strictly one at a time in
// catalog order, with a fixed pacing delay between network-bound calls to
// stay under third-party rate limits.
//
// One item's unrecoverable failure never aborts the sweep: it is counted
// in Errors and the walk continues. Only context cancellation stops a
// sweep early.
func (s *Service) VerifyAll(ctx context.Context) (*core.VerificationSummary, error) {
	started := time.Now()
	summary := &core.VerificationSummary{}

	for _, app := range s.catalog.Apps() {
		for _, manager := range core.Managers() {
			packageName, ok := app.Packages[manager]
			if !ok || packageName == "" {
				continue
			}

			if err := ctx.Err(); err != nil {
				return summary, err
			}

			summary.Total++
			result, err := s.VerifyPackage(ctx, app.ID, manager, packageName)
			if err != nil {
				summary.Errors++
				s.log.Warn("verification errored, continuing sweep",
					zap.String("app", app.ID),
					zap.String("manager", manager),
					zap.Error(err))
			} else {
				switch result.Status {
				case core.StatusVerified:
					summary.Verified++
				case core.StatusFailed:
					summary.Failed++
				case core.StatusUnverifiable:
					summary.Unverifiable++
				}
			}

			// Pace only network-bound items; unverifiable managers never
			// leave the process.
			if _, verifiable := s.verifiers[manager]; verifiable && s.pacing > 0 {
				select {
				case <-ctx.Done():
					return summary, ctx.Err()
				case <-time.After(s.pacing):
				}
			}
		}
	}

	s.metrics.ObserveSweep(time.Since(started), summary.Total)
	s.log.Info("catalog sweep complete",
		zap.Int("total", summary.Total),
		zap.Int("verified", summary.Verified),
		zap.Int("failed", summary.Failed),
		zap.Int("errors", summary.Errors),
		zap.Int("unverifiable", summary.Unverifiable),
		zap.Duration("elapsed", time.Since(started)))

	return summary, nil
}
