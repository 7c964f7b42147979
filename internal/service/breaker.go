package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"

	"github.com/prime399/packmate/internal/core"
)

// breakerGroup holds one circuit breaker per package manager so a registry
// outage on one manager cannot burn retry budget for the others.
type breakerGroup struct {
	breakers map[string]*circuit.Breaker
	mu       sync.RWMutex
}

func newBreakerGroup() *breakerGroup {
	return &breakerGroup{
		breakers: make(map[string]*circuit.Breaker),
	}
}

func (g *breakerGroup) get(manager string) *circuit.Breaker {
	g.mu.RLock()
	breaker, exists := g.breakers[manager]
	g.mu.RUnlock()

	if exists {
		return breaker
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// Double-check after acquiring write lock
	if breaker, exists := g.breakers[manager]; exists {
		return breaker
	}

	// Trips after 5 consecutive failures, reopening on an exponential
	// schedule.
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	breaker = circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(5),
	})

	g.breakers[manager] = breaker
	return breaker
}

// verify runs one verification attempt through the manager's breaker.
// Terminal outcomes are results, not errors, so they never trip the
// breaker; only retryable conditions count as failures.
func (g *breakerGroup) verify(ctx context.Context, v core.Verifier, packageName string) (*core.VerificationResult, error) {
	breaker := g.get(v.Manager())

	if !breaker.Ready() {
		return nil, fmt.Errorf("circuit breaker open for %s: %w", v.Manager(), core.ErrUnavailable)
	}

	var result *core.VerificationResult
	err := breaker.Call(func() error {
		var verifyErr error
		result, verifyErr = v.Verify(ctx, packageName)
		return verifyErr
	}, 0)

	if err != nil {
		return nil, err
	}
	return result, nil
}

// states reports each breaker's state for health checks.
func (g *breakerGroup) states() map[string]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	states := make(map[string]string, len(g.breakers))
	for manager, breaker := range g.breakers {
		if breaker.Tripped() {
			states[manager] = "open"
		} else {
			states[manager] = "closed"
		}
	}
	return states
}
