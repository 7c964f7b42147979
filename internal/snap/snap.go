// Package snap verifies packages against the Snap Store info API.
package snap

import (
	"context"
	"strings"

	"github.com/prime399/packmate/internal/core"
)

const (
	DefaultURL = "https://api.snapcraft.io/v2/snaps/info"
	manager    = core.Snap

	// The info endpoint rejects requests without a device series.
	deviceSeriesHeader = "Snap-Device-Series"
	deviceSeries       = "16"
)

func init() {
	core.Register(manager, DefaultURL, func(baseURL string, client *core.Client) core.Verifier {
		return New(baseURL, client)
	})
}

type Verifier struct {
	baseURL string
	client  *core.Client
}

func New(baseURL string, client *core.Client) *Verifier {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Verifier{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

func (v *Verifier) Manager() string {
	return manager
}

// StripFlags returns the snap name without installation flags: the first
// whitespace-delimited token. Catalog names like "code --classic" query
// the same resource as "code".
func StripFlags(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// QueryURL builds the info URL from the flag-stripped snap name.
func QueryURL(baseURL, name string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + StripFlags(name)
}

func (v *Verifier) Verify(ctx context.Context, packageName string) (*core.VerificationResult, error) {
	name := strings.TrimSpace(packageName)
	resp, err := v.client.Get(ctx, QueryURL(v.baseURL, name), map[string]string{
		deviceSeriesHeader: deviceSeries,
	})
	if err != nil {
		return nil, err
	}
	return core.Interpret(resp, manager, name)
}
