// Package flatpak verifies packages against the Flathub apps API.
package flatpak

import (
	"context"
	"strings"

	"github.com/prime399/packmate/internal/core"
)

const (
	DefaultURL = "https://flathub.org/api/v1/apps"
	manager    = core.Flatpak
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

// QueryURL builds the app lookup URL for a reverse-domain identifier,
// used verbatim after trimming.
func QueryURL(baseURL, id string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimSpace(id)
}

func (v *Verifier) Verify(ctx context.Context, packageName string) (*core.VerificationResult, error) {
	name := strings.TrimSpace(packageName)
	resp, err := v.client.Get(ctx, QueryURL(v.baseURL, name), nil)
	if err != nil {
		return nil, err
	}
	return core.Interpret(resp, manager, name)
}
