// Package homebrew verifies packages against the Homebrew formulae API.
package homebrew

import (
	"context"
	"fmt"
	"strings"

	"github.com/prime399/packmate/internal/core"
)

const (
	DefaultURL = "https://formulae.brew.sh/api"
	manager    = core.Homebrew

	// CaskPrefix marks a catalog package name as a cask rather than a
	// formula, mirroring the `brew install --cask` invocation.
	CaskPrefix = "--cask "
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

// QueryURL builds the formula or cask lookup URL for a catalog package
// name. Pure function of the input; the cask marker selects the endpoint
// and is stripped before substitution.
func QueryURL(baseURL, name string) string {
	name = strings.TrimSpace(name)
	kind := "formula"
	if rest, ok := strings.CutPrefix(name, CaskPrefix); ok {
		kind = "cask"
		name = strings.TrimSpace(rest)
	}
	return fmt.Sprintf("%s/%s/%s.json", strings.TrimSuffix(baseURL, "/"), kind, name)
}

func (v *Verifier) Verify(ctx context.Context, packageName string) (*core.VerificationResult, error) {
	name := strings.TrimSpace(packageName)
	resp, err := v.client.Get(ctx, QueryURL(v.baseURL, name), nil)
	if err != nil {
		return nil, err
	}
	return core.Interpret(resp, manager, name)
}
