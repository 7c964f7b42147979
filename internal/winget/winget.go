// Package winget verifies packages against the winget-pkgs manifest tree
// on the GitHub contents API.
package winget

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/prime399/packmate/internal/core"
)

const (
	DefaultURL = "https://api.github.com/repos/microsoft/winget-pkgs/contents"
	manager    = core.Winget
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

// SplitIdentifier splits a Publisher.Name winget id on the first dot.
// ok is false when there is no dot or the publisher segment is empty.
func SplitIdentifier(id string) (publisher, name string, ok bool) {
	id = strings.TrimSpace(id)
	idx := strings.Index(id, ".")
	if idx <= 0 {
		return "", "", false
	}
	return id[:idx], id[idx+1:], true
}

// QueryURL builds the manifest lookup URL for a winget identifier. Returns
// an error for malformed identifiers; no network call is ever attempted
// for those.
func QueryURL(baseURL, id string) (string, error) {
	publisher, name, ok := SplitIdentifier(id)
	if !ok {
		return "", fmt.Errorf("invalid winget identifier %q: want Publisher.Name", strings.TrimSpace(id))
	}
	first := strings.ToLower(publisher[:1])
	return fmt.Sprintf("%s/manifests/%s/%s/%s", strings.TrimSuffix(baseURL, "/"), first, publisher, name), nil
}

func (v *Verifier) Verify(ctx context.Context, packageName string) (*core.VerificationResult, error) {
	name := strings.TrimSpace(packageName)

	queryURL, err := QueryURL(v.baseURL, name)
	if err != nil {
		return &core.VerificationResult{
			PackageManagerID: manager,
			PackageName:      name,
			Status:           core.StatusFailed,
			Timestamp:        core.Now(),
			ErrorMessage:     err.Error(),
		}, nil
	}

	resp, err := v.client.Get(ctx, queryURL, nil)
	if err != nil {
		return nil, err
	}

	// GitHub reports an exhausted quota as 403 with X-RateLimit-Remaining
	// at zero. Any other 403 is a terminal client error, not a rate limit.
	if resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0" {
		return nil, &core.RateLimitError{RetryAfter: resp.RetryAfterSeconds()}
	}

	return core.Interpret(resp, manager, name)
}
