// Package chocolatey verifies packages against the Chocolatey community
// feed, an OData v2 endpoint.
package chocolatey

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/prime399/packmate/internal/core"
)

const (
	DefaultURL = "https://community.chocolatey.org/api/v2/Packages()"
	manager    = core.Chocolatey
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

// Filter builds the OData $filter literal for a package id. Every single
// quote in the name is doubled, the OData escape for a quote inside a
// string literal.
func Filter(name string) string {
	escaped := strings.ReplaceAll(strings.TrimSpace(name), "'", "''")
	return fmt.Sprintf("Id eq '%s'", escaped)
}

// QueryURL builds the feed query URL. Pure function of the input.
func QueryURL(baseURL, name string) string {
	return strings.TrimSuffix(baseURL, "/") + "?$filter=" + url.QueryEscape(Filter(name))
}

func (v *Verifier) Verify(ctx context.Context, packageName string) (*core.VerificationResult, error) {
	name := strings.TrimSpace(packageName)
	resp, err := v.client.Get(ctx, QueryURL(v.baseURL, name), nil)
	if err != nil {
		return nil, err
	}

	// A 200 from an OData feed only means the query ran. Existence is at
	// least one <entry> in the Atom body; an empty result set is a
	// definitive not-found.
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		result := &core.VerificationResult{
			PackageManagerID: manager,
			PackageName:      name,
			Timestamp:        core.Now(),
		}
		if bytes.Contains(resp.Body, []byte("<entry")) {
			result.Status = core.StatusVerified
			return result, nil
		}
		result.Status = core.StatusFailed
		result.ErrorMessage = core.NotFoundMessage
		return result, nil
	}

	return core.Interpret(resp, manager, name)
}
