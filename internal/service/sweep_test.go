package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prime399/packmate/internal/catalog"
	"github.com/prime399/packmate/internal/core"
	"github.com/prime399/packmate/internal/store"
)

func sweepCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Application{
		{ID: "firefox", Name: "Firefox", Packages: map[string]string{
			core.Homebrew: "--cask firefox",
			core.Snap:     "firefox",
			core.Apt:      "firefox",
		}},
		{ID: "vscode", Name: "VS Code", Packages: map[string]string{
			core.Snap: "code --classic",
			core.Dnf:  "code",
		}},
		{ID: "gimp", Name: "GIMP", Packages: map[string]string{
			core.Homebrew: "gimp",
		}},
	})
	require.NoError(t, err)
	return c
}

func TestVerifyAllSummary(t *testing.T) {
	brew := &fakeVerifier{manager: core.Homebrew, fn: func(call int, name string) (*core.VerificationResult, error) {
		if name == "gimp" {
			return failedResult(core.Homebrew, name), nil
		}
		return verifiedResult(core.Homebrew, name), nil
	}}
	snap := &fakeVerifier{manager: core.Snap, fn: func(call int, name string) (*core.VerificationResult, error) {
		return verifiedResult(core.Snap, name), nil
	}}

	svc := New(store.NewMemory(), sweepCatalog(t),
		WithVerifier(brew), WithVerifier(snap), fastRetry(), WithPacing(0))

	summary, err := svc.VerifyAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, summary.Total)
	assert.Equal(t, 3, summary.Verified)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 2, summary.Unverifiable)
	assert.Equal(t, 0, summary.Errors)
}

func TestVerifyAllToleratesErrors(t *testing.T) {
	// Snap's registry is down for the whole sweep; its two items error out
	// after retries but the walk continues.
	brew := &fakeVerifier{manager: core.Homebrew, fn: func(call int, name string) (*core.VerificationResult, error) {
		return verifiedResult(core.Homebrew, name), nil
	}}
	snap := &fakeVerifier{manager: core.Snap, fn: func(call int, name string) (*core.VerificationResult, error) {
		return nil, &core.ServerError{StatusCode: 502}
	}}

	svc := New(store.NewMemory(), sweepCatalog(t),
		WithVerifier(brew), WithVerifier(snap), fastRetry(), WithPacing(0))

	summary, err := svc.VerifyAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, summary.Total)
	assert.Equal(t, 2, summary.Errors)
	assert.Equal(t, 2, summary.Verified)
	assert.Equal(t, 2, summary.Unverifiable)
}

func TestVerifyAllPersistsResults(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	brew := &fakeVerifier{manager: core.Homebrew, fn: func(call int, name string) (*core.VerificationResult, error) {
		return verifiedResult(core.Homebrew, name), nil
	}}

	svc := New(st, sweepCatalog(t), WithVerifier(brew), fastRetry(), WithPacing(0))

	_, err := svc.VerifyAll(ctx)
	require.NoError(t, err)

	latest, err := st.Latest(ctx, "gimp", core.Homebrew)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, core.StatusVerified, latest.Status)
}

func TestVerifyAllHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := New(store.NewMemory(), sweepCatalog(t), fastRetry(), WithPacing(0))
	_, err := svc.VerifyAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
