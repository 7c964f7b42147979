package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/prime399/packmate/internal/core"
)

// Memory is an in-memory Store for tests and ephemeral runs.
type Memory struct {
	mu      sync.RWMutex
	records []core.VerificationResult
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(ctx context.Context, result *core.VerificationResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := *result
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.Timestamp = core.NormalizeTimestamp(rec.Timestamp)
	m.records = append(m.records, rec)

	result.ID = rec.ID
	result.Timestamp = rec.Timestamp
	return nil
}

func (m *Memory) Latest(ctx context.Context, appID, packageManagerID string) (*core.VerificationResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var latest *core.VerificationResult
	for i := range m.records {
		rec := &m.records[i]
		if rec.AppID != appID || rec.PackageManagerID != packageManagerID {
			continue
		}
		if latest == nil || rec.Timestamp > latest.Timestamp {
			latest = rec
		}
	}
	if latest == nil {
		return nil, nil
	}
	out := *latest
	return &out, nil
}

func (m *Memory) Flagged(ctx context.Context, q FlaggedQuery) ([]core.VerificationResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []core.VerificationResult
	for _, rec := range m.records {
		if !rec.ManualReviewFlag {
			continue
		}
		if q.PackageManagerID != "" && rec.PackageManagerID != q.PackageManagerID {
			continue
		}
		out = append(out, rec)
	}

	if q.SortBy == SortByApp {
		sort.SliceStable(out, func(i, j int) bool { return out[i].AppID < out[j].AppID })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	}
	return out, nil
}

func (m *Memory) ClearFlag(ctx context.Context, appID, packageManagerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	latest := -1
	for i := range m.records {
		rec := &m.records[i]
		if rec.AppID != appID || rec.PackageManagerID != packageManagerID || !rec.ManualReviewFlag {
			continue
		}
		if latest == -1 || rec.Timestamp > m.records[latest].Timestamp {
			latest = i
		}
	}
	if latest >= 0 {
		m.records[latest].ManualReviewFlag = false
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}
