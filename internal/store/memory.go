package store

import (
	"context"
	"sort"
	"sync"
	"time"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
)

// MemoryHistoryStore is an in-memory implementation for tests and for
// running with the history database disabled
type MemoryHistoryStore struct {
	mu      sync.RWMutex
	records []*Record
}

// NewMemoryHistoryStore creates a new in-memory history store
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{}
}

// Record stores a copy of rec
func (m *MemoryHistoryStore) Record(ctx context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prepare(rec)
	m.records = append(m.records, clone(rec))
	return nil
}

// Get retrieves a record by ID
func (m *MemoryHistoryStore) Get(ctx context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.records {
		if rec.ID == id {
			return clone(rec), nil
		}
	}
	return nil, mdwerror.Newf("record not found: %s", id).
		WithCode(mdwerror.CodeNotFound).
		WithOperation("store.Get")
}

// List retrieves records newest first
func (m *MemoryHistoryStore) List(ctx context.Context, filter Filter) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*Record
	for i := len(m.records) - 1; i >= 0; i-- {
		rec := m.records[i]
		if filter.Operation != "" && rec.Operation != filter.Operation {
			continue
		}
		if filter.OnlyFailed && !rec.Failed() {
			continue
		}
		if !filter.Since.IsZero() && rec.CreatedAt.Before(filter.Since) {
			continue
		}
		matched = append(matched, clone(rec))
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// Statistics returns counts over the stored history
func (m *MemoryHistoryStore) Statistics(ctx context.Context) (*Statistics, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &Statistics{ByOperation: make(map[Operation]int64)}
	for _, rec := range m.records {
		stats.Total++
		if rec.Failed() {
			stats.Failed++
		}
		stats.ByOperation[rec.Operation]++
		if rec.CreatedAt.After(stats.LastEntry) {
			stats.LastEntry = rec.CreatedAt
		}
	}
	return stats, nil
}

// Prune removes records older than the specified duration
func (m *MemoryHistoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	kept := m.records[:0]
	var deleted int64
	for _, rec := range m.records {
		if rec.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	m.records = kept
	return deleted, nil
}

// Close is a no-op
func (m *MemoryHistoryStore) Close() error {
	return nil
}

func clone(rec *Record) *Record {
	c := *rec
	if rec.Diagnostics != nil {
		c.Diagnostics = append([]string(nil), rec.Diagnostics...)
	}
	return &c
}
