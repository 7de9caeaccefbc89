// Package history keeps the recently answered questions.
package history

import (
	"context"
	"sync"

	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

// DefaultDisplayLimit is how many entries List returns when no limit is given.
const DefaultDisplayLimit = 5

// Store records answered questions, newest first.
type Store interface {
	// Record adds an entry. Only successful, non-empty answers should be recorded.
	Record(ctx context.Context, entry *models.QueryHistoryEntry) error
	// List returns up to filters.Limit entries, newest first. A limit <= 0 uses DefaultDisplayLimit.
	List(ctx context.Context, filters models.QueryHistoryFilters) ([]*models.QueryHistoryEntry, error)
	// Clear removes every entry.
	Clear(ctx context.Context) error
}

func effectiveLimit(limit, maxEntries int) int {
	if limit <= 0 {
		limit = DefaultDisplayLimit
	}
	if maxEntries > 0 && limit > maxEntries {
		limit = maxEntries
	}
	return limit
}

// MemoryStore keeps history in process memory. It is lost on restart.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    []*models.QueryHistoryEntry // newest first
	maxEntries int
}

// NewMemoryStore keeps at most maxEntries entries, dropping the oldest.
func NewMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{maxEntries: maxEntries}
}

func (s *MemoryStore) Record(_ context.Context, entry *models.QueryHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *entry
	s.entries = append([]*models.QueryHistoryEntry{&copied}, s.entries...)
	if s.maxEntries > 0 && len(s.entries) > s.maxEntries {
		s.entries = s.entries[:s.maxEntries]
	}
	return nil
}

func (s *MemoryStore) List(_ context.Context, filters models.QueryHistoryFilters) ([]*models.QueryHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := min(effectiveLimit(filters.Limit, s.maxEntries), len(s.entries))
	out := make([]*models.QueryHistoryEntry, limit)
	for i := range out {
		copied := *s.entries[i]
		out[i] = &copied
	}
	return out, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

var _ Store = (*MemoryStore)(nil)
