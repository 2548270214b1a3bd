package memory

import (
	"context"
	"sync"

	audit "arbiter/pkg/platform/audit"
)

// InMemoryStore is the default audit sink: a mutex-guarded append-only slice
// with a monotonic sequence counter. Suitable for tests and single-process
// deployments; swap in the postgres store for durability.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []audit.Entry
	seq     uint64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, entry audit.Entry) (audit.Entry, error) {
	if err := entry.Validate(); err != nil {
		return audit.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	entry.Seq = s.seq
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (s *InMemoryStore) Query(_ context.Context, filter audit.Filter, page audit.Page) (*audit.QueryResult, error) {
	page = page.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var filtered []audit.Entry
	for _, e := range s.entries {
		if filter.Matches(e) {
			filtered = append(filtered, e)
		}
	}

	start := (page.Number - 1) * page.Limit
	end := start + page.Limit
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return &audit.QueryResult{
		TotalRecords:    len(s.entries),
		FilteredRecords: len(filtered),
		Page:            page.Number,
		Limit:           page.Limit,
		Entries:         append([]audit.Entry{}, filtered[start:end]...),
		Summary:         audit.Summarize(filtered),
	}, nil
}

// Clear drops all entries. Test helper only.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.seq = 0
}
