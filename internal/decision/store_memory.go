package decision

import (
	"context"
	"sync"

	dErrors "arbiter/pkg/domain-errors"
)

// MemoryStore is an in-process Store. It backs tests and single-node
// deployments without Redis configured.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	if rec.Decision.ID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "decision id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Decision.ID] = rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return Record{}, dErrors.New(dErrors.CodeNotFound, "decision not found")
	}
	return rec, nil
}

func (s *MemoryStore) Finalize(_ context.Context, id string, res Resolution) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return Record{}, dErrors.New(dErrors.CodeNotFound, "decision not found")
	}
	if rec.Resolution != ResolutionPending {
		return Record{}, dErrors.New(dErrors.CodeConflict, "decision already finalized")
	}
	rec.Resolution = res
	s.records[id] = rec
	return rec, nil
}

func (s *MemoryStore) Escalate(_ context.Context, id, approver string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return Record{}, dErrors.New(dErrors.CodeNotFound, "decision not found")
	}
	if rec.Resolution != ResolutionPending {
		return Record{}, dErrors.New(dErrors.CodeConflict, "decision already finalized")
	}
	rec.Decision.RequiredApprover = approver
	s.records[id] = rec
	return rec, nil
}
