package memory

import (
	"context"
	"strings"
	"sync"

	"crate-blink/internal/domain"
	"crate-blink/internal/storage"
)

// CrateStore is an in-memory implementation of storage.CrateRepository.
type CrateStore struct {
	mu     sync.RWMutex
	crates map[string]*domain.Crate // keyed by id
}

// NewCrateStore creates a new in-memory crate store.
func NewCrateStore() *CrateStore {
	return &CrateStore{
		crates: make(map[string]*domain.Crate),
	}
}

// Compile-time interface check.
var _ storage.CrateRepository = (*CrateStore)(nil)

// Insert adds a new crate. Returns ErrDuplicateKey if the ID exists.
func (s *CrateStore) Insert(_ context.Context, c *domain.Crate) error {
	if c == nil || strings.TrimSpace(c.ID) == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.crates[c.ID]; exists {
		return storage.ErrDuplicateKey
	}

	s.crates[c.ID] = cloneCrate(c)
	return nil
}

// GetByID retrieves a crate by ID. Returns ErrNotFound if not exists.
func (s *CrateStore) GetByID(_ context.Context, id string) (*domain.Crate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.crates[id]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return cloneCrate(c), nil
}

func cloneCrate(c *domain.Crate) *domain.Crate {
	cp := *c
	cp.Tokens = append([]domain.CrateToken(nil), c.Tokens...)
	if c.Creator != nil {
		creator := *c.Creator
		cp.Creator = &creator
	}
	return &cp
}
