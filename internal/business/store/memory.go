package store

import (
	"context"
	"sync"

	"lear/internal/business/models"
	"lear/pkg/platform/sentinel"
)

// InMemoryStore keeps businesses and registration bootstraps in maps. Reads return
// copies so callers cannot mutate stored rows without Save.
type InMemoryStore struct {
	mu         sync.RWMutex
	nextID     int64
	businesses map[string]*models.Business
	bootstraps map[string]*models.RegistrationBootstrap
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		businesses: make(map[string]*models.Business),
		bootstraps: make(map[string]*models.RegistrationBootstrap),
	}
}

// Create inserts b and assigns its ID. The identifier must be unused.
func (s *InMemoryStore) Create(_ context.Context, b *models.Business) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.businesses[b.Identifier]; ok {
		return sentinel.ErrConflict
	}
	s.nextID++
	b.ID = s.nextID
	cp := *b
	s.businesses[b.Identifier] = &cp
	return nil
}

func (s *InMemoryStore) FindByIdentifier(_ context.Context, identifier string) (*models.Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.businesses[identifier]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*models.Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.businesses {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) Save(_ context.Context, b *models.Business) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.businesses[b.Identifier]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *b
	s.businesses[b.Identifier] = &cp
	return nil
}

func (s *InMemoryStore) CreateBootstrap(_ context.Context, bs *models.RegistrationBootstrap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bootstraps[bs.Identifier]; ok {
		return sentinel.ErrConflict
	}
	cp := *bs
	s.bootstraps[bs.Identifier] = &cp
	return nil
}

func (s *InMemoryStore) FindBootstrap(_ context.Context, identifier string) (*models.RegistrationBootstrap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bs, ok := s.bootstraps[identifier]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *bs
	return &cp, nil
}

func (s *InMemoryStore) DeleteBootstrap(_ context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bootstraps[identifier]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.bootstraps, identifier)
	return nil
}
