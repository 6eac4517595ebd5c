package store

import (
	"context"
	"slices"
	"sort"
	"sync"

	"lear/internal/filing/models"
	"lear/internal/rules"
	"lear/pkg/platform/sentinel"
)

// InMemoryStore keeps filings in a map keyed by id.
type InMemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	filings map[int64]*models.Filing
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{filings: make(map[int64]*models.Filing)}
}

func (s *InMemoryStore) Create(_ context.Context, f *models.Filing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	f.ID = s.nextID
	s.filings[f.ID] = clone(f)
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, f *models.Filing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.filings[f.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.filings[f.ID] = clone(f)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.filings[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.filings, id)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*models.Filing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.filings[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(f), nil
}

// FindByIDForUpdate is FindByID; callers serialise through tx.Local.
func (s *InMemoryStore) FindByIDForUpdate(ctx context.Context, id int64) (*models.Filing, error) {
	return s.FindByID(ctx, id)
}

func (s *InMemoryStore) ListByBusiness(_ context.Context, businessID int64, statuses []models.Status) ([]*models.Filing, error) {
	return s.list(func(f *models.Filing) bool {
		if f.BusinessID == nil || *f.BusinessID != businessID {
			return false
		}
		return len(statuses) == 0 || slices.Contains(statuses, f.Status)
	}), nil
}

func (s *InMemoryStore) ListByTempReg(_ context.Context, tempRegID string) ([]*models.Filing, error) {
	return s.list(func(f *models.Filing) bool {
		return f.TempRegID != nil && *f.TempRegID == tempRegID
	}), nil
}

func (s *InMemoryStore) ListCompletedRefs(_ context.Context, businessID int64) ([]rules.FilingRef, error) {
	done := s.list(func(f *models.Filing) bool {
		return f.BusinessID != nil && *f.BusinessID == businessID &&
			(f.Status == models.StatusCompleted || f.Status == models.StatusCorrected)
	})
	refs := make([]rules.FilingRef, 0, len(done))
	for _, f := range done {
		refs = append(refs, f.Ref())
	}
	return refs, nil
}

func (s *InMemoryStore) FindActiveWithdrawal(_ context.Context, targetID int64) (*models.Filing, error) {
	found := s.list(func(f *models.Filing) bool {
		return f.IsNoticeOfWithdrawal() && f.WithdrawnFilingID != nil && *f.WithdrawnFilingID == targetID &&
			slices.Contains(models.OpenStatuses, f.Status)
	})
	if len(found) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return found[0], nil
}

func (s *InMemoryStore) list(match func(*models.Filing) bool) []*models.Filing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Filing
	for _, f := range s.filings {
		if match(f) {
			out = append(out, clone(f))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func clone(f *models.Filing) *models.Filing {
	cp := *f
	cp.ColinEventIDs = slices.Clone(f.ColinEventIDs)
	cp.SubmitterRoles = slices.Clone(f.SubmitterRoles)
	return &cp
}
