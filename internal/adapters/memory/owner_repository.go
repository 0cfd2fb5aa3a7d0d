package memory

import (
	"context"
	"fmt"
	"real-estate-system/internal/core/domain"
	"sort"
	"sync"
)

type OwnerRepository struct {
	mu     sync.RWMutex
	owners []domain.Owner
	byID   map[string]int
}

func NewOwnerRepository(seed ...domain.Owner) *OwnerRepository {
	r := &OwnerRepository{byID: make(map[string]int, len(seed))}
	for _, o := range seed {
		r.byID[o.IDOwner] = len(r.owners)
		r.owners = append(r.owners, o)
	}
	return r
}

func (r *OwnerRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Owner, 0, len(ids))
	for _, id := range ids {
		if i, ok := r.byID[id]; ok {
			out = append(out, r.owners[i])
		}
	}
	return out, nil
}

func (r *OwnerRepository) FindByID(ctx context.Context, id string) (*domain.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.byID[id]; ok {
		o := r.owners[i]
		return &o, nil
	}
	return nil, nil
}

func (r *OwnerRepository) FindAll(ctx context.Context) ([]domain.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Owner, len(r.owners))
	copy(out, r.owners)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].IDOwner < out[j].IDOwner
	})
	return out, nil
}

func (r *OwnerRepository) Create(ctx context.Context, owner *domain.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[owner.IDOwner]; ok {
		return fmt.Errorf("owner %s already exists", owner.IDOwner)
	}
	r.byID[owner.IDOwner] = len(r.owners)
	r.owners = append(r.owners, *owner)
	return nil
}
