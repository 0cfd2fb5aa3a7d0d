package memory

import (
	"context"
	"fmt"
	"real-estate-system/internal/core/domain"
	"sync"
)

// PropertyRepository хранит объекты в памяти в порядке вставки.
// Используется для STORAGE_DRIVER=memory и в тестах.
type PropertyRepository struct {
	mu    sync.RWMutex
	items []domain.Property
}

func NewPropertyRepository(seed ...domain.Property) *PropertyRepository {
	items := make([]domain.Property, len(seed))
	copy(items, seed)
	return &PropertyRepository{items: items}
}

func (r *PropertyRepository) filtered(filter domain.PropertyFilter) []domain.Property {
	out := make([]domain.Property, 0, len(r.items))
	for _, p := range r.items {
		if filter.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func (r *PropertyRepository) FindAll(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filtered(filter), nil
}

func (r *PropertyRepository) FindPage(ctx context.Context, filter domain.PropertyFilter, page domain.PageRequest) ([]domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return domain.Paginate(r.filtered(filter), page), nil
}

func (r *PropertyRepository) Count(ctx context.Context, filter domain.PropertyFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, p := range r.items {
		if filter.Matches(p) {
			n++
		}
	}
	return n, nil
}

func (r *PropertyRepository) indexOf(id string) int {
	for i, p := range r.items {
		if p.IDProperty == id {
			return i
		}
	}
	return -1
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		p := r.items[i]
		return &p, nil
	}
	return nil, nil
}

func (r *PropertyRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := make([]domain.Property, 0, len(ids))
	for _, p := range r.items {
		if _, ok := wanted[p.IDProperty]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(property.IDProperty) >= 0 {
		return fmt.Errorf("property %s already exists", property.IDProperty)
	}
	r.items = append(r.items, *property)
	return nil
}

func (r *PropertyRepository) Replace(ctx context.Context, property *domain.Property) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(property.IDProperty)
	if i < 0 {
		return false, nil
	}
	r.items[i] = *property
	return true, nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return true, nil
}
