package memory

import (
	"context"
	"real-estate-system/internal/core/domain"
	"sort"
	"sync"
)

type PropertyTraceRepository struct {
	mu     sync.RWMutex
	traces []domain.PropertyTrace
}

func NewPropertyTraceRepository() *PropertyTraceRepository {
	return &PropertyTraceRepository{}
}

func sortByDateSaleDesc(traces []domain.PropertyTrace) {
	sort.SliceStable(traces, func(i, j int) bool {
		return traces[i].DateSale.After(traces[j].DateSale)
	})
}

func (r *PropertyTraceRepository) FindByProperty(ctx context.Context, propertyID string) ([]domain.PropertyTrace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.PropertyTrace, 0)
	for _, t := range r.traces {
		if t.IDProperty == propertyID {
			out = append(out, t)
		}
	}
	sortByDateSaleDesc(out)
	return out, nil
}

func (r *PropertyTraceRepository) FindAll(ctx context.Context) ([]domain.PropertyTrace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.PropertyTrace, len(r.traces))
	copy(out, r.traces)
	sortByDateSaleDesc(out)
	return out, nil
}

func (r *PropertyTraceRepository) Create(ctx context.Context, trace *domain.PropertyTrace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.traces = append(r.traces, *trace)
	return nil
}

func (r *PropertyTraceRepository) Delete(ctx context.Context, traceID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.traces {
		if t.IDPropertyTrace == traceID {
			r.traces = append(r.traces[:i], r.traces[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
