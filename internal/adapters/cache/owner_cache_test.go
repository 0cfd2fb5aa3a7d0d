package cache

import (
	"context"
	"real-estate-system/internal/adapters/memory"
	"real-estate-system/internal/core/domain"
	"sync/atomic"
	"testing"
	"time"
)

// countingOwners считает обращения к нижележащему хранилищу
type countingOwners struct {
	*memory.OwnerRepository
	batchCalls atomic.Int32
	lastBatch  []string
}

func (c *countingOwners) FindByIDs(ctx context.Context, ids []string) ([]domain.Owner, error) {
	c.batchCalls.Add(1)
	c.lastBatch = append([]string{}, ids...)
	return c.OwnerRepository.FindByIDs(ctx, ids)
}

func TestOwnerCacheServesRepeatedLookupsFromMemory(t *testing.T) {
	ctx := context.Background()
	backing := &countingOwners{OwnerRepository: memory.NewOwnerRepository(
		domain.Owner{IDOwner: "o1", Name: "Alice"},
		domain.Owner{IDOwner: "o2", Name: "Bob"},
	)}
	c := NewOwnerCache(backing, 100, time.Minute)
	defer c.Stop()

	first, err := c.FindByIDs(ctx, []string{"o1", "missing"})
	if err != nil || len(first) != 1 {
		t.Fatalf("first lookup = %v, %v", first, err)
	}

	second, err := c.FindByIDs(ctx, []string{"o1", "o2", "missing"})
	if err != nil || len(second) != 2 {
		t.Fatalf("second lookup = %v, %v", second, err)
	}
	if got := backing.lastBatch; len(got) != 2 || got[0] != "o2" || got[1] != "missing" {
		t.Errorf("second lookup should only ask for misses, asked for %v", got)
	}

	backing.batchCalls.Store(0)
	if _, err := c.FindByIDs(ctx, []string{"o1", "o2"}); err != nil {
		t.Fatal(err)
	}
	if n := backing.batchCalls.Load(); n != 0 {
		t.Errorf("fully cached lookup hit storage %d times", n)
	}
}

func TestOwnerCacheCreatePopulates(t *testing.T) {
	ctx := context.Background()
	c := NewOwnerCache(memory.NewOwnerRepository(), 100, time.Minute)
	defer c.Stop()

	if err := c.Create(ctx, &domain.Owner{IDOwner: "o9", Name: "Eve"}); err != nil {
		t.Fatal(err)
	}
	got, err := c.FindByID(ctx, "o9")
	if err != nil || got == nil || got.Name != "Eve" {
		t.Fatalf("FindByID = %+v, %v", got, err)
	}
	missing, err := c.FindByID(ctx, "nope")
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil) for unknown owner, got %+v, %v", missing, err)
	}
}
