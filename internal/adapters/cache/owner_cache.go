package cache

import (
	"context"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"time"

	"github.com/karlseguin/ccache/v3"
)

// OwnerCache - кэширующий декоратор над OwnerRepositoryPort.
// Кэшируются только найденные владельцы, отсутствие не запоминается.
type OwnerCache struct {
	next  port.OwnerRepositoryPort
	cache *ccache.Cache[domain.Owner]
	ttl   time.Duration
}

func NewOwnerCache(next port.OwnerRepositoryPort, maxSize int64, ttl time.Duration) *OwnerCache {
	return &OwnerCache{
		next:  next,
		cache: ccache.New(ccache.Configure[domain.Owner]().MaxSize(maxSize)),
		ttl:   ttl,
	}
}

func (c *OwnerCache) lookup(id string) (domain.Owner, bool) {
	item := c.cache.Get(id)
	if item == nil || item.Expired() {
		return domain.Owner{}, false
	}
	return item.Value(), true
}

// FindByIDs отдает владельцев из кэша и догружает промахи одним запросом.
func (c *OwnerCache) FindByIDs(ctx context.Context, ids []string) ([]domain.Owner, error) {
	owners := make([]domain.Owner, 0, len(ids))
	misses := make([]string, 0)
	for _, id := range ids {
		if o, ok := c.lookup(id); ok {
			owners = append(owners, o)
			continue
		}
		misses = append(misses, id)
	}

	if len(misses) > 0 {
		loaded, err := c.next.FindByIDs(ctx, misses)
		if err != nil {
			return nil, err
		}
		for _, o := range loaded {
			c.cache.Set(o.IDOwner, o, c.ttl)
		}
		owners = append(owners, loaded...)
	}

	contextkeys.LoggerFromContext(ctx).Debug("Owner cache lookup", port.Fields{
		"component": "OwnerCache",
		"requested": len(ids),
		"misses":    len(misses),
	})
	return owners, nil
}

func (c *OwnerCache) FindByID(ctx context.Context, id string) (*domain.Owner, error) {
	if o, ok := c.lookup(id); ok {
		return &o, nil
	}
	owner, err := c.next.FindByID(ctx, id)
	if err != nil || owner == nil {
		return owner, err
	}
	c.cache.Set(owner.IDOwner, *owner, c.ttl)
	return owner, nil
}

func (c *OwnerCache) FindAll(ctx context.Context) ([]domain.Owner, error) {
	return c.next.FindAll(ctx)
}

func (c *OwnerCache) Create(ctx context.Context, owner *domain.Owner) error {
	if err := c.next.Create(ctx, owner); err != nil {
		return err
	}
	c.cache.Set(owner.IDOwner, *owner, c.ttl)
	return nil
}

// Stop останавливает фоновую горутину ccache.
func (c *OwnerCache) Stop() {
	c.cache.Stop()
}
