package usecase

import (
	"context"
	"errors"
	"fmt"
	"real-estate-system/internal/adapters/memory"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"sync"
	"time"
)

// countingProperties считает обращения к хранилищу объектов
type countingProperties struct {
	*memory.PropertyRepository
	mu    sync.Mutex
	calls map[string]int
}

func newCountingProperties(seed ...domain.Property) *countingProperties {
	return &countingProperties{PropertyRepository: memory.NewPropertyRepository(seed...), calls: map[string]int{}}
}

func (c *countingProperties) inc(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[method]++
}

func (c *countingProperties) count(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

func (c *countingProperties) FindPage(ctx context.Context, f domain.PropertyFilter, p domain.PageRequest) ([]domain.Property, error) {
	c.inc("FindPage")
	return c.PropertyRepository.FindPage(ctx, f, p)
}

func (c *countingProperties) Create(ctx context.Context, p *domain.Property) error {
	c.inc("Create")
	return c.PropertyRepository.Create(ctx, p)
}

func (c *countingProperties) Replace(ctx context.Context, p *domain.Property) (bool, error) {
	c.inc("Replace")
	return c.PropertyRepository.Replace(ctx, p)
}

// countingOwners запоминает все пакетные запросы владельцев
type countingOwners struct {
	*memory.OwnerRepository
	batches [][]string
	err     error
}

func (c *countingOwners) FindByIDs(ctx context.Context, ids []string) ([]domain.Owner, error) {
	c.batches = append(c.batches, append([]string{}, ids...))
	if c.err != nil {
		return nil, c.err
	}
	return c.OwnerRepository.FindByIDs(ctx, ids)
}

type recordingEvents struct {
	events []domain.PropertyChangedEvent
	err    error
}

func (r *recordingEvents) PublishPropertyChanged(ctx context.Context, event domain.PropertyChangedEvent) error {
	r.events = append(r.events, event)
	return r.err
}

var errStoreDown = fmt.Errorf("failed to query: %w: %w", domain.ErrStorageUnavailable, errors.New("connection refused"))

// brokenProperties - хранилище, недоступное для любых операций
type brokenProperties struct {
	port.PropertyRepositoryPort
}

func (brokenProperties) Count(context.Context, domain.PropertyFilter) (int64, error) {
	return 0, errStoreDown
}

func (brokenProperties) FindAll(context.Context, domain.PropertyFilter) ([]domain.Property, error) {
	return nil, errStoreDown
}

func (brokenProperties) FindByID(context.Context, string) (*domain.Property, error) {
	return nil, errStoreDown
}

type stubTokens struct{}

func (stubTokens) GenerateToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	return "token-" + user.Username, time.Now().Add(time.Hour), nil
}

func (stubTokens) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	return nil, domain.ErrTokenInvalid
}
