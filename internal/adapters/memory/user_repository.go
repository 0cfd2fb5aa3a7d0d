package memory

import (
	"context"
	"real-estate-system/internal/core/domain"
	"sync"
	"time"

	"github.com/google/uuid"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]*domain.User)}
}

// clone отдает копию, чтобы вызывающий код не менял хранимые данные.
func clone(u *domain.User) *domain.User {
	c := *u
	c.FavoriteProperties = append([]string{}, u.FavoriteProperties...)
	if u.Avatar != nil {
		a := *u.Avatar
		c.Avatar = &a
	}
	if u.LastLogin != nil {
		l := *u.LastLogin
		c.LastLogin = &l
	}
	return &c
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.ErrUsernameInUse
		}
		if u.Email == user.Email {
			return domain.ErrEmailInUse
		}
	}
	r.users[user.ID] = clone(user)
	return nil
}

func (r *UserRepository) active(id uuid.UUID) *domain.User {
	u, ok := r.users[id]
	if !ok || !u.IsActive {
		return nil
	}
	return u
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u := r.active(id); u != nil {
		return clone(u), nil
	}
	return nil, nil
}

func (r *UserRepository) findBy(match func(*domain.User) bool) *domain.User {
	for _, u := range r.users {
		if u.IsActive && match(u) {
			return clone(u)
		}
	}
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findBy(func(u *domain.User) bool { return u.Username == username }), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findBy(func(u *domain.User) bool { return u.Email == email }), nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u := r.active(id); u != nil {
		u.LastLogin = &at
	}
	return nil
}

func (r *UserRepository) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs domain.UserPreferences) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.active(id)
	if u == nil {
		return false, nil
	}
	u.Preferences = prefs
	return true, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.active(id)
	if u == nil {
		return false, nil
	}
	u.FirstName = update.FirstName
	u.LastName = update.LastName
	u.Avatar = update.Avatar
	return true, nil
}

func (r *UserRepository) AddFavorite(ctx context.Context, id uuid.UUID, propertyID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.active(id)
	if u == nil {
		return false, nil
	}
	for _, fav := range u.FavoriteProperties {
		if fav == propertyID {
			return true, nil
		}
	}
	u.FavoriteProperties = append(u.FavoriteProperties, propertyID)
	return true, nil
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, id uuid.UUID, propertyID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.active(id)
	if u == nil {
		return false, nil
	}
	kept := u.FavoriteProperties[:0]
	for _, fav := range u.FavoriteProperties {
		if fav != propertyID {
			kept = append(kept, fav)
		}
	}
	u.FavoriteProperties = kept
	return true, nil
}
