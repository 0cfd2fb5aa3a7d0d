package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Избранное хранится отдельной таблицей, порядок - порядок добавления
const userSelect = `SELECT u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name, u.avatar,
       u.theme, u.notifications, u.language, u.role, u.is_active, u.created_at, u.last_login,
       COALESCE((SELECT array_agg(f.property_id ORDER BY f.id) FROM user_favorites f WHERE f.user_id = u.id), '{}')
FROM users u`

// UserRepository - реализация UserRepositoryPort для PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &UserRepository{
		pool: pool,
	}, nil
}

// Create создает нового пользователя в БД.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "UserRepository",
		"method":    "Create",
		"user_id":   user.ID.String(),
	})

	query := `INSERT INTO users (id, username, email, password_hash, first_name, last_name, avatar,
	                             theme, notifications, language, role, is_active, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	repoLogger.Debug("Executing query to create user.", nil)
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Avatar,
		user.Preferences.Theme, user.Preferences.Notifications, user.Preferences.Language,
		user.Role, user.IsActive, user.CreatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			repoLogger.Warn("User already exists", port.Fields{"constraint": constraint})
			if constraint == "users_email_key" {
				return domain.ErrEmailInUse
			}
			return domain.ErrUsernameInUse
		}
		repoLogger.Error("Failed to create user", err, port.Fields{"query": query})
		return storageError("create user", err)
	}

	repoLogger.Debug("User created successfully.", nil)
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, method, where string, arg any) (*domain.User, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "UserRepository",
		"method":    method,
	})

	var user domain.User
	err := r.pool.QueryRow(ctx, userSelect+" WHERE "+where+" AND u.is_active = true", arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Avatar,
		&user.Preferences.Theme,
		&user.Preferences.Notifications,
		&user.Preferences.Language,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.LastLogin,
		&user.FavoriteProperties,
	)
	if err != nil {
		// pgx.ErrNoRows - Scan не получил ни одной строки
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("User not found.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find user", err, nil)
		return nil, storageError("find user", err)
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.findOne(ctx, "FindByID", "u.id = $1", id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "FindByUsername", "u.username = $1", username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "FindByEmail", "u.email = $1", email)
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if _, err := r.pool.Exec(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to update last login", err, port.Fields{
			"component": "UserRepository",
			"user_id":   id.String(),
		})
		return storageError("update last login", err)
	}
	return nil
}

func (r *UserRepository) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs domain.UserPreferences) (bool, error) {
	query := `UPDATE users SET theme = $2, notifications = $3, language = $4 WHERE id = $1 AND is_active = true`
	cmdTag, err := r.pool.Exec(ctx, query, id, prefs.Theme, prefs.Notifications, prefs.Language)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to update preferences", err, port.Fields{
			"component": "UserRepository",
			"user_id":   id.String(),
		})
		return false, storageError("update preferences", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (bool, error) {
	query := `UPDATE users SET first_name = $2, last_name = $3, avatar = $4 WHERE id = $1 AND is_active = true`
	cmdTag, err := r.pool.Exec(ctx, query, id, update.FirstName, update.LastName, update.Avatar)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to update profile", err, port.Fields{
			"component": "UserRepository",
			"user_id":   id.String(),
		})
		return false, storageError("update profile", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// changeFavorites выполняет stmt в транзакции, если активный пользователь существует.
func (r *UserRepository) changeFavorites(ctx context.Context, method string, id uuid.UUID, propertyID, stmt string) (bool, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "UserRepository",
		"method":      method,
		"user_id":     id.String(),
		"property_id": propertyID,
	})

	var exists bool
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND is_active = true)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return nil
		}
		_, err := tx.Exec(ctx, stmt, id, propertyID)
		return err
	})
	if err != nil {
		repoLogger.Error("Failed to change favorites", err, nil)
		return false, storageError("change favorites", err)
	}
	return exists, nil
}

func (r *UserRepository) AddFavorite(ctx context.Context, id uuid.UUID, propertyID string) (bool, error) {
	return r.changeFavorites(ctx, "AddFavorite", id, propertyID,
		`INSERT INTO user_favorites (user_id, property_id) VALUES ($1, $2) ON CONFLICT (user_id, property_id) DO NOTHING`)
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, id uuid.UUID, propertyID string) (bool, error) {
	return r.changeFavorites(ctx, "RemoveFavorite", id, propertyID,
		`DELETE FROM user_favorites WHERE user_id = $1 AND property_id = $2`)
}
