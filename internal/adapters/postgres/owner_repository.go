package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ownerColumns = "id_owner, name, address, photo, birthday"

type OwnerRepository struct {
	pool *pgxpool.Pool
}

func NewOwnerRepository(pool *pgxpool.Pool) (*OwnerRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &OwnerRepository{pool: pool}, nil
}

type ownerScanner interface {
	Scan(dest ...any) error
}

func scanOwner(row ownerScanner) (domain.Owner, error) {
	var o domain.Owner
	var birthday *time.Time
	if err := row.Scan(&o.IDOwner, &o.Name, &o.Address, &o.Photo, &birthday); err != nil {
		return o, err
	}
	if birthday != nil {
		o.Birthday = *birthday
	}
	return o, nil
}

func (r *OwnerRepository) queryOwners(ctx context.Context, query string, args ...any) ([]domain.Owner, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owners := make([]domain.Owner, 0)
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan owner: %w", err)
		}
		owners = append(owners, o)
	}
	return owners, rows.Err()
}

func (r *OwnerRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Owner, error) {
	if len(ids) == 0 {
		return []domain.Owner{}, nil
	}
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "OwnerRepository",
		"method":    "FindByIDs",
		"ids_count": len(ids),
	})

	owners, err := r.queryOwners(ctx, `SELECT `+ownerColumns+` FROM owners WHERE id_owner = ANY($1)`, ids)
	if err != nil {
		repoLogger.Error("Failed to query owners by ids", err, nil)
		return nil, storageError("query owners by ids", err)
	}
	return owners, nil
}

func (r *OwnerRepository) FindByID(ctx context.Context, id string) (*domain.Owner, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "OwnerRepository",
		"method":    "FindByID",
		"owner_id":  id,
	})

	o, err := scanOwner(r.pool.QueryRow(ctx, `SELECT `+ownerColumns+` FROM owners WHERE id_owner = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		repoLogger.Error("Failed to find owner", err, nil)
		return nil, storageError("find owner by id", err)
	}
	return &o, nil
}

func (r *OwnerRepository) FindAll(ctx context.Context) ([]domain.Owner, error) {
	owners, err := r.queryOwners(ctx, `SELECT `+ownerColumns+` FROM owners ORDER BY name, id_owner`)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to query owners", err, port.Fields{"component": "OwnerRepository"})
		return nil, storageError("query owners", err)
	}
	return owners, nil
}

func (r *OwnerRepository) Create(ctx context.Context, o *domain.Owner) error {
	var birthday *time.Time
	if !o.Birthday.IsZero() {
		birthday = &o.Birthday
	}

	query := `INSERT INTO owners (` + ownerColumns + `) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.pool.Exec(ctx, query, o.IDOwner, o.Name, o.Address, o.Photo, birthday); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to insert owner", err, port.Fields{
			"component": "OwnerRepository",
			"owner_id":  o.IDOwner,
		})
		return storageError("insert owner", err)
	}
	return nil
}
