package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"math"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const propertyColumns = "p.id_property, p.name, p.address, p.price, p.code_internal, p.year, p.id_owner, p.image_url"

// Порядок вставки - единственный стабильный порядок для пагинации
const propertyOrder = "ORDER BY p.id ASC"

// PropertyRepository - реализация PropertyRepositoryPort для PostgreSQL.
type PropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRepository(pool *pgxpool.Pool) (*PropertyRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PropertyRepository{pool: pool}, nil
}

func scanProperties(rows pgx.Rows) ([]domain.Property, error) {
	defer rows.Close()

	properties := make([]domain.Property, 0)
	for rows.Next() {
		var p domain.Property
		if err := rows.Scan(&p.IDProperty, &p.Name, &p.Address, &p.Price, &p.CodeInternal, &p.Year, &p.IDOwner, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during property rows iteration: %w", err)
	}
	return properties, nil
}

func (r *PropertyRepository) FindAll(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyRepository",
		"method":    "FindAll",
	})

	whereClause, args := applyFilters(filter).build()
	query := fmt.Sprintf(`SELECT %s FROM properties p %s %s`, propertyColumns, whereClause, propertyOrder)

	repoLogger.Debug("Executing query", port.Fields{"query": query})
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to query properties", err, port.Fields{"query": query})
		return nil, storageError("query properties", err)
	}

	properties, err := scanProperties(rows)
	if err != nil {
		repoLogger.Error("Failed to read properties", err, nil)
		return nil, storageError("read properties", err)
	}
	return properties, nil
}

func (r *PropertyRepository) FindPage(ctx context.Context, filter domain.PropertyFilter, page domain.PageRequest) ([]domain.Property, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyRepository",
		"method":    "FindPage",
		"page":      page.Page,
		"page_size": page.PageSize,
	})

	offset := page.Offset()
	// OFFSET за пределами bigint все равно дает пустую страницу
	if offset == math.MaxInt64 {
		return []domain.Property{}, nil
	}

	qb := applyFilters(filter)
	limitArg := qb.nextArg(page.PageSize)
	offsetArg := qb.nextArg(offset)
	whereClause, args := qb.build()

	query := fmt.Sprintf(`SELECT %s FROM properties p %s %s LIMIT $%d OFFSET $%d`,
		propertyColumns, whereClause, propertyOrder, limitArg, offsetArg)

	repoLogger.Debug("Executing query", port.Fields{"query": query})
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to query page of properties", err, port.Fields{"query": query})
		return nil, storageError("query properties page", err)
	}

	properties, err := scanProperties(rows)
	if err != nil {
		repoLogger.Error("Failed to read properties", err, nil)
		return nil, storageError("read properties page", err)
	}
	return properties, nil
}

func (r *PropertyRepository) Count(ctx context.Context, filter domain.PropertyFilter) (int64, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyRepository",
		"method":    "Count",
	})

	whereClause, args := applyFilters(filter).build()
	query := fmt.Sprintf(`SELECT COUNT(*) FROM properties p %s`, whereClause)

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		repoLogger.Error("Failed to count properties", err, port.Fields{"query": query})
		return 0, storageError("count properties", err)
	}
	return total, nil
}

// FindByID возвращает (nil, nil), если объект не найден.
func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PropertyRepository",
		"method":      "FindByID",
		"property_id": id,
	})

	query := fmt.Sprintf(`SELECT %s FROM properties p WHERE p.id_property = $1`, propertyColumns)

	var p domain.Property
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.IDProperty, &p.Name, &p.Address, &p.Price, &p.CodeInternal, &p.Year, &p.IDOwner, &p.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("Property not found", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find property", err, nil)
		return nil, storageError("find property by id", err)
	}
	return &p, nil
}

func (r *PropertyRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Property, error) {
	if len(ids) == 0 {
		return []domain.Property{}, nil
	}
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyRepository",
		"method":    "FindByIDs",
		"ids_count": len(ids),
	})

	query := fmt.Sprintf(`SELECT %s FROM properties p WHERE p.id_property = ANY($1)`, propertyColumns)
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		repoLogger.Error("Failed to query properties by ids", err, nil)
		return nil, storageError("query properties by ids", err)
	}

	properties, err := scanProperties(rows)
	if err != nil {
		repoLogger.Error("Failed to read properties", err, nil)
		return nil, storageError("read properties by ids", err)
	}
	return properties, nil
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PropertyRepository",
		"method":      "Create",
		"property_id": p.IDProperty,
	})

	query := `INSERT INTO properties (id_property, name, address, price, code_internal, year, id_owner, image_url)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query, p.IDProperty, p.Name, p.Address, p.Price, p.CodeInternal, p.Year, p.IDOwner, p.ImageURL)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			repoLogger.Warn("Property with this id already exists", nil)
			return fmt.Errorf("property %s already exists: %w", p.IDProperty, err)
		}
		repoLogger.Error("Failed to insert property", err, nil)
		return storageError("insert property", err)
	}

	repoLogger.Debug("Property created", nil)
	return nil
}

// Replace возвращает false только если строки с таким id нет.
func (r *PropertyRepository) Replace(ctx context.Context, p *domain.Property) (bool, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PropertyRepository",
		"method":      "Replace",
		"property_id": p.IDProperty,
	})

	query := `UPDATE properties
	          SET name = $2, address = $3, price = $4, code_internal = $5, year = $6, id_owner = $7, image_url = $8
	          WHERE id_property = $1`

	cmdTag, err := r.pool.Exec(ctx, query, p.IDProperty, p.Name, p.Address, p.Price, p.CodeInternal, p.Year, p.IDOwner, p.ImageURL)
	if err != nil {
		repoLogger.Error("Failed to update property", err, nil)
		return false, storageError("update property", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) (bool, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PropertyRepository",
		"method":      "Delete",
		"property_id": id,
	})

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id_property = $1`, id)
	if err != nil {
		repoLogger.Error("Failed to delete property", err, nil)
		return false, storageError("delete property", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
