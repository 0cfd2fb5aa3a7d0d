package postgres_adapter

import (
	"context"
	"fmt"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"

	"github.com/jackc/pgx/v5/pgxpool"
)

const traceColumns = "id_property_trace, date_sale, name, value, tax, id_property"

type PropertyTraceRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyTraceRepository(pool *pgxpool.Pool) (*PropertyTraceRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PropertyTraceRepository{pool: pool}, nil
}

func (r *PropertyTraceRepository) queryTraces(ctx context.Context, query string, args ...any) ([]domain.PropertyTrace, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	traces := make([]domain.PropertyTrace, 0)
	for rows.Next() {
		var t domain.PropertyTrace
		if err := rows.Scan(&t.IDPropertyTrace, &t.DateSale, &t.Name, &t.Value, &t.Tax, &t.IDProperty); err != nil {
			return nil, fmt.Errorf("failed to scan trace: %w", err)
		}
		traces = append(traces, t)
	}
	return traces, rows.Err()
}

func (r *PropertyTraceRepository) FindByProperty(ctx context.Context, propertyID string) ([]domain.PropertyTrace, error) {
	query := `SELECT ` + traceColumns + ` FROM property_traces WHERE id_property = $1 ORDER BY date_sale DESC`
	traces, err := r.queryTraces(ctx, query, propertyID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to query traces", err, port.Fields{
			"component":   "PropertyTraceRepository",
			"property_id": propertyID,
		})
		return nil, storageError("query traces", err)
	}
	return traces, nil
}

func (r *PropertyTraceRepository) FindAll(ctx context.Context) ([]domain.PropertyTrace, error) {
	traces, err := r.queryTraces(ctx, `SELECT `+traceColumns+` FROM property_traces ORDER BY date_sale DESC`)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to query traces", err, port.Fields{"component": "PropertyTraceRepository"})
		return nil, storageError("query traces", err)
	}
	return traces, nil
}

func (r *PropertyTraceRepository) Create(ctx context.Context, t *domain.PropertyTrace) error {
	query := `INSERT INTO property_traces (` + traceColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.pool.Exec(ctx, query, t.IDPropertyTrace, t.DateSale, t.Name, t.Value, t.Tax, t.IDProperty); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to insert trace", err, port.Fields{
			"component": "PropertyTraceRepository",
			"trace_id":  t.IDPropertyTrace,
		})
		return storageError("insert trace", err)
	}
	return nil
}

func (r *PropertyTraceRepository) Delete(ctx context.Context, traceID string) (bool, error) {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM property_traces WHERE id_property_trace = $1`, traceID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to delete trace", err, port.Fields{
			"component": "PropertyTraceRepository",
			"trace_id":  traceID,
		})
		return false, storageError("delete trace", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
