package postgres_adapter

import (
	"errors"
	"fmt"
	"real-estate-system/internal/core/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// storageError помечает ошибку драйвера как domain.ErrStorageUnavailable.
func storageError(action string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", action, domain.ErrStorageUnavailable, err)
}

// uniqueViolation возвращает имя нарушенного ограничения уникальности.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return pgErr.ConstraintName, true
	}
	return "", false
}
