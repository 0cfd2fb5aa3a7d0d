package mongo_adapter

import (
	"fmt"
	"real-estate-system/internal/core/domain"
)

func storageError(action string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", action, domain.ErrStorageUnavailable, err)
}
