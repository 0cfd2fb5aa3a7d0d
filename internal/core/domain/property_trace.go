package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PropertyTrace - запись истории продаж объекта.
type PropertyTrace struct {
	IDPropertyTrace string
	DateSale        time.Time
	Name            string
	Value           float64
	Tax             float64
	IDProperty      string
}

// NewPropertyTrace проверяет обязательные поля и назначает идентификатор.
func NewPropertyTrace(data PropertyTrace) (*PropertyTrace, error) {
	if strings.TrimSpace(data.Name) == "" {
		return nil, NewValidationError("name", "is required")
	}
	if strings.TrimSpace(data.IDProperty) == "" {
		return nil, NewValidationError("idProperty", "is required")
	}
	t := data
	t.IDPropertyTrace = uuid.New().String()
	if t.DateSale.IsZero() {
		t.DateSale = time.Now().UTC()
	}
	return &t, nil
}
