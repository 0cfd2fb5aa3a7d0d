package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Property - объект недвижимости.
// IDProperty - внешний идентификатор, не совпадает с ключом хранилища.
type Property struct {
	IDProperty   string
	Name         string
	Address      string
	Price        float64
	CodeInternal string
	Year         int
	IDOwner      string
	ImageURL     string
}

// PropertyWithOwner - объект, обогащенный данными владельца.
// Owner == nil, если владелец с таким IDOwner не найден.
type PropertyWithOwner struct {
	Property
	Owner *Owner
}

// NewProperty создает объект с новым IDProperty.
func NewProperty(data Property) *Property {
	p := data
	p.IDProperty = uuid.New().String()
	return &p
}

// Validate проверяет данные объекта перед записью в хранилище.
func (p *Property) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("name", "is required")
	}
	if strings.TrimSpace(p.Address) == "" {
		return NewValidationError("address", "is required")
	}
	if p.Price < 0 {
		return NewValidationError("price", "must be non-negative")
	}
	if p.Year < 0 {
		return NewValidationError("year", "must be non-negative")
	}
	return nil
}
