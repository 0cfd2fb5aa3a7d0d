package rabbitmq

import (
	"real-estate-system/internal/core/domain"
	"time"
)

// PropertyPayloadDTO - объект в теле событий
type PropertyPayloadDTO struct {
	IDProperty   string  `json:"idProperty,omitempty"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Price        float64 `json:"price"`
	CodeInternal string  `json:"codeInternal,omitempty"`
	Year         int     `json:"year,omitempty"`
	IDOwner      string  `json:"idOwner,omitempty"`
	ImageURL     string  `json:"imageUrl,omitempty"`
}

func toPayload(p *domain.Property) *PropertyPayloadDTO {
	if p == nil {
		return nil
	}
	return &PropertyPayloadDTO{
		IDProperty:   p.IDProperty,
		Name:         p.Name,
		Address:      p.Address,
		Price:        p.Price,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
		IDOwner:      p.IDOwner,
		ImageURL:     p.ImageURL,
	}
}

func (d PropertyPayloadDTO) toDomain() domain.Property {
	return domain.Property{
		IDProperty:   d.IDProperty,
		Name:         d.Name,
		Address:      d.Address,
		Price:        d.Price,
		CodeInternal: d.CodeInternal,
		Year:         d.Year,
		IDOwner:      d.IDOwner,
		ImageURL:     d.ImageURL,
	}
}

// PropertyChangedEventDTO - исходящее событие property.created/updated/deleted
type PropertyChangedEventDTO struct {
	EventType  string              `json:"eventType"`
	IDProperty string              `json:"idProperty"`
	OccurredAt time.Time           `json:"occurredAt"`
	Property   *PropertyPayloadDTO `json:"property,omitempty"`
}

// PropertyImportedEventDTO - входящее событие импорта объекта
type PropertyImportedEventDTO struct {
	EventID    string             `json:"eventId"`
	OccurredAt time.Time          `json:"occurredAt"`
	Source     string             `json:"source,omitempty"`
	Property   PropertyPayloadDTO `json:"property"`
}
