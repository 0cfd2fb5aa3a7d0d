package domain

import "time"

// Типы событий изменения объектов
const (
	PropertyCreated = "property.created"
	PropertyUpdated = "property.updated"
	PropertyDeleted = "property.deleted"
)

// PropertyChangedEvent публикуется после успешной записи объекта.
type PropertyChangedEvent struct {
	EventType  string
	IDProperty string
	OccurredAt time.Time
	// Property пустой для property.deleted
	Property *Property
}
