package contracts

// Типы и версии событий (заголовки event-type и event-version)
const (
	PropertyImportedEventType = "PropertyImportedEvent"
	PropertyChangedEventType  = "PropertyChangedEvent"
	EventVersionV1            = "1.0.0"
)

// Заголовки AMQP-сообщений
const (
	HeaderEventType    = "event-type"
	HeaderEventVersion = "event-version"
	HeaderTraceID      = "x-trace-id"
)
