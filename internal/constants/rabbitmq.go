package constants

// Обменник событий об изменении объектов
const (
	ExchangePropertyEvents = "property_events"
)

// Импорт объектов из внешних источников
const (
	ExchangePropertyImports   = "property_imports_exchange"
	QueuePropertyImports      = "property_imports"
	RoutingKeyPropertyImports = "properties.import"

	PropertyImportsDLX = "property_imports_dlx"
	PropertyImportsDLQ = "property_imports_dlq"

	PropertyImportsRetryExchange = "property_imports_retry"
	PropertyImportsRetryQueue    = "property_imports_wait"
)

// PublishTimeout в секундах, если контекст не задает свой срок
const PublishTimeoutSeconds = 10
