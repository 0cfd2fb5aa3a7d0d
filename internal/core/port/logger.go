package port

// Fields - структурированные данные для записи в лог.
type Fields map[string]interface{}

// LoggerPort - контракт системы логирования, которым пользуется ядро.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	// Error записывает ошибку вместе с объектом error.
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)

	// WithFields возвращает новый логгер с добавленным контекстом (trace_id, use_case и т.д.).
	WithFields(fields Fields) LoggerPort
}
