package rabbitmq_common

// Logger - минимальный логгер пакетов rabbitmq, пары ключ-значение передаются списком.
// Сервисы подключают свой логгер через адаптер-мост.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(err error, msg string, keysAndValues ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{})        {}
func (noopLogger) Info(string, ...interface{})         {}
func (noopLogger) Warn(string, ...interface{})         {}
func (noopLogger) Error(error, string, ...interface{}) {}

// OrNoop подставляет пустой логгер, если в конфигурации логгер не задан
func OrNoop(logger Logger) Logger {
	if logger == nil {
		return noopLogger{}
	}
	return logger
}
