package rabbitmq_common

import "testing"

type countingLogger struct {
	noopLogger
	infos int
}

func (l *countingLogger) Info(string, ...interface{}) { l.infos++ }

func TestOrNoop(t *testing.T) {
	if OrNoop(nil) == nil {
		t.Fatal("OrNoop(nil) must return a usable logger")
	}
	OrNoop(nil).Error(nil, "ignored", "key", "value")

	counting := &countingLogger{}
	logger := OrNoop(counting)
	logger.Info("kept")
	if counting.infos != 1 {
		t.Fatalf("configured logger was replaced, infos = %d", counting.infos)
	}
}
