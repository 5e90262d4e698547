package logger

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewProductionLogger(t *testing.T) {
	t.Parallel()

	log, err := NewProductionLogger(false)
	if err != nil {
		t.Fatalf("NewProductionLogger: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be disabled by default")
	}

	log, err = NewProductionLogger(true)
	if err != nil {
		t.Fatalf("NewProductionLogger(debug): %v", err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug mode should enable the debug level")
	}
}

func TestNewDevelopmentLogger(t *testing.T) {
	t.Parallel()

	log, err := NewDevelopmentLogger(true)
	if err != nil {
		t.Fatalf("NewDevelopmentLogger: %v", err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug mode should enable the debug level")
	}
}

func TestSync_NilLogger(t *testing.T) {
	t.Parallel()

	if err := Sync(nil); err != nil {
		t.Errorf("Sync(nil) = %v, want nil", err)
	}
}

func TestSanitizeError(t *testing.T) {
	t.Parallel()

	if got := SanitizeError(nil); got != "" {
		t.Errorf("nil error = %q, want empty", got)
	}

	got := SanitizeError(errors.New("bad\x00response\x1b[31m payload"))
	if strings.ContainsRune(got, '\x00') || strings.ContainsRune(got, '\x1b') {
		t.Errorf("control characters survived: %q", got)
	}

	long := errors.New(strings.Repeat("x", MaxErrorMessageLength+100))
	if got := SanitizeError(long); len(got) != MaxErrorMessageLength+3 {
		t.Errorf("len = %d, want %d", len(got), MaxErrorMessageLength+3)
	}
}

func TestSanitizeString(t *testing.T) {
	t.Parallel()

	if got := SanitizeString("", 10); got != "" {
		t.Errorf("empty input = %q", got)
	}
	if got := SanitizeString("keep\nnewlines\tand tabs", 0); got != "keep\nnewlines\tand tabs" {
		t.Errorf("whitespace mangled: %q", got)
	}
	if got := SanitizeString(strings.Repeat("a", 20), 5); got != "aaaaa..." {
		t.Errorf("truncation = %q", got)
	}
}

func TestSanitizePath(t *testing.T) {
	t.Parallel()

	long := "/" + strings.Repeat("p", MaxPathLength+50)
	got := SanitizePath(long)
	if len(got) != MaxPathLength+3 {
		t.Errorf("len = %d, want %d", len(got), MaxPathLength+3)
	}
}
