package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/roguepikachu/canopy/pkg/ctxutil"
)

func captureOutput(f func()) string {
	var buf bytes.Buffer
	orig := logrus.StandardLogger().Out
	logrus.SetOutput(&buf)
	defer logrus.SetOutput(orig)
	f()
	return buf.String()
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"trace", logrus.TraceLevel},
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"bogus", logrus.DebugLevel},
	}
	for _, tt := range tests {
		setLogLevel(tt.in)
		if logrus.GetLevel() != tt.want {
			t.Errorf("setLogLevel(%q): want %v, got %v", tt.in, tt.want, logrus.GetLevel())
		}
	}
	setLogLevel("debug")
}

func TestWith_IncludesRequestID(t *testing.T) {
	logrus.SetLevel(logrus.DebugLevel)
	ctx := ctxutil.WithRequestID(context.Background(), "abc-123")
	out := captureOutput(func() {
		With(ctx, map[string]any{"k": "v"}).Info("hello")
	})
	if !strings.Contains(out, "abc-123") {
		t.Errorf("expected request id in output, got: %s", out)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("expected message in output, got: %s", out)
	}
}

func TestWith_NilFields(t *testing.T) {
	logrus.SetLevel(logrus.DebugLevel)
	out := captureOutput(func() {
		With(context.Background(), nil).Info("bare")
	})
	if !strings.Contains(out, "bare") {
		t.Errorf("expected message in output, got: %s", out)
	}
}

func TestErrorf(t *testing.T) {
	out := captureOutput(func() {
		Error(context.Background(), "failed: %s", "boom")
	})
	if !strings.Contains(out, "failed: boom") {
		t.Errorf("unexpected output: %s", out)
	}
}
