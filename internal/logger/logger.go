package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

// Logger emits structured JSON log records with fixed service metadata.
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

func New(service string) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// GenerateRequestID returns a fresh request identifier
func GenerateRequestID() string {
	return uuid.NewString()
}

func (l *Logger) log(level slog.Level, action, requestID, message string, attrs ...slog.Attr) {
	base := []slog.Attr{
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	}
	l.handler.LogAttrs(context.Background(), level, message, append(base, attrs...)...)
}

func (l *Logger) Debug(action, requestID, message string) {
	l.log(slog.LevelDebug, action, requestID, message)
}

func (l *Logger) Info(action, requestID, message string) {
	l.log(slog.LevelInfo, action, requestID, message)
}

func (l *Logger) Warn(action, requestID, message string) {
	l.log(slog.LevelWarn, action, requestID, message)
}

func (l *Logger) Error(action, requestID, message string, err error) {
	attr := slog.String("error", "")
	if err != nil {
		attr = slog.String("error", err.Error())
	}
	l.log(slog.LevelError, action, requestID, message, attr)
}
