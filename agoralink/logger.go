package agoralink

import "log/slog"

// Logger is a minimal logging interface accepted by the SDK.
type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// noopLogger discards all logs.
type noopLogger struct{}

func (noopLogger) Debug(string, map[string]any) {}
func (noopLogger) Info(string, map[string]any)  {}
func (noopLogger) Warn(string, map[string]any)  {}
func (noopLogger) Error(string, map[string]any) {}

// SlogLogger adapts a *slog.Logger to the SDK's Logger interface.
type SlogLogger struct {
	L *slog.Logger
}

func (s SlogLogger) Debug(msg string, fields map[string]any) { s.L.Debug(msg, slogArgs(fields)...) }
func (s SlogLogger) Info(msg string, fields map[string]any)  { s.L.Info(msg, slogArgs(fields)...) }
func (s SlogLogger) Warn(msg string, fields map[string]any)  { s.L.Warn(msg, slogArgs(fields)...) }
func (s SlogLogger) Error(msg string, fields map[string]any) { s.L.Error(msg, slogArgs(fields)...) }

func slogArgs(fields map[string]any) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
