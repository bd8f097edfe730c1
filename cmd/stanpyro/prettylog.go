package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"sync"

	"github.com/fatih/color"
	"github.com/panyam/stanpyro/core"
)

type PrettyHandlerOptions struct {
	SlogOpts slog.HandlerOptions
}

// PrettyHandler prints one coloured line per record with its attributes as indented JSON.
type PrettyHandler struct {
	slog.Handler
	l *log.Logger
}

func NewPrettyHandler(out io.Writer, opts PrettyHandlerOptions) *PrettyHandler {
	return &PrettyHandler{
		Handler: slog.NewJSONHandler(out, &opts.SlogOpts),
		l:       log.New(out, "", 0),
	}
}

func (h *PrettyHandler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String() + ":"
	switch r.Level {
	case slog.LevelDebug:
		level = color.MagentaString(level)
	case slog.LevelInfo:
		level = color.BlueString(level)
	case slog.LevelWarn:
		level = color.YellowString(level)
	case slog.LevelError:
		level = color.RedString(level)
	}

	fields := make(map[string]any, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		fields[a.Key] = a.Value.Any()
		return true
	})
	line := []any{r.Time.Format("[15:04:05.000]"), level, color.CyanString(r.Message)}
	if len(fields) > 0 {
		b, err := json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return err
		}
		line = append(line, color.WhiteString(string(b)))
	}
	h.l.Println(line...)
	return nil
}

// slogLogger sends the core leveled logger through the default slog handler.
type slogLogger struct {
	mu    sync.RWMutex
	level core.LogLevel
}

func newSlogLogger(level core.LogLevel) *slogLogger {
	return &slogLogger{level: level}
}

func (s *slogLogger) SetLevel(level core.LogLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = level
}

func (s *slogLogger) GetLevel() core.LogLevel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.level
}

func (s *slogLogger) log(level core.LogLevel, slevel slog.Level, format string, args ...any) {
	if level < s.GetLevel() {
		return
	}
	slog.Log(context.Background(), slevel, fmt.Sprintf(format, args...))
}

func (s *slogLogger) Debug(format string, args ...any) {
	s.log(core.LogLevelDebug, slog.LevelDebug, format, args...)
}
func (s *slogLogger) Info(format string, args ...any) {
	s.log(core.LogLevelInfo, slog.LevelInfo, format, args...)
}
func (s *slogLogger) Warn(format string, args ...any) {
	s.log(core.LogLevelWarn, slog.LevelWarn, format, args...)
}
func (s *slogLogger) Error(format string, args ...any) {
	s.log(core.LogLevelError, slog.LevelError, format, args...)
}
