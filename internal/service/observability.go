package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"
)

// UseCaseEvent describes one finished service call. Fields carries
// use-case specific details such as the sheet name or filtered row count.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
}

// UseCaseObserver is notified after every service call.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

// MultiObserver notifies each non-nil observer in turn.
func MultiObserver(observers ...UseCaseObserver) UseCaseObserver {
	var fan multiUseCaseObserver
	for _, o := range observers {
		if o != nil {
			fan = append(fan, o)
		}
	}
	switch len(fan) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return fan[0]
	}
	return fan
}

type multiUseCaseObserver []UseCaseObserver

func (m multiUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, o := range m {
		o.ObserveUseCase(ctx, event)
	}
}

// logUseCaseObserver writes one "service_use_case" record per event:
// Info on success, Warn on failure.
type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver logs to w through a text handler filtered at level.
func NewLogUseCaseObserver(w io.Writer, level slog.Level) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &logUseCaseObserver{logger: slog.New(h)}
}

// NewSlogUseCaseObserver logs through logger.
func NewSlogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	level := slog.LevelInfo
	if event.Err != nil {
		level = slog.LevelWarn
	}
	if !o.logger.Enabled(ctx, level) {
		return
	}
	o.logger.LogAttrs(ctx, level, "service_use_case", eventAttrs(event)...)
}

// eventAttrs lists the fixed attributes first, then Fields by key so
// records diff cleanly.
func eventAttrs(event UseCaseEvent) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("use_case", event.Name),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
		slog.Bool("success", event.Success),
	}
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, event.Fields[k]))
	}
	if event.Err != nil {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	return attrs
}
