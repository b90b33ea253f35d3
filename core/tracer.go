package core

import (
	"context"
	"log/slog"
	"time"
)

type Span struct {
	name      string
	startTime time.Time
	parent    *Span
	depth     int
	logger    *slog.Logger
}

// StartSpan starts a new span with the given name and optional parent span.
// Spans are reported on slog.Default() at debug level.
func StartSpan(name string, parent *Span) *Span {
	return StartSpanWithLogger(slog.Default(), name, parent)
}

func StartSpanWithLogger(logger *slog.Logger, name string, parent *Span) *Span {
	depth := 0
	if parent != nil {
		depth = parent.depth + 1
		logger = parent.logger
	}

	return &Span{
		name:      name,
		startTime: time.Now(),
		parent:    parent,
		depth:     depth,
		logger:    logger,
	}
}

// WithSpan executes the given function within a span and returns its result
func WithSpan[T any](name string, parent *Span, fn func(*Span) T) T {
	span := StartSpan(name, parent)
	defer span.End()
	return fn(span)
}

// End logs the span duration and returns it.
func (s *Span) End() time.Duration {
	duration := time.Since(s.startTime)
	attrs := []slog.Attr{
		slog.String("span", s.name),
		slog.Int("depth", s.depth),
		slog.Duration("took", duration),
	}
	if s.parent != nil {
		attrs = append(attrs, slog.String("parent", s.parent.name))
	}
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "span finished", attrs...)
	return duration
}
