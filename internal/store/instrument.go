package store

import (
	"context"
	"errors"
	"log/slog"

	"portfolio/internal/observability"
)

type instrumented struct {
	next   Store
	logger *observability.StoreLogger
}

// Instrument wraps s with metrics, tracing and structured logging.
func Instrument(s Store, logger *slog.Logger) Store {
	return &instrumented{next: s, logger: observability.NewStoreLogger(logger, s.Name())}
}

func (s *instrumented) Name() string { return s.next.Name() }

func (s *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	defer observability.TrackStoreOp("get", s.next.Name())()
	ctx, span := observability.TraceStoreOperation(ctx, s.next.Name(), "get", key)
	defer span.End()

	v, ok, err := s.next.Get(ctx, key)
	if err != nil {
		span.RecordError(err)
		observability.StoreErrors.WithLabelValues("get", s.next.Name()).Inc()
		s.logger.LogError(ctx, "get", key, err)
		return nil, false, err
	}
	s.logger.LogRead(ctx, key, ok)
	return v, ok, nil
}

func (s *instrumented) Update(ctx context.Context, key string, fn UpdateFunc) error {
	defer observability.TrackStoreOp("update", s.next.Name())()
	ctx, span := observability.TraceStoreOperation(ctx, s.next.Name(), "update", key)
	defer span.End()

	err := s.next.Update(ctx, key, fn)
	if err != nil && !errors.Is(err, ErrNoChange) {
		span.RecordError(err)
		observability.StoreErrors.WithLabelValues("update", s.next.Name()).Inc()
		s.logger.LogError(ctx, "update", key, err)
		return err
	}
	s.logger.LogUpdate(ctx, key)
	return nil
}
