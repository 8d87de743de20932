package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"portfolio/internal/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrument_PassesThroughAndCountsErrors(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s := Instrument(NewMemoryStore(), logger)
	assert.Equal(t, "memory", s.Name())

	cell := NewCell[string](s, "k", nil)
	_, err := cell.Set(ctx, func(string) string { return "v" })
	require.NoError(t, err)
	got, err := cell.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	boom := errors.New("boom")
	failing := Instrument(failingStore{err: boom}, logger)
	before := testutil.ToFloat64(observability.StoreErrors.WithLabelValues("update", "failing"))
	err = failing.Update(ctx, "k", func([]byte, bool) ([]byte, error) { return nil, nil })
	assert.ErrorIs(t, err, boom)
	after := testutil.ToFloat64(observability.StoreErrors.WithLabelValues("update", "failing"))
	assert.Equal(t, before+1, after)
}
