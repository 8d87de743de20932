package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"portfolio/internal/bootstrap"
	"portfolio/internal/catalog"
	"portfolio/internal/config"
	"portfolio/internal/server"
	"portfolio/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gatedFetcher struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (f *gatedFetcher) ListRepositories(context.Context, string) ([]catalog.RawRepository, error) {
	f.once.Do(func() { close(f.started) })
	<-f.release
	desc := "a service"
	return []catalog.RawRepository{{ID: 7, Name: "svc", Description: &desc}}, nil
}

func TestServe_DrainsFetchesBeforeReturning(t *testing.T) {
	ctx := context.Background()
	fetcher := &gatedFetcher{started: make(chan struct{}), release: make(chan struct{})}
	rt, err := bootstrap.NewRuntime(ctx, &config.Config{}, store.NewMemoryStore(), fetcher)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var tracingFlushed atomic.Bool
	flush := func(context.Context) error {
		tracingFlushed.Store(true)
		return nil
	}

	stop := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() { done <- serve(server.NewServer(rt), ln, rt, flush, stop) }()

	healthURL := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(healthURL)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	_, err = rt.Catalog.FetchCatalogAsync(ctx, "alice")
	require.NoError(t, err)
	<-fetcher.started

	stop <- syscall.SIGTERM
	select {
	case err := <-done:
		t.Fatalf("serve returned while a fetch was in flight: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	close(fetcher.release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the fetch finished")
	}

	projects, err := rt.Catalog.Catalog(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "7", projects[0].ID)
	assert.True(t, tracingFlushed.Load())
}
