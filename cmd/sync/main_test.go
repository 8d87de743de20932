package main

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"portfolio/internal/bootstrap"
	"portfolio/internal/catalog"
	"portfolio/internal/config"
	"portfolio/internal/models"
	"portfolio/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingFetcher struct {
	mu    sync.Mutex
	names []string
}

func (f *recordingFetcher) ListRepositories(_ context.Context, username string) ([]catalog.RawRepository, error) {
	f.mu.Lock()
	f.names = append(f.names, username)
	f.mu.Unlock()
	if username == "ghost" {
		return nil, models.NewNotFoundError("user", username)
	}
	desc := "a tool"
	return []catalog.RawRepository{{ID: 1, Name: "tool", Description: &desc}}, nil
}

func (f *recordingFetcher) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.names[len(f.names)-1]
}

func TestSyncCatalog_UsernameResolution(t *testing.T) {
	ctx := context.Background()
	fetcher := &recordingFetcher{}
	rt, err := bootstrap.NewRuntime(ctx, &config.Config{}, store.NewMemoryStore(), fetcher)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	var out bytes.Buffer
	require.NoError(t, syncCatalog(ctx, rt, "", "octocat", &out))
	assert.Equal(t, "octocat", fetcher.last())
	assert.Equal(t, "synced 1 projects for octocat (generation 1, curated bootstrapped: true)\n", out.String())

	_, err = rt.Catalog.ChangeUsername(ctx, "alice")
	require.NoError(t, err)
	rt.Catalog.Wait()

	out.Reset()
	require.NoError(t, syncCatalog(ctx, rt, "", "octocat", &out))
	assert.Equal(t, "alice", fetcher.last())

	require.NoError(t, syncCatalog(ctx, rt, "bob", "octocat", &out))
	assert.Equal(t, "bob", fetcher.last())
}

func TestSyncCatalog_FailureReturnsError(t *testing.T) {
	ctx := context.Background()
	rt, err := bootstrap.NewRuntime(ctx, &config.Config{}, store.NewMemoryStore(), &recordingFetcher{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	var out bytes.Buffer
	err = syncCatalog(ctx, rt, "ghost", "octocat", &out)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
	assert.Empty(t, out.String())
}
