package service

import (
	"context"
	"errors"
	"testing"

	"portfolio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T, env *testEnv, ids ...string) {
	t.Helper()
	projects := make([]models.Project, 0, len(ids))
	for _, id := range ids {
		projects = append(projects, project(id))
	}
	require.NoError(t, env.catalog.Replace(context.Background(), projects))
}

func TestSelectionService_CommitFollowsCatalogOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv()
	seedCatalog(t, env, "A", "B", "C", "D")
	sel := env.selection

	require.NoError(t, sel.Begin(ctx))
	assert.True(t, sel.IsOpen())
	assert.Empty(t, sel.Selected())

	sel.Toggle("D", true)
	sel.Toggle("B", true)
	sel.Toggle("A", true)
	sel.Toggle("A", false)

	curated, err := sel.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "D"}, models.ProjectIDs(curated))
	assert.False(t, sel.IsOpen())

	stored, err := env.curated.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "D"}, models.ProjectIDs(stored))
	assert.Equal(t, []string{"B", "D"}, sel.Selected())
}

func TestSelectionService_CommitDropsIDsMissingFromCatalog(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv()
	seedCatalog(t, env, "A", "B")
	require.NoError(t, env.curated.Replace(ctx, []models.Project{project("A"), project("ghost")}))

	sel := env.selection
	require.NoError(t, sel.Begin(ctx))
	assert.True(t, sel.IsSelected("ghost"))

	curated, err := sel.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, models.ProjectIDs(curated))
	assert.Equal(t, []string{"A"}, sel.Selected())
}

func TestSelectionService_SelectAllAndClearAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv()
	seedCatalog(t, env, "A", "B", "C")
	sel := env.selection

	require.NoError(t, sel.SelectAll(ctx))
	assert.Equal(t, []string{"A", "B", "C"}, sel.Selected())

	curated, err := env.curated.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, curated, "select-all must not touch the curated collection")

	sel.ClearAll()
	assert.Empty(t, sel.Selected())

	committed, err := sel.Commit(ctx)
	require.NoError(t, err)
	assert.Empty(t, committed)
}

func TestSelectionService_CancelDiscardsToggles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv()
	seedCatalog(t, env, "A", "B")
	require.NoError(t, env.curated.Replace(ctx, []models.Project{project("A")}))
	sel := env.selection

	require.NoError(t, sel.Begin(ctx))
	sel.Toggle("B", true)
	sel.Toggle("A", false)
	require.NoError(t, sel.Cancel(ctx))

	assert.False(t, sel.IsOpen())
	assert.Equal(t, []string{"A"}, sel.Selected())
}

func TestSelectionService_RemoveOne(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv()
	require.NoError(t, env.curated.Replace(ctx, []models.Project{project("A"), project("B"), project("C")}))
	sel := env.selection
	require.NoError(t, sel.Sync(ctx))

	curated, err := sel.RemoveOne(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, models.ProjectIDs(curated))
	assert.Equal(t, []string{"A", "C"}, sel.Selected())

	curated, err = sel.RemoveOne(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, models.ProjectIDs(curated))
}

func TestSelectionService_RemoveOneResetsPendingToggles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv()
	seedCatalog(t, env, "A", "B", "C")
	require.NoError(t, env.curated.Replace(ctx, []models.Project{project("A"), project("B")}))
	sel := env.selection

	require.NoError(t, sel.Begin(ctx))
	sel.Toggle("C", true)

	_, err := sel.RemoveOne(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, sel.Selected())
	assert.True(t, sel.IsOpen())
}

func TestSelectionService_Bootstrap(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("adopts when empty", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv()
		adopted, err := env.selection.Bootstrap(ctx, []models.Project{project("A"), project("B")})
		require.NoError(t, err)
		assert.True(t, adopted)
		assert.Equal(t, []string{"A", "B"}, env.selection.Selected())
	})

	t.Run("ignores non-empty", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv()
		require.NoError(t, env.curated.Replace(ctx, []models.Project{project("X")}))
		require.NoError(t, env.selection.Sync(ctx))
		env.selection.Toggle("Y", true)

		adopted, err := env.selection.Bootstrap(ctx, []models.Project{project("A")})
		require.NoError(t, err)
		assert.False(t, adopted)
		assert.Equal(t, []string{"X", "Y"}, env.selection.Selected())
	})

	t.Run("empty fetch writes nothing", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv()
		adopted, err := env.selection.Bootstrap(ctx, nil)
		require.NoError(t, err)
		assert.False(t, adopted)
	})
}

func TestSelectionService_StoreErrorsPropagate(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("read failed")
	failing := &projectRepoStub{
		listFn: func(_ context.Context) ([]models.Project, error) { return nil, storeErr },
		updateFn: func(_ context.Context, _ func([]models.Project) ([]models.Project, bool)) ([]models.Project, error) {
			return nil, storeErr
		},
	}
	sel := NewSelectionService(failing, failing)
	sel.Toggle("A", true)

	assert.ErrorIs(t, sel.Begin(context.Background()), storeErr)
	assert.ErrorIs(t, sel.SelectAll(context.Background()), storeErr)
	_, err := sel.Commit(context.Background())
	assert.ErrorIs(t, err, storeErr)
	_, err = sel.RemoveOne(context.Background(), "A")
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, []string{"A"}, sel.Selected(), "failed operations keep the selection")
}

func TestScenario_FetchThenRemoveOne(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv()
	svc := env.catalogService(staticFetcher(rawRepo(1, "A"), rawRepo(2, "B"), rawRepo(3, "C")))

	_, err := svc.FetchCatalog(ctx, "alice")
	require.NoError(t, err)

	curated, err := env.curated.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, models.ProjectIDs(curated))

	curated, err = env.selection.RemoveOne(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, models.ProjectIDs(curated))
	assert.Equal(t, []string{"1", "3"}, env.selection.Selected())
}
