package service

import (
	"context"
	"errors"
	"testing"

	"portfolio/internal/catalog"
	"portfolio/internal/models"
	"portfolio/internal/repository"
	"portfolio/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fetcherStub is a stub for catalog.Fetcher.
type fetcherStub struct {
	listFn func(context.Context, string) ([]catalog.RawRepository, error)
}

func (s *fetcherStub) ListRepositories(ctx context.Context, username string) ([]catalog.RawRepository, error) {
	return s.listFn(ctx, username)
}

func staticFetcher(repos ...catalog.RawRepository) *fetcherStub {
	return &fetcherStub{
		listFn: func(_ context.Context, _ string) ([]catalog.RawRepository, error) { return repos, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	listByItemFn func(context.Context, string) ([]models.Comment, error)
	updateItemFn func(context.Context, string, func([]models.Comment) ([]models.Comment, bool)) ([]models.Comment, error)
}

func (s *commentRepoStub) ListByItem(ctx context.Context, itemID string) ([]models.Comment, error) {
	return s.listByItemFn(ctx, itemID)
}

func (s *commentRepoStub) UpdateItem(
	ctx context.Context,
	itemID string,
	fn func([]models.Comment) ([]models.Comment, bool),
) ([]models.Comment, error) {
	return s.updateItemFn(ctx, itemID, fn)
}

// projectRepoStub is a stub for repository.ProjectRepository.
type projectRepoStub struct {
	listFn    func(context.Context) ([]models.Project, error)
	replaceFn func(context.Context, []models.Project) error
	updateFn  func(context.Context, func([]models.Project) ([]models.Project, bool)) ([]models.Project, error)
}

func (s *projectRepoStub) List(ctx context.Context) ([]models.Project, error) {
	return s.listFn(ctx)
}
func (s *projectRepoStub) Replace(ctx context.Context, projects []models.Project) error {
	return s.replaceFn(ctx, projects)
}
func (s *projectRepoStub) Update(
	ctx context.Context,
	fn func([]models.Project) ([]models.Project, bool),
) ([]models.Project, error) {
	return s.updateFn(ctx, fn)
}

type testEnv struct {
	store     *store.MemoryStore
	curated   repository.ProjectRepository
	catalog   repository.ProjectRepository
	profile   repository.ProfileRepository
	selection *SelectionService
}

func newTestEnv() *testEnv {
	s := store.NewMemoryStore()
	env := &testEnv{
		store:   s,
		curated: repository.NewCuratedRepository(s),
		catalog: repository.NewCatalogRepository(s),
		profile: repository.NewProfileRepository(s),
	}
	env.selection = NewSelectionService(env.curated, env.catalog)
	return env
}

func (e *testEnv) catalogService(f catalog.Fetcher) *CatalogService {
	return NewCatalogService(f, e.catalog, e.profile, e.selection, nil)
}

func rawRepo(id int64, name string) catalog.RawRepository {
	desc := name + " description"
	return catalog.RawRepository{ID: id, Name: name, Description: &desc, HTMLURL: "https://github.com/alice/" + name}
}

func project(id string) models.Project {
	return models.Project{ID: id, Title: id, TechStack: []string{}, Topics: []string{}}
}

func intPtr(n int) *int { return &n }

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)
}
