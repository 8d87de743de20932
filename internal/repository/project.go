package repository

import (
	"context"

	"portfolio/internal/models"
	"portfolio/internal/store"
)

// ProjectRepository defines interface for one project collection
type ProjectRepository interface {
	List(ctx context.Context) ([]models.Project, error)
	Replace(ctx context.Context, projects []models.Project) error
	Update(ctx context.Context, fn func(current []models.Project) ([]models.Project, bool)) ([]models.Project, error)
}

type projectRepository struct {
	cell *store.Cell[[]models.Project]
}

// NewCuratedRepository returns the repository for the user-curated collection.
func NewCuratedRepository(s store.Store) ProjectRepository {
	return newProjectRepository(s, KeyCuratedProjects)
}

// NewCatalogRepository returns the repository for the full fetched catalog.
func NewCatalogRepository(s store.Store) ProjectRepository {
	return newProjectRepository(s, KeyCatalogProjects)
}

func newProjectRepository(s store.Store, key string) *projectRepository {
	return &projectRepository{
		cell: store.NewCell(s, key, func() []models.Project { return []models.Project{} }),
	}
}

func (r *projectRepository) List(ctx context.Context) ([]models.Project, error) {
	return r.cell.Get(ctx)
}

func (r *projectRepository) Replace(ctx context.Context, projects []models.Project) error {
	next := append([]models.Project{}, projects...)
	_, err := r.cell.Set(ctx, func([]models.Project) []models.Project { return next })
	return err
}

// Update applies fn atomically. fn reports false to leave the collection untouched.
func (r *projectRepository) Update(
	ctx context.Context,
	fn func(current []models.Project) ([]models.Project, bool),
) ([]models.Project, error) {
	return r.cell.Modify(ctx, fn)
}
