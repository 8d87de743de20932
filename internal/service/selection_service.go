package service

import (
	"context"
	"slices"
	"sync"

	"portfolio/internal/models"
	"portfolio/internal/repository"
)

// SelectionService reconciles the curated collection against the full catalog
// through an in-memory selection set. The set is a cache of curated IDs: every
// mutator of the curated collection resets it explicitly.
type SelectionService struct {
	curated repository.ProjectRepository
	catalog repository.ProjectRepository

	mu       sync.Mutex
	selected map[string]struct{}
	open     bool
}

func NewSelectionService(curated, catalog repository.ProjectRepository) *SelectionService {
	return &SelectionService{
		curated:  curated,
		catalog:  catalog,
		selected: map[string]struct{}{},
	}
}

// Sync resets the selection set from the persisted curated collection.
func (s *SelectionService) Sync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncLocked(ctx)
}

func (s *SelectionService) syncLocked(ctx context.Context) error {
	curated, err := s.curated.List(ctx)
	if err != nil {
		return err
	}
	s.resetLocked(curated)
	return nil
}

func (s *SelectionService) resetLocked(curated []models.Project) {
	s.selected = make(map[string]struct{}, len(curated))
	for _, p := range curated {
		s.selected[p.ID] = struct{}{}
	}
}

// Curated returns the persisted curated collection.
func (s *SelectionService) Curated(ctx context.Context) ([]models.Project, error) {
	return s.curated.List(ctx)
}

// Begin opens a selection workflow seeded with the current curated IDs.
func (s *SelectionService) Begin(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.syncLocked(ctx); err != nil {
		return err
	}
	s.open = true
	return nil
}

func (s *SelectionService) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Toggle adds or removes one ID. The curated collection is not touched.
func (s *SelectionService) Toggle(id string, included bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if included {
		s.selected[id] = struct{}{}
		return
	}
	delete(s.selected, id)
}

// SelectAll sets the selection to every ID in the full catalog.
func (s *SelectionService) SelectAll(ctx context.Context) error {
	catalog, err := s.catalog.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked(catalog)
	return nil
}

// ClearAll empties the selection.
func (s *SelectionService) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = map[string]struct{}{}
}

// Selected returns the selected IDs in lexical order.
func (s *SelectionService) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *SelectionService) IsSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[id]
	return ok
}

// Commit replaces the curated collection with the catalog entries whose IDs
// are selected, in catalog order, and closes the workflow. Selected IDs that
// are no longer in the catalog are dropped.
func (s *SelectionService) Commit(ctx context.Context) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	next := make([]models.Project, 0, len(s.selected))
	for _, p := range catalog {
		if _, ok := s.selected[p.ID]; ok {
			next = append(next, p)
		}
	}
	if err := s.curated.Replace(ctx, next); err != nil {
		return nil, err
	}

	s.resetLocked(next)
	s.open = false
	return next, nil
}

// Cancel closes the workflow and discards uncommitted toggles.
func (s *SelectionService) Cancel(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	return s.syncLocked(ctx)
}

// RemoveOne deletes one project from the curated collection, whether or not a
// workflow is open. Removing an unknown ID writes nothing.
func (s *SelectionService) RemoveOne(ctx context.Context, id string) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.curated.Update(ctx, func(current []models.Project) ([]models.Project, bool) {
		idx := slices.IndexFunc(current, func(p models.Project) bool { return p.ID == id })
		if idx < 0 {
			return current, false
		}
		return slices.Delete(current, idx, idx+1), true
	})
	if err != nil {
		return nil, err
	}

	s.resetLocked(next)
	return next, nil
}

// Bootstrap adopts projects as the curated collection when it is empty. A
// non-empty curated collection is left untouched. It reports whether the
// collection was written.
func (s *SelectionService) Bootstrap(ctx context.Context, projects []models.Project) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var adopted bool
	next, err := s.curated.Update(ctx, func(current []models.Project) ([]models.Project, bool) {
		adopted = len(current) == 0 && len(projects) > 0
		if !adopted {
			return current, false
		}
		return append([]models.Project{}, projects...), true
	})
	if err != nil {
		return false, err
	}

	if adopted {
		s.resetLocked(next)
	}
	return adopted, nil
}
