package repository

import (
	"context"

	"portfolio/internal/models"
	"portfolio/internal/store"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	ListByItem(ctx context.Context, itemID string) ([]models.Comment, error)
	UpdateItem(
		ctx context.Context,
		itemID string,
		fn func(current []models.Comment) ([]models.Comment, bool),
	) ([]models.Comment, error)
}

type commentRepository struct {
	cell *store.Cell[models.CommentStore]
}

// NewCommentRepository creates a new CommentRepository. All items share one key.
func NewCommentRepository(s store.Store) CommentRepository {
	return &commentRepository{
		cell: store.NewCell(s, KeyComments, func() models.CommentStore { return models.CommentStore{} }),
	}
}

func (r *commentRepository) ListByItem(ctx context.Context, itemID string) ([]models.Comment, error) {
	all, err := r.cell.Get(ctx)
	if err != nil {
		return nil, err
	}
	comments := all[itemID]
	if comments == nil {
		return []models.Comment{}, nil
	}
	return comments, nil
}

// UpdateItem atomically rewrites one item's comment list. fn receives a deep copy
// and reports false to leave the store untouched.
func (r *commentRepository) UpdateItem(
	ctx context.Context,
	itemID string,
	fn func(current []models.Comment) ([]models.Comment, bool),
) ([]models.Comment, error) {
	var result []models.Comment
	_, err := r.cell.Modify(ctx, func(all models.CommentStore) (models.CommentStore, bool) {
		next, changed := fn(models.CloneComments(all[itemID]))
		result = next
		if !changed {
			return all, false
		}
		out := make(models.CommentStore, len(all)+1)
		for k, v := range all {
			out[k] = v
		}
		out[itemID] = next
		return out, true
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
