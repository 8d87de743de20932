package service

import (
	"context"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"time"

	"portfolio/internal/models"
	"portfolio/internal/observability"
	"portfolio/internal/repository"

	"github.com/google/uuid"
)

// IDGenerator produces comment identifiers.
type IDGenerator func() string

// NewUUIDGenerator returns random (version 4) UUID identifiers.
func NewUUIDGenerator() IDGenerator {
	return func() string { return uuid.NewString() }
}

// NewLegacyIDGenerator returns identifiers in the older millisecond timestamp
// plus nine base36 characters format. They are not collision-free.
func NewLegacyIDGenerator(now func() time.Time) IDGenerator {
	if now == nil {
		now = time.Now
	}
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	return func() string {
		var b strings.Builder
		b.WriteString(strconv.FormatInt(now().UnixMilli(), 10))
		for range 9 {
			b.WriteByte(alphabet[rand.IntN(len(alphabet))])
		}
		return b.String()
	}
}

type CommentService struct {
	commentRepo repository.CommentRepository
	newID       IDGenerator
	now         func() time.Time
}

type AddCommentInput struct {
	ItemID   string
	Identity *models.Identity
	Content  string
	ParentID string
}

type LikeCommentInput struct {
	ItemID    string
	CommentID string
	IsReply   bool
	ParentID  string
}

func NewCommentService(commentRepo repository.CommentRepository, newID IDGenerator) *CommentService {
	if newID == nil {
		newID = NewUUIDGenerator()
	}
	return &CommentService{
		commentRepo: commentRepo,
		newID:       newID,
		now:         time.Now,
	}
}

// AddComment stores a top-level comment, or a reply when ParentID is set, and
// returns its identifier. Blank content and an unknown parent are silently
// ignored: nothing is written and the returned identifier is empty.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (string, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return "", nil
	}

	author := models.ResolveIdentity(in.Identity)
	id := s.newID()
	createdAt := s.now().UTC()

	var stored bool
	_, err := s.commentRepo.UpdateItem(ctx, in.ItemID, func(current []models.Comment) ([]models.Comment, bool) {
		stored = false
		if in.ParentID == "" {
			stored = true
			return append(current, models.Comment{
				ID:           id,
				Author:       author.DisplayName,
				AuthorAvatar: author.AvatarURL,
				Content:      content,
				CreatedAt:    createdAt,
				Replies:      []models.Reply{},
			}), true
		}

		idx := slices.IndexFunc(current, func(c models.Comment) bool { return c.ID == in.ParentID })
		if idx < 0 {
			return current, false
		}
		stored = true
		current[idx].Replies = append(current[idx].Replies, models.Reply{
			ID:           id,
			ParentID:     in.ParentID,
			Author:       author.DisplayName,
			AuthorAvatar: author.AvatarURL,
			Content:      content,
			CreatedAt:    createdAt,
		})
		return current, true
	})
	if err != nil {
		return "", err
	}
	if !stored {
		return "", nil
	}

	kind := "comment"
	if in.ParentID != "" {
		kind = "reply"
	}
	observability.CommentsCreated.WithLabelValues(kind).Inc()
	return id, nil
}

// LikeComment adds one like to a comment or reply. Repeated likes by the same
// caller all count. It reports whether the target was found.
func (s *CommentService) LikeComment(ctx context.Context, in LikeCommentInput) (bool, error) {
	var liked bool
	_, err := s.commentRepo.UpdateItem(ctx, in.ItemID, func(current []models.Comment) ([]models.Comment, bool) {
		liked = false
		if !in.IsReply {
			idx := slices.IndexFunc(current, func(c models.Comment) bool { return c.ID == in.CommentID })
			if idx < 0 {
				return current, false
			}
			current[idx].Likes++
			liked = true
			return current, true
		}

		parent := slices.IndexFunc(current, func(c models.Comment) bool { return c.ID == in.ParentID })
		if parent < 0 {
			return current, false
		}
		replies := current[parent].Replies
		idx := slices.IndexFunc(replies, func(r models.Reply) bool { return r.ID == in.CommentID })
		if idx < 0 {
			return current, false
		}
		replies[idx].Likes++
		liked = true
		return current, true
	})
	if err != nil {
		return false, err
	}
	if liked {
		observability.CommentLikes.Inc()
	}
	return liked, nil
}

// ListComments returns the item's top-level comments in display order.
func (s *CommentService) ListComments(ctx context.Context, itemID string) ([]models.Comment, error) {
	return s.commentRepo.ListByItem(ctx, itemID)
}

// GetCommentCount counts each top-level comment plus its direct replies.
func (s *CommentService) GetCommentCount(ctx context.Context, itemID string) (int, error) {
	comments, err := s.commentRepo.ListByItem(ctx, itemID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, c := range comments {
		count += 1 + len(c.Replies)
	}
	return count, nil
}
