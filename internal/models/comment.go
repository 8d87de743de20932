package models

import "time"

// GuestDisplayName is attributed to comments submitted without an identity.
const GuestDisplayName = "Guest User"

// Identity is the externally supplied author of a comment.
type Identity struct {
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// ResolveIdentity applies the guest fallback. A nil identity yields the guest
// label with no avatar.
func ResolveIdentity(id *Identity) Identity {
	if id == nil {
		return Identity{DisplayName: GuestDisplayName}
	}
	resolved := *id
	if resolved.DisplayName == "" {
		resolved.DisplayName = GuestDisplayName
	}
	return resolved
}

// Comment is a top-level comment on an item. Replies are a separate type, so a
// thread is never deeper than one level of replies.
type Comment struct {
	ID           string    `json:"id"`
	Author       string    `json:"author"`
	AuthorAvatar string    `json:"author_avatar,omitempty"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	Likes        int       `json:"likes"`
	Replies      []Reply   `json:"replies"`
}

// Reply is a response to a top-level Comment.
type Reply struct {
	ID           string    `json:"id"`
	ParentID     string    `json:"parent_id"`
	Author       string    `json:"author"`
	AuthorAvatar string    `json:"author_avatar,omitempty"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	Likes        int       `json:"likes"`
}

// CommentStore maps an item identifier to its top-level comments in display order.
type CommentStore map[string][]Comment

// CloneComments deep-copies a comment list including reply slices.
func CloneComments(comments []Comment) []Comment {
	if comments == nil {
		return nil
	}
	out := make([]Comment, len(comments))
	for i, c := range comments {
		out[i] = c
		if c.Replies != nil {
			out[i].Replies = append([]Reply(nil), c.Replies...)
		}
	}
	return out
}
