package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveIdentity(t *testing.T) {
	t.Parallel()

	guest := ResolveIdentity(nil)
	assert.Equal(t, GuestDisplayName, guest.DisplayName)
	assert.Empty(t, guest.AvatarURL)

	named := ResolveIdentity(&Identity{DisplayName: "Ada", AvatarURL: "https://img/ada.png"})
	assert.Equal(t, "Ada", named.DisplayName)
	assert.Equal(t, "https://img/ada.png", named.AvatarURL)

	unnamed := ResolveIdentity(&Identity{AvatarURL: "https://img/x.png"})
	assert.Equal(t, GuestDisplayName, unnamed.DisplayName)
}

func TestCloneComments_DoesNotShareReplies(t *testing.T) {
	t.Parallel()

	orig := []Comment{{ID: "c1", Replies: []Reply{{ID: "r1", ParentID: "c1"}}}}
	clone := CloneComments(orig)
	clone[0].Replies[0].Likes = 5
	clone[0].Likes = 3

	assert.Equal(t, 0, orig[0].Replies[0].Likes)
	assert.Equal(t, 0, orig[0].Likes)
	assert.Nil(t, CloneComments(nil))
}

func TestIsCode(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", NewFetchFailedError(errors.New("boom")))
	assert.True(t, IsCode(err, CodeFetchFailed))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(errors.New("plain"), CodeFetchFailed))
	assert.Contains(t, err.Error(), "boom")
}
