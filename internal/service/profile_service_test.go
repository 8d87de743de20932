package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_SetPhoto(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("accepts image data url", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv()
		svc := NewProfileService(env.profile)
		require.NoError(t, svc.SetPhoto(ctx, "data:image/png;base64,iVBORw0KGgo="))

		photo, err := svc.Photo(ctx)
		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", photo)
	})

	t.Run("empty clears", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv()
		svc := NewProfileService(env.profile)
		require.NoError(t, svc.SetPhoto(ctx, "data:image/png;base64,AAAA"))
		require.NoError(t, svc.SetPhoto(ctx, ""))

		photo, err := svc.Photo(ctx)
		require.NoError(t, err)
		assert.Empty(t, photo)
	})

	rejected := map[string]string{
		"remote url":     "https://example.com/me.png",
		"not an image":   "data:text/plain;base64,AAAA",
		"not base64":     "data:image/png,rawbytes",
		"bad payload":    "data:image/png;base64,@@@",
		"oversized blob": "data:image/png;base64," + strings.Repeat("A", MaxPhotoBytes),
	}
	for name, photo := range rejected {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv()
			err := NewProfileService(env.profile).SetPhoto(ctx, photo)
			assertValidationError(t, err)
		})
	}
}
