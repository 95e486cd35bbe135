package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardkeep/pkg/platform/sentinel"
)

func TestInMemoryUserStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryUserStore()

	identity := Identity{Email: "u@x.com", CredentialHash: "hash", RegisteredAt: time.Now()}
	require.NoError(t, store.Create(ctx, identity))

	found, err := store.FindByEmail(ctx, "u@x.com")
	require.NoError(t, err)
	assert.Equal(t, identity.CredentialHash, found.CredentialHash)

	require.ErrorIs(t, store.Create(ctx, identity), sentinel.ErrConflict)

	_, err = store.FindByEmail(ctx, "missing@x.com")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemorySessionStore()

	session := Session{ID: "sid", Email: "u@x.com", CreatedAt: time.Now()}
	require.NoError(t, store.Save(ctx, session))

	found, err := store.Find(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", found.Email)

	require.NoError(t, store.Delete(ctx, "sid"))
	_, err = store.Find(ctx, "sid")
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	// Deleting again stays quiet.
	require.NoError(t, store.Delete(ctx, "sid"))
}
