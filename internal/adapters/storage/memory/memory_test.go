package memory

import (
	"context"
	"testing"
	"time"

	"animals-api/internal/domain/animals"
	"animals-api/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestAnimalRepoIDsAreNeverReused(t *testing.T) {
	ctx := context.Background()
	repo := NewAnimalRepo()

	a1, err := repo.Create(ctx, animals.Animal{Breed: "Beagle", Weight: 10})
	require.NoError(t, err)
	a2, err := repo.Create(ctx, animals.Animal{Breed: "Pug", Weight: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a1.ID)
	assert.Equal(t, int64(2), a2.ID)

	require.NoError(t, repo.Delete(ctx, a2.ID))
	a3, err := repo.Create(ctx, animals.Animal{Breed: "Lab", Weight: 30})
	require.NoError(t, err)
	assert.Equal(t, int64(3), a3.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []int64{1, 3}, []int64{list[0].ID, list[1].ID})
}

func TestAnimalRepoUpdateKeepsCreationAndPhoto(t *testing.T) {
	ctx := context.Background()
	repo := NewAnimalRepo()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	a, err := repo.Create(ctx, animals.Animal{Breed: "Beagle", Weight: 10, Name: strptr("Rex"), CreatedAt: created, CreatedBy: strptr("alice")})
	require.NoError(t, err)
	_, err = repo.SetPhoto(ctx, a.ID, "p.png", "alice", created)
	require.NoError(t, err)

	later := created.Add(time.Hour)
	got, err := repo.Update(ctx, animals.Animal{ID: a.ID, Breed: "Pug", Weight: 8, UpdatedAt: later, UpdatedBy: strptr("bob")}, false)
	require.NoError(t, err)

	assert.Equal(t, "Pug", got.Breed)
	require.NotNil(t, got.Name)
	assert.Equal(t, "Rex", *got.Name)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, "alice", *got.CreatedBy)
	assert.Equal(t, "bob", *got.UpdatedBy)
	require.NotNil(t, got.PhotoFilename)
	assert.Equal(t, "p.png", *got.PhotoFilename)

	got, err = repo.Update(ctx, animals.Animal{ID: a.ID, Breed: "Pug", Weight: 8, UpdatedAt: later, UpdatedBy: strptr("bob")}, true)
	require.NoError(t, err)
	assert.Nil(t, got.Name)
}

func TestAnimalRepoNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewAnimalRepo()

	_, err := repo.GetByID(ctx, 9)
	assert.ErrorIs(t, err, animals.ErrNotFound)
	_, err = repo.Update(ctx, animals.Animal{ID: 9}, true)
	assert.ErrorIs(t, err, animals.ErrNotFound)
	_, err = repo.SetPhoto(ctx, 9, "x.png", "alice", time.Now())
	assert.ErrorIs(t, err, animals.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 9), animals.ErrNotFound)
}

func TestSessionStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore().(*sessionStore)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Put(ctx, auth.Session{ID: "s1", Claims: auth.Claims{Username: "alice"}, ExpiresAt: now.Add(time.Minute)}))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Claims.Username)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	assert.Error(t, store.Put(ctx, auth.Session{ID: " "}))
}
