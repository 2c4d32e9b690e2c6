package fs

import (
	"context"
	"testing"

	"alcyxob/workout-map/internal/repository"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatStoreOnFilesystem(t *testing.T) {
	mem := afero.NewMemMapFs()
	store, err := NewFlatStore(mem, "/data")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Get(ctx, "workouts")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.Set(ctx, "workouts", `[{"id":"1"}]`))
	require.NoError(t, store.Set(ctx, "workouts", `[{"id":"2"}]`))

	got, err := store.Get(ctx, "workouts")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"2"}]`, got)

	exists, err := afero.Exists(mem, "/data/workouts.json")
	require.NoError(t, err)
	assert.True(t, exists)
	tmpExists, _ := afero.Exists(mem, "/data/workouts.json.tmp")
	assert.False(t, tmpExists)
}

func TestFlatStoreRemove(t *testing.T) {
	store := NewMemoryFlatStore()
	ctx := context.Background()

	require.NoError(t, store.Remove(ctx, "workouts"))
	require.NoError(t, store.Set(ctx, "workouts", "[]"))
	require.NoError(t, store.Remove(ctx, "workouts"))
	_, err := store.Get(ctx, "workouts")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestKeysAreEscaped(t *testing.T) {
	mem := afero.NewMemMapFs()
	store, err := NewFlatStore(mem, "/data")
	require.NoError(t, err)

	require.NoError(t, store.Set(context.Background(), "../escape", "x"))
	exists, _ := afero.Exists(mem, "/escape.json")
	assert.False(t, exists)
	got, err := store.Get(context.Background(), "../escape")
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}
