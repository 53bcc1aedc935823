package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notodo/internal/query"
)

func TestCategories(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	cats := f.svc.Categories

	work, err := cats.Create(ctx, f.alice, CategoryInput{Name: " Work ", Color: "bg-blue-500"})
	require.NoError(t, err)
	assert.Equal(t, "Work", work.Name)
	assert.Equal(t, f.alice, work.OwnerID)

	_, err = cats.Create(ctx, f.alice, CategoryInput{Name: "Home", Color: "bg-pink-500"})
	require.NoError(t, err)
	_, err = cats.Create(ctx, f.bob, CategoryInput{Name: "Bob's", Color: "bg-red-500"})
	require.NoError(t, err)

	list, err := cats.List(ctx, f.alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Home", list[0].Name, "newest first")
	assert.Equal(t, "Work", list[1].Name)

	t.Run("validation", func(t *testing.T) {
		_, err := cats.Create(ctx, f.alice, CategoryInput{Name: "  ", Color: "bg-blue-500"})
		assert.ErrorIs(t, err, ErrValidation)
		_, err = cats.Create(ctx, f.alice, CategoryInput{Name: "X", Color: "#ff0000"})
		assert.ErrorIs(t, err, ErrValidation)
		_, err = cats.Create(ctx, f.alice, CategoryInput{Name: "X"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("delete by another user", func(t *testing.T) {
		err := cats.Delete(ctx, f.bob, work.ID)
		assert.ErrorIs(t, err, ErrAuth)
		list, err := cats.List(ctx, f.alice)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("delete keeps referents", func(t *testing.T) {
		task, err := f.svc.Tasks.Create(ctx, f.alice, TaskInput{Title: "Report", Category: "Work"})
		require.NoError(t, err)

		require.NoError(t, cats.Delete(ctx, f.alice, work.ID))
		assert.ErrorIs(t, cats.Delete(ctx, f.alice, work.ID), ErrNotFound)

		got, err := f.svc.Tasks.Get(ctx, f.alice, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "Work", got.Category)

		filtered, err := f.svc.Tasks.List(ctx, f.alice, query.TaskQuery{Category: "Work"})
		require.NoError(t, err)
		assert.Len(t, filtered, 1)
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.ErrorIs(t, cats.Delete(ctx, f.alice, "not-a-uuid"), ErrNotFound)
	})
}
