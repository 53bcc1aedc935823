// Package storetest is a conformance suite every store.Store backend must pass.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notodo/internal/models"
	"notodo/internal/store"
)

// Factory returns an empty store; the suite closes it.
type Factory func(t *testing.T) store.Store

var epoch = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// Run executes the suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("users", func(t *testing.T) { testUsers(t, open(t, newStore)) })
	t.Run("categories", func(t *testing.T) { testCategories(t, open(t, newStore)) })
	t.Run("notes", func(t *testing.T) { testNotes(t, open(t, newStore)) })
	t.Run("tasks", func(t *testing.T) { testTasks(t, open(t, newStore)) })
}

func open(t *testing.T, newStore Factory) store.Store {
	s := newStore(t)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Ping(context.Background()))
	return s
}

func at(i int) time.Time {
	return epoch.Add(time.Duration(i) * time.Minute)
}

func mustUser(t *testing.T, s store.Store, email string) *models.User {
	u := &models.User{ID: uuid.NewString(), Name: "User " + email, Email: email, PasswordHash: "hash", CreatedAt: epoch}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s, "alice@example.com")

	got, err := s.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.True(t, got.CreatedAt.Equal(epoch))

	got, err = s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	dup := &models.User{ID: uuid.NewString(), Name: "Other", Email: "alice@example.com", PasswordHash: "x", CreatedAt: epoch}
	assert.ErrorIs(t, s.CreateUser(ctx, dup), store.ErrDuplicate)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetUser(ctx, uuid.NewString())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testCategories(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := mustUser(t, s, "alice@example.com")
	bob := mustUser(t, s, "bob@example.com")

	for i, name := range []string{"Work", "Home", "Gym"} {
		c := &models.Category{ID: uuid.NewString(), OwnerID: alice.ID, Name: name, Color: "bg-blue-500", CreatedAt: at(i)}
		require.NoError(t, s.CreateCategory(ctx, c))
	}
	bobs := &models.Category{ID: uuid.NewString(), OwnerID: bob.ID, Name: "Work", Color: "bg-red-500", CreatedAt: at(10)}
	require.NoError(t, s.CreateCategory(ctx, bobs))

	list, err := s.ListCategories(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Gym", "Home", "Work"}, []string{list[0].Name, list[1].Name, list[2].Name})

	got, err := s.GetCategory(ctx, bobs.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.OwnerID)
	assert.Equal(t, "bg-red-500", got.Color)

	require.NoError(t, s.DeleteCategory(ctx, bobs.ID))
	assert.ErrorIs(t, s.DeleteCategory(ctx, bobs.ID), store.ErrNotFound)
	_, err = s.GetCategory(ctx, bobs.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	list, err = s.ListCategories(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func testNotes(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := mustUser(t, s, "alice@example.com")
	bob := mustUser(t, s, "bob@example.com")

	notes := make([]*models.Note, 5)
	for i := range notes {
		notes[i] = &models.Note{
			ID:        uuid.NewString(),
			OwnerID:   alice.ID,
			Title:     fmt.Sprintf("note %d", i),
			Content:   "body",
			Category:  "General",
			IsPinned:  i == 1,
			CreatedAt: at(i),
			UpdatedAt: at(i),
		}
		require.NoError(t, s.CreateNote(ctx, notes[i]))
	}
	require.NoError(t, s.CreateNote(ctx, &models.Note{
		ID: uuid.NewString(), OwnerID: bob.ID, Title: "bob", Content: "x", Category: "General", CreatedAt: at(20), UpdatedAt: at(20),
	}))

	list, err := s.ListNotes(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, "note 1", list[0].Title, "pinned first")
	assert.Equal(t, "note 4", list[1].Title)
	assert.Equal(t, "note 0", list[4].Title)
	for _, n := range list {
		assert.Equal(t, alice.ID, n.OwnerID)
	}

	recent, err := s.RecentNotes(ctx, alice.ID, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, []string{"note 4", "note 3", "note 2"}, []string{recent[0].Title, recent[1].Title, recent[2].Title})

	n := notes[0]
	n.Title = "renamed"
	n.IsPinned = true
	n.UpdatedAt = at(30)
	require.NoError(t, s.UpdateNote(ctx, n))

	got, err := s.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.True(t, got.IsPinned)
	assert.True(t, got.UpdatedAt.Equal(at(30)))
	assert.True(t, got.CreatedAt.Equal(at(0)))

	require.NoError(t, s.DeleteNote(ctx, n.ID))
	assert.ErrorIs(t, s.DeleteNote(ctx, n.ID), store.ErrNotFound)
	assert.ErrorIs(t, s.UpdateNote(ctx, n), store.ErrNotFound)
	_, err = s.GetNote(ctx, n.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testTasks(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := mustUser(t, s, "alice@example.com")
	bob := mustUser(t, s, "bob@example.com")
	due := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	tasks := make([]*models.Task, 7)
	for i := range tasks {
		tasks[i] = &models.Task{
			ID:         uuid.NewString(),
			OwnerID:    alice.ID,
			Title:      fmt.Sprintf("task %d", i),
			Priority:   models.PriorityMedium,
			Category:   "General",
			IsComplete: i%3 == 0,
			CreatedAt:  at(i),
			UpdatedAt:  at(i),
		}
		if i == 2 {
			tasks[i].DueDate = &due
			tasks[i].Description = "with a due date"
		}
		require.NoError(t, s.CreateTask(ctx, tasks[i]))
	}
	require.NoError(t, s.CreateTask(ctx, &models.Task{
		ID: uuid.NewString(), OwnerID: bob.ID, Title: "bob", Priority: models.PriorityLow, Category: "General",
		IsComplete: true, CreatedAt: at(50), UpdatedAt: at(50),
	}))

	list, err := s.ListTasks(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 7)
	assert.Equal(t, "task 0", list[0].Title)
	assert.Equal(t, "task 6", list[6].Title)

	recent, err := s.RecentTasks(ctx, alice.ID, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, "task 6", recent[0].Title)
	assert.Equal(t, "task 2", recent[4].Title)

	total, err := s.CountTasks(ctx, alice.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	done, err := s.CountTasks(ctx, alice.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 3, done)

	got, err := s.GetTask(ctx, tasks[2].ID)
	require.NoError(t, err)
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(due))
	assert.Equal(t, "with a due date", got.Description)
	assert.Equal(t, models.PriorityMedium, got.Priority)

	got.DueDate = nil
	got.IsComplete = true
	got.Priority = models.PriorityHigh
	got.UpdatedAt = at(40)
	require.NoError(t, s.UpdateTask(ctx, got))

	got, err = s.GetTask(ctx, tasks[2].ID)
	require.NoError(t, err)
	assert.Nil(t, got.DueDate)
	assert.True(t, got.IsComplete)
	assert.Equal(t, models.PriorityHigh, got.Priority)

	require.NoError(t, s.DeleteTask(ctx, got.ID))
	assert.ErrorIs(t, s.DeleteTask(ctx, got.ID), store.ErrNotFound)
	_, err = s.GetTask(ctx, got.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
