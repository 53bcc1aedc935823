package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	empty, err := f.svc.Dashboard.Get(ctx, f.alice)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalTasks)
	assert.Zero(t, empty.Progress)
	assert.NotNil(t, empty.RecentTasks)
	assert.NotNil(t, empty.RecentNotes)

	for i, complete := range []bool{true, false, true} {
		_, err := f.svc.Tasks.Create(ctx, f.alice, TaskInput{Title: fmt.Sprintf("task %d", i), IsComplete: complete})
		require.NoError(t, err)
	}
	for i := 0; i < 5; i++ {
		_, err := f.svc.Notes.Create(ctx, f.alice, NoteInput{Title: fmt.Sprintf("note %d", i), Content: "body"})
		require.NoError(t, err)
	}
	_, err = f.svc.Tasks.Create(ctx, f.bob, TaskInput{Title: "not counted"})
	require.NoError(t, err)

	d, err := f.svc.Dashboard.Get(ctx, f.alice)
	require.NoError(t, err)
	assert.Equal(t, 3, d.TotalTasks)
	assert.Equal(t, 2, d.CompletedTasks)
	assert.Equal(t, 67, d.Progress)
	titles := make([]string, len(d.RecentTasks))
	for i, v := range d.RecentTasks {
		titles[i] = v.Title
	}
	assert.Equal(t, []string{"task 2", "task 1", "task 0"}, titles)
	assert.Equal(t, []string{"note 4", "note 3", "note 2"}, noteTitles(d.RecentNotes))
}

func TestDashboardRecentTaskLimit(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := f.svc.Tasks.Create(ctx, f.alice, TaskInput{Title: fmt.Sprintf("task %d", i)})
		require.NoError(t, err)
	}
	d, err := f.svc.Dashboard.Get(ctx, f.alice)
	require.NoError(t, err)
	assert.Equal(t, 7, d.TotalTasks)
	assert.Len(t, d.RecentTasks, 5)
	assert.Equal(t, "task 6", d.RecentTasks[0].Title)
}

func TestDashboardFlagsOverdue(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	past := f.clock.Now().AddDate(0, 0, -3).Format(time.DateOnly)
	_, err := f.svc.Tasks.Create(ctx, f.alice, TaskInput{Title: "late", DueDate: past})
	require.NoError(t, err)
	_, err = f.svc.Tasks.Create(ctx, f.alice, TaskInput{Title: "fine"})
	require.NoError(t, err)

	d, err := f.svc.Dashboard.Get(ctx, f.alice)
	require.NoError(t, err)
	require.Len(t, d.RecentTasks, 2)
	assert.Equal(t, "fine", d.RecentTasks[0].Title)
	assert.False(t, d.RecentTasks[0].IsOverdue)
	assert.Equal(t, "late", d.RecentTasks[1].Title)
	assert.True(t, d.RecentTasks[1].IsOverdue)
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0, progress(0, 0))
	assert.Equal(t, 50, progress(1, 2))
	assert.Equal(t, 33, progress(1, 3))
	assert.Equal(t, 100, progress(4, 4))
}
