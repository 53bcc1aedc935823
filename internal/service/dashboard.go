package service

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"notodo/internal/models"
	"notodo/internal/query"
)

const (
	recentTaskLimit = 5
	recentNoteLimit = 3
)

type DashboardService struct {
	base
}

// Get summarizes the user's progress. The four reads run concurrently and
// are not a consistent snapshot.
func (s *DashboardService) Get(ctx context.Context, userID string) (query.Dashboard, error) {
	const op = "dashboard.Get"

	var (
		d      query.Dashboard
		recent []models.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.TotalTasks, err = s.store.CountTasks(gctx, userID, false)
		return err
	})
	g.Go(func() (err error) {
		d.CompletedTasks, err = s.store.CountTasks(gctx, userID, true)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.store.RecentTasks(gctx, userID, recentTaskLimit)
		return err
	})
	g.Go(func() (err error) {
		d.RecentNotes, err = s.store.RecentNotes(gctx, userID, recentNoteLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return query.Dashboard{}, storeError(op, "dashboard", err)
	}

	d.Progress = progress(d.CompletedTasks, d.TotalTasks)
	now := s.clock().Local()
	d.RecentTasks = make([]query.TaskView, len(recent))
	for i, t := range recent {
		d.RecentTasks[i] = query.NewTaskView(t, now)
	}
	if d.RecentNotes == nil {
		d.RecentNotes = []models.Note{}
	}
	return d, nil
}

// progress is the completion percentage rounded to the nearest integer.
func progress(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}
