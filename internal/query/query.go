// Package query holds the filter and sort rules applied whenever tasks or notes
// are listed, so every surface (REST, MCP, client) evaluates them identically.
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"notodo/internal/models"
)

// All disables the category or status filter.
const All = "All"

type Status string

const (
	StatusAll          Status = All
	StatusCompleted    Status = "Completed"
	StatusPending      Status = "Pending"
	StatusHighPriority Status = "High Priority"
)

type SortOrder string

const (
	SortNone     SortOrder = ""
	SortNewest   SortOrder = "Newest"
	SortOldest   SortOrder = "Oldest"
	SortAlpha    SortOrder = "A-Z"
	SortPriority SortOrder = "Priority"
)

// TaskQuery selects and orders tasks. Zero values mean "no filter, store order".
type TaskQuery struct {
	Search   string
	Status   Status
	Category string
	Sort     SortOrder
}

func (q TaskQuery) Validate() error {
	switch q.Status {
	case "", StatusAll, StatusCompleted, StatusPending, StatusHighPriority:
	default:
		return fmt.Errorf("unknown status filter %q", q.Status)
	}
	switch q.Sort {
	case SortNone, SortNewest, SortOldest, SortAlpha, SortPriority:
	default:
		return fmt.Errorf("unknown sort order %q", q.Sort)
	}
	return nil
}

// Match reports whether t passes the search, status and category filters.
func (q TaskQuery) Match(t models.Task) bool {
	if !containsFold(t.Title, q.Search) {
		return false
	}
	switch q.Status {
	case StatusCompleted:
		if !t.IsComplete {
			return false
		}
	case StatusPending:
		if t.IsComplete {
			return false
		}
	case StatusHighPriority:
		if t.Priority != models.PriorityHigh {
			return false
		}
	}
	return matchCategory(t.Category, q.Category)
}

// Apply filters then sorts. The input slice is not modified.
func (q TaskQuery) Apply(tasks []models.Task) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.Match(t) {
			out = append(out, t)
		}
	}

	switch q.Sort {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	case SortAlpha:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool { return c.CompareString(out[i].Title, out[j].Title) < 0 })
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Priority.Weight() > out[j].Priority.Weight() })
	}
	return out
}

type NoteQuery struct {
	Search   string
	Category string
}

// Match checks the search against title or content, and the category filter.
func (q NoteQuery) Match(n models.Note) bool {
	if !containsFold(n.Title, q.Search) && !containsFold(n.Content, q.Search) {
		return false
	}
	return matchCategory(n.Category, q.Category)
}

func (q NoteQuery) Apply(notes []models.Note) []models.Note {
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if q.Match(n) {
			out = append(out, n)
		}
	}
	return out
}

// IsOverdue reports whether an incomplete task was due before the start of
// the day containing now. now's location decides where the day starts.
func IsOverdue(t models.Task, now time.Time) bool {
	if t.DueDate == nil || t.IsComplete {
		return false
	}
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return t.DueDate.Before(startOfDay)
}

// TaskView is a task as rendered to clients, with the derived overdue flag.
type TaskView struct {
	models.Task
	IsOverdue bool `json:"isOverdue"`
}

func NewTaskView(t models.Task, now time.Time) TaskView {
	return TaskView{Task: t, IsOverdue: IsOverdue(t, now)}
}

// Dashboard is computed on demand and never stored.
type Dashboard struct {
	TotalTasks     int           `json:"totalTasks"`
	CompletedTasks int           `json:"completedTasks"`
	Progress       int           `json:"progress"`
	RecentTasks    []TaskView    `json:"recentTasks"`
	RecentNotes    []models.Note `json:"recentNotes"`
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func matchCategory(category, filter string) bool {
	if filter == "" || filter == All {
		return true
	}
	return models.CategoryOrDefault(category) == filter
}
