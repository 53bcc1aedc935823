package store

import (
	"context"
	"errors"

	"notodo/internal/models"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint (user email) is violated.
	ErrDuplicate = errors.New("duplicate record")
)

// Store defines the interface for all database operations.
// Lookups by id are not owner-scoped; callers compare the owner themselves.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Categories, newest first
	ListCategories(ctx context.Context, ownerID string) ([]models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	// Notes. ListNotes orders pinned first then by last update;
	// RecentNotes orders by last update only.
	ListNotes(ctx context.Context, ownerID string) ([]models.Note, error)
	RecentNotes(ctx context.Context, ownerID string, limit int) ([]models.Note, error)
	CreateNote(ctx context.Context, n *models.Note) error
	GetNote(ctx context.Context, id string) (*models.Note, error)
	UpdateNote(ctx context.Context, n *models.Note) error
	DeleteNote(ctx context.Context, id string) error

	// Tasks. ListTasks orders by creation, oldest first;
	// RecentTasks newest first.
	ListTasks(ctx context.Context, ownerID string) ([]models.Task, error)
	RecentTasks(ctx context.Context, ownerID string, limit int) ([]models.Task, error)
	CountTasks(ctx context.Context, ownerID string, completedOnly bool) (int, error)
	CreateTask(ctx context.Context, t *models.Task) error
	GetTask(ctx context.Context, id string) (*models.Task, error)
	UpdateTask(ctx context.Context, t *models.Task) error
	DeleteTask(ctx context.Context, id string) error

	Ping(ctx context.Context) error
	Close() error
}
