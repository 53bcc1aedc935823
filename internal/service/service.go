// Package service implements the ownership-scoped operations behind every
// notodo surface. Each operation takes the acting user's id and never touches
// another user's records.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"notodo/internal/auth"
	"notodo/internal/models"
	"notodo/internal/store"
)

// Analyzer answers questions about a user's notes.
type Analyzer interface {
	Ask(ctx context.Context, notes []models.Note, question string, history []models.ChatMessage) (string, error)
}

type Options struct {
	// Clock defaults to time.Now.
	Clock  func() time.Time
	Issuer *auth.Issuer
	Logger *slog.Logger
	// Assistant is optional; without it Notes.Ask reports unavailable.
	Assistant Analyzer
	// HashCost is the bcrypt cost, bcrypt.DefaultCost when zero.
	HashCost int
}

// Services groups the per-record-type services sharing one store.
type Services struct {
	Accounts   *AccountService
	Categories *CategoryService
	Notes      *NoteService
	Tasks      *TaskService
	Dashboard  *DashboardService
}

type base struct {
	store  store.Store
	clock  func() time.Time
	logger *slog.Logger
}

// now is UTC truncated to milliseconds so every backend stores it losslessly.
func (b base) now() time.Time {
	return b.clock().UTC().Truncate(time.Millisecond)
}

func newID() string {
	return uuid.NewString()
}

func New(s store.Store, opts Options) *Services {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Issuer == nil {
		opts.Issuer = auth.NewIssuer("", 24*time.Hour)
	}
	b := base{store: s, clock: opts.Clock, logger: opts.Logger.With("component", "service")}

	return &Services{
		Accounts:   &AccountService{base: b, issuer: opts.Issuer, hashCost: opts.HashCost},
		Categories: &CategoryService{base: b},
		Notes:      &NoteService{base: b, assistant: opts.Assistant},
		Tasks:      &TaskService{base: b},
		Dashboard:  &DashboardService{base: b},
	}
}
