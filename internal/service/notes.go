package service

import (
	"context"
	"strings"

	"notodo/internal/models"
	"notodo/internal/query"
)

type NoteInput struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category"`
	IsPinned bool   `json:"isPinned"`
}

// NotePatch holds the fields of a partial update. Nil fields are left alone.
type NotePatch struct {
	Title    *string `json:"title" validate:"omitempty,max=200"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
	IsPinned *bool   `json:"isPinned"`
}

type AskInput struct {
	Question string               `json:"question" validate:"required"`
	History  []models.ChatMessage `json:"history"`
}

type NoteService struct {
	base
	assistant Analyzer
}

// List returns the user's notes matching q, pinned first then most recently updated.
func (s *NoteService) List(ctx context.Context, userID string, q query.NoteQuery) ([]models.Note, error) {
	notes, err := s.store.ListNotes(ctx, userID)
	if err != nil {
		return nil, storeError("notes.List", "note", err)
	}
	return q.Apply(notes), nil
}

func (s *NoteService) Get(ctx context.Context, userID, id string) (models.Note, error) {
	n, err := s.owned(ctx, "notes.Get", userID, id)
	if err != nil {
		return models.Note{}, err
	}
	return *n, nil
}

func (s *NoteService) Create(ctx context.Context, userID string, in NoteInput) (models.Note, error) {
	const op = "notes.Create"

	in.Title = strings.TrimSpace(in.Title)
	if strings.TrimSpace(in.Content) == "" {
		in.Content = ""
	}
	if err := check(op, in); err != nil {
		return models.Note{}, err
	}

	now := s.now()
	n := models.Note{
		ID:        newID(),
		OwnerID:   userID,
		Title:     in.Title,
		Content:   in.Content,
		Category:  models.CategoryOrDefault(in.Category),
		IsPinned:  in.IsPinned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateNote(ctx, &n); err != nil {
		return models.Note{}, storeError(op, "note", err)
	}
	return n, nil
}

// Update merges the non-nil fields of p into the note and refreshes updatedAt.
func (s *NoteService) Update(ctx context.Context, userID, id string, p NotePatch) (models.Note, error) {
	const op = "notes.Update"

	n, err := s.owned(ctx, op, userID, id)
	if err != nil {
		return models.Note{}, err
	}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return models.Note{}, validationError(op, "title cannot be empty")
		}
		p.Title = &title
	}
	if err := check(op, p); err != nil {
		return models.Note{}, err
	}
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		if strings.TrimSpace(*p.Content) == "" {
			return models.Note{}, validationError(op, "content cannot be empty")
		}
		n.Content = *p.Content
	}
	if p.Category != nil {
		n.Category = models.CategoryOrDefault(*p.Category)
	}
	if p.IsPinned != nil {
		n.IsPinned = *p.IsPinned
	}
	n.UpdatedAt = s.now()

	if err := s.store.UpdateNote(ctx, n); err != nil {
		return models.Note{}, storeError(op, "note", err)
	}
	return *n, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, id string) error {
	const op = "notes.Delete"

	if _, err := s.owned(ctx, op, userID, id); err != nil {
		return err
	}
	if err := s.store.DeleteNote(ctx, id); err != nil {
		return storeError(op, "note", err)
	}
	return nil
}

// Ask answers a question about the user's notes through the configured assistant.
func (s *NoteService) Ask(ctx context.Context, userID string, in AskInput) (string, error) {
	const op = "notes.Ask"

	if s.assistant == nil {
		return "", &Error{Kind: KindUnavailable, Op: op, Msg: "notes assistant is not configured"}
	}
	in.Question = strings.TrimSpace(in.Question)
	if err := check(op, in); err != nil {
		return "", err
	}

	notes, err := s.store.ListNotes(ctx, userID)
	if err != nil {
		return "", storeError(op, "note", err)
	}
	answer, err := s.assistant.Ask(ctx, notes, in.Question, in.History)
	if err != nil {
		return "", &Error{Kind: KindUnavailable, Op: op, Msg: "notes assistant failed", Err: err}
	}
	return answer, nil
}

func (s *NoteService) owned(ctx context.Context, op, userID, id string) (*models.Note, error) {
	n, err := s.store.GetNote(ctx, id)
	if err != nil {
		return nil, storeError(op, "note", err)
	}
	if err := authorize(op, "note", userID, n.OwnerID); err != nil {
		return nil, err
	}
	return n, nil
}
