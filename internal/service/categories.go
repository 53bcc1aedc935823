package service

import (
	"context"
	"strings"

	"notodo/internal/models"
)

type CategoryInput struct {
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color" validate:"required,palette"`
}

type CategoryService struct {
	base
}

// authorize rejects a record owned by someone other than userID.
func authorize(op, what, userID, ownerID string) error {
	if ownerID != userID {
		return authError(op, "not authorized to access this "+what)
	}
	return nil
}

// List returns the user's categories, newest first.
func (s *CategoryService) List(ctx context.Context, userID string) ([]models.Category, error) {
	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, storeError("categories.List", "category", err)
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, userID string, in CategoryInput) (models.Category, error) {
	const op = "categories.Create"

	in.Name = strings.TrimSpace(in.Name)
	if err := check(op, in); err != nil {
		return models.Category{}, err
	}

	c := models.Category{
		ID:        newID(),
		OwnerID:   userID,
		Name:      in.Name,
		Color:     in.Color,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateCategory(ctx, &c); err != nil {
		return models.Category{}, storeError(op, "category", err)
	}
	return c, nil
}

// Delete removes a category. Tasks and notes filed under its name keep the label.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	const op = "categories.Delete"

	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return storeError(op, "category", err)
	}
	if err := authorize(op, "category", userID, c.OwnerID); err != nil {
		return err
	}
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return storeError(op, "category", err)
	}
	return nil
}
