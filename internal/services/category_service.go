package services

import (
	"context"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/events"
	"fintrack/internal/models"
	"fintrack/internal/store"
)

// categoryService handles category-related business logic.
type categoryService struct {
	store store.RecordStore
	bus   *events.Bus
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(recordStore store.RecordStore, bus *events.Bus) CategoryServicer {
	return &categoryService{store: recordStore, bus: bus}
}

// ListCategories returns all categories owned by ownerID.
func (s *categoryService) ListCategories(ctx context.Context, ownerID string) ([]models.Category, error) {
	categories, err := s.store.ListCategories(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return categories, nil
}

// SaveCategory validates the input and inserts or replaces the category,
// publishing category-created or category-updated on success.
func (s *categoryService) SaveCategory(ctx context.Context, ownerID string, input CategoryInput) (*models.Category, error) {
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !input.Kind.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be income or expense")
	}
	if input.BudgetLimit < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget limit must not be negative")
	}

	category := &models.Category{
		Base:        models.Base{ID: input.ID},
		OwnerID:     ownerID,
		Name:        input.Name,
		Kind:        input.Kind,
		BudgetLimit: input.BudgetLimit,
	}

	isInsert := input.ID == ""
	saved, err := s.store.SaveCategory(ctx, category)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	if isInsert {
		s.bus.Publish(events.CategoryCreated, saved)
	} else {
		s.bus.Publish(events.CategoryUpdated, saved)
	}
	return saved, nil
}

// DeleteCategory removes the category, clearing the reference on every
// transaction of the same owner that pointed at it. Deleting a nonexistent
// ID is a no-op. Publishes category-deleted with the ID.
func (s *categoryService) DeleteCategory(ctx context.Context, ownerID, categoryID string) error {
	if err := s.store.DeleteCategory(ctx, ownerID, categoryID); err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	s.bus.Publish(events.CategoryDeleted, categoryID)
	return nil
}
