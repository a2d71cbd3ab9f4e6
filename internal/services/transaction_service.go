package services

import (
	"context"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/events"
	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/validator"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	store store.RecordStore
	bus   *events.Bus
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(recordStore store.RecordStore, bus *events.Bus) TransactionServicer {
	return &transactionService{store: recordStore, bus: bus}
}

// ListTransactions returns all transactions owned by ownerID, most recent first.
func (s *transactionService) ListTransactions(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	transactions, err := s.store.ListTransactions(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return transactions, nil
}

// SaveTransaction validates the input and inserts or replaces the
// transaction, publishing transaction-created or transaction-updated on
// success. Amount positivity is enforced here, not in the store: the store
// accepts any numeric amount.
func (s *transactionService) SaveTransaction(ctx context.Context, ownerID string, input TransactionInput) (*models.Transaction, error) {
	if input.Description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if input.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !input.Kind.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be income or expense")
	}
	if input.Currency != "" && !validator.IsCurrency(input.Currency) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown currency code")
	}

	if input.CategoryID != nil && *input.CategoryID != "" {
		if err := s.checkCategory(ctx, ownerID, *input.CategoryID, input.Kind); err != nil {
			return nil, err
		}
	} else {
		input.CategoryID = nil
	}

	transaction := &models.Transaction{
		Base:        models.Base{ID: input.ID},
		OwnerID:     ownerID,
		Description: input.Description,
		Amount:      input.Amount,
		Kind:        input.Kind,
		Currency:    input.Currency,
		CategoryID:  input.CategoryID,
		Date:        input.Date,
	}

	isInsert := input.ID == ""
	saved, err := s.store.SaveTransaction(ctx, transaction)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	if isInsert {
		s.bus.Publish(events.TransactionCreated, saved)
	} else {
		s.bus.Publish(events.TransactionUpdated, saved)
	}
	return saved, nil
}

// checkCategory verifies that the referenced category exists, belongs to the
// owner, and has the same kind as the transaction.
func (s *transactionService) checkCategory(ctx context.Context, ownerID, categoryID string, kind models.RecordKind) error {
	categories, err := s.store.ListCategories(ctx, ownerID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	for _, cat := range categories {
		if cat.ID == categoryID {
			if cat.Kind != kind {
				return apperrors.ErrKindMismatch
			}
			return nil
		}
	}
	return apperrors.ErrCategoryNotFound
}

// DeleteTransaction removes the transaction. Deleting a nonexistent ID is a
// no-op. Publishes transaction-deleted with the ID.
func (s *transactionService) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	if err := s.store.DeleteTransaction(ctx, ownerID, transactionID); err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	s.bus.Publish(events.TransactionDeleted, transactionID)
	return nil
}
