// Package store provides CRUD persistence for categories and transactions,
// scoped by owner. Two interchangeable backends satisfy the RecordStore
// contract: a remote relational store and a durable local key-value
// fallback. The backend is selected once at startup and never switched
// mid-session.
package store

import (
	"context"

	"fintrack/internal/models"
)

// RecordStore persists Category and Transaction records for their owners.
//
// Save operations insert when the record ID is empty (assigning a new ID and
// creation timestamp) and otherwise fully replace the stored record with the
// same ID, last write wins. Replacing or deleting a missing ID is a no-op,
// not an error. Deleting a category clears category_id on every transaction
// of the same owner that referenced it.
type RecordStore interface {
	ListCategories(ctx context.Context, ownerID string) ([]models.Category, error)
	SaveCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, ownerID, id string) error

	// ListTransactions returns the owner's transactions ordered by date
	// descending.
	ListTransactions(ctx context.Context, ownerID string) ([]models.Transaction, error)
	SaveTransaction(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID, id string) error
}
