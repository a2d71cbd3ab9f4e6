package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fintrack/internal/models"
)

// relationalStore implements RecordStore over a relational database through
// GORM. In production this is PostgreSQL; tests run it against in-memory
// SQLite. Every statement carries an owner_id predicate, matching the
// row-level scoping enforced server-side.
type relationalStore struct {
	db *gorm.DB
}

// NewRelationalStore creates a RecordStore backed by the given database.
func NewRelationalStore(db *gorm.DB) RecordStore {
	return &relationalStore{db: db}
}

func (s *relationalStore) ListCategories(ctx context.Context, ownerID string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *relationalStore) SaveCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.ID == "" {
		if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
			return nil, fmt.Errorf("insert category: %w", err)
		}
		return category, nil
	}

	// Full-record replace, last write wins. A missing ID is a no-op.
	res := s.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ? AND owner_id = ?", category.ID, category.OwnerID).
		Select("*").
		Omit("id", "owner_id", "created_at").
		Updates(category)
	if res.Error != nil {
		return nil, fmt.Errorf("update category: %w", res.Error)
	}
	return category, nil
}

func (s *relationalStore) DeleteCategory(ctx context.Context, ownerID, id string) error {
	// Clear the weak references first, then remove the category. These are
	// two separate writes: a crash in between can leave a dangling
	// reference.
	if err := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("owner_id = ? AND category_id = ?", ownerID, id).
		Update("category_id", nil).Error; err != nil {
		return fmt.Errorf("clear category references: %w", err)
	}

	if err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.Category{}).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *relationalStore) ListTransactions(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	for i := range transactions {
		if transactions[i].Currency == "" {
			transactions[i].Currency = models.DefaultCurrency
		}
	}
	return transactions, nil
}

func (s *relationalStore) SaveTransaction(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	if transaction.Currency == "" {
		transaction.Currency = models.DefaultCurrency
	}

	if transaction.ID == "" {
		if transaction.Date.IsZero() {
			transaction.Date = time.Now()
		}
		if err := s.db.WithContext(ctx).Create(transaction).Error; err != nil {
			return nil, fmt.Errorf("insert transaction: %w", err)
		}
		return transaction, nil
	}

	res := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND owner_id = ?", transaction.ID, transaction.OwnerID).
		Select("*").
		Omit("id", "owner_id", "created_at").
		Updates(transaction)
	if res.Error != nil {
		return nil, fmt.Errorf("update transaction: %w", res.Error)
	}
	return transaction, nil
}

func (s *relationalStore) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	if err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.Transaction{}).Error; err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}
