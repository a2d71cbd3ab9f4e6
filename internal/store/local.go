package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fintrack/internal/models"
	"fintrack/internal/uuid"
)

// Namespace keys for the two serialized collections.
const (
	nsCategories   = "fintrack/categories"
	nsTransactions = "fintrack/transactions"
)

// kvEntry is one namespaced collection serialized as a JSON array.
type kvEntry struct {
	Key   string `gorm:"primaryKey"`
	Value []byte `gorm:"not null"`
}

func (kvEntry) TableName() string { return "kv_entries" }

// localStore implements RecordStore over a durable key-value table in a
// local SQLite file. It is the developer/demo fallback used when no remote
// database credentials are configured. Unlike the relational backend, owner
// scoping, ordering, ID assignment, and the category-delete cascade all
// happen in application code.
type localStore struct {
	mu sync.Mutex
	db *gorm.DB
}

// NewLocalStore opens (or creates) the key-value store at path.
func NewLocalStore(path string) (RecordStore, func() error, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("open local store: %w", err)
	}
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, nil, fmt.Errorf("migrate local store: %w", err)
	}

	cleanup := func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return &localStore{db: db}, cleanup, nil
}

func (s *localStore) ListCategories(ctx context.Context, ownerID string) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := loadCollection[models.Category](ctx, s.db, nsCategories)
	if err != nil {
		return nil, err
	}

	owned := make([]models.Category, 0)
	for _, cat := range all {
		if cat.OwnerID == ownerID {
			owned = append(owned, cat)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return owned, nil
}

func (s *localStore) SaveCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := loadCollection[models.Category](ctx, s.db, nsCategories)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if category.ID == "" {
		category.ID = uuid.New()
		category.CreatedAt = now
		category.UpdatedAt = now
		all = append(all, *category)
	} else {
		replaced := false
		for i, existing := range all {
			if existing.ID == category.ID && existing.OwnerID == category.OwnerID {
				category.CreatedAt = existing.CreatedAt
				category.UpdatedAt = now
				all[i] = *category
				replaced = true
				break
			}
		}
		// Replacing a missing ID is a no-op.
		if !replaced {
			return category, nil
		}
	}

	if err := storeCollection(ctx, s.db, nsCategories, all); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *localStore) DeleteCategory(ctx context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Cascade-clear the weak references first. Two separate writes, same
	// consistency gap as the relational backend.
	transactions, err := loadCollection[models.Transaction](ctx, s.db, nsTransactions)
	if err != nil {
		return err
	}
	cleared := false
	for i := range transactions {
		if transactions[i].OwnerID == ownerID &&
			transactions[i].CategoryID != nil && *transactions[i].CategoryID == id {
			transactions[i].CategoryID = nil
			cleared = true
		}
	}
	if cleared {
		if err := storeCollection(ctx, s.db, nsTransactions, transactions); err != nil {
			return err
		}
	}

	categories, err := loadCollection[models.Category](ctx, s.db, nsCategories)
	if err != nil {
		return err
	}
	kept := categories[:0]
	for _, cat := range categories {
		if cat.ID == id && cat.OwnerID == ownerID {
			continue
		}
		kept = append(kept, cat)
	}
	return storeCollection(ctx, s.db, nsCategories, kept)
}

func (s *localStore) ListTransactions(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := loadCollection[models.Transaction](ctx, s.db, nsTransactions)
	if err != nil {
		return nil, err
	}

	owned := make([]models.Transaction, 0)
	for _, tx := range all {
		if tx.OwnerID != ownerID {
			continue
		}
		if tx.Currency == "" {
			// Records written before the currency field existed.
			tx.Currency = models.DefaultCurrency
		}
		owned = append(owned, tx)
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].Date.After(owned[j].Date)
	})
	return owned, nil
}

func (s *localStore) SaveTransaction(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := loadCollection[models.Transaction](ctx, s.db, nsTransactions)
	if err != nil {
		return nil, err
	}

	if transaction.Currency == "" {
		transaction.Currency = models.DefaultCurrency
	}

	now := time.Now()
	if transaction.ID == "" {
		transaction.ID = uuid.New()
		transaction.CreatedAt = now
		transaction.UpdatedAt = now
		if transaction.Date.IsZero() {
			transaction.Date = now
		}
		all = append(all, *transaction)
	} else {
		replaced := false
		for i, existing := range all {
			if existing.ID == transaction.ID && existing.OwnerID == transaction.OwnerID {
				transaction.CreatedAt = existing.CreatedAt
				transaction.UpdatedAt = now
				all[i] = *transaction
				replaced = true
				break
			}
		}
		if !replaced {
			return transaction, nil
		}
	}

	if err := storeCollection(ctx, s.db, nsTransactions, all); err != nil {
		return nil, err
	}
	return transaction, nil
}

func (s *localStore) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := loadCollection[models.Transaction](ctx, s.db, nsTransactions)
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, tx := range all {
		if tx.ID == id && tx.OwnerID == ownerID {
			continue
		}
		kept = append(kept, tx)
	}
	return storeCollection(ctx, s.db, nsTransactions, kept)
}

// loadCollection reads and decodes the JSON array stored under key.
// A missing key yields an empty collection.
func loadCollection[T any](ctx context.Context, db *gorm.DB, key string) ([]T, error) {
	var entry kvEntry
	if err := db.WithContext(ctx).First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	var records []T
	if err := json.Unmarshal(entry.Value, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return records, nil
}

// storeCollection encodes records as a JSON array and upserts it under key.
func storeCollection[T any](ctx context.Context, db *gorm.DB, key string, records []T) error {
	value, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	entry := kvEntry{Key: key, Value: value}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entry).Error; err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}
