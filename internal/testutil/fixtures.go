package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    fmt.Sprintf("user%d@test.com", nextID()),
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category of the given kind with no budget limit.
func CreateTestCategory(t *testing.T, db *gorm.DB, ownerID string, kind models.RecordKind) *models.Category {
	t.Helper()
	return CreateTestCategoryWithLimit(t, db, ownerID, kind, 0)
}

// CreateTestCategoryWithLimit creates a category with the given budget limit (in cents).
func CreateTestCategoryWithLimit(t *testing.T, db *gorm.DB, ownerID string, kind models.RecordKind, limit int64) *models.Category {
	t.Helper()

	category := &models.Category{
		OwnerID:     ownerID,
		Name:        fmt.Sprintf("Test Category %d", nextID()),
		Kind:        kind,
		BudgetLimit: limit,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction of the given kind and amount (in cents).
func CreateTestTransaction(t *testing.T, db *gorm.DB, ownerID string, kind models.RecordKind, amount int64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		OwnerID:     ownerID,
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Amount:      amount,
		Kind:        kind,
		Currency:    models.DefaultCurrency,
		Date:        time.Now(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
