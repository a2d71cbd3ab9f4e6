package services

import (
	"context"
	"time"

	"fintrack/internal/dashboard"
	"fintrack/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID string, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// CategoryInput holds the caller-supplied fields of a category save.
// An empty ID means insert; a non-empty ID means full replace.
type CategoryInput struct {
	ID          string
	Name        string
	Kind        models.RecordKind
	BudgetLimit int64
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	ListCategories(ctx context.Context, ownerID string) ([]models.Category, error)
	SaveCategory(ctx context.Context, ownerID string, input CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, ownerID, categoryID string) error
}

// TransactionInput holds the caller-supplied fields of a transaction save.
type TransactionInput struct {
	ID          string
	Description string
	Amount      int64
	Kind        models.RecordKind
	Currency    string
	CategoryID  *string
	Date        time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	ListTransactions(ctx context.Context, ownerID string) ([]models.Transaction, error)
	SaveTransaction(ctx context.Context, ownerID string, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID, transactionID string) error
}

// DashboardServicer computes aggregated dashboard data for a user.
type DashboardServicer interface {
	Summary(ctx context.Context, ownerID string) (*dashboard.Summary, error)
	Trend(ctx context.Context, ownerID, currency string, months int) ([]dashboard.MonthPoint, error)
}
