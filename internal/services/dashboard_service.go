package services

import (
	"context"

	"fintrack/internal/dashboard"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/store"
)

// dashboardService fetches record snapshots and runs the aggregation over
// them. The aggregation itself never fails; a transaction fetch failure is
// degraded to an empty list so the dashboard still renders.
type dashboardService struct {
	store store.RecordStore
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(recordStore store.RecordStore) DashboardServicer {
	return &dashboardService{store: recordStore}
}

// Summary computes the dashboard summary for ownerID.
func (s *dashboardService) Summary(ctx context.Context, ownerID string) (*dashboard.Summary, error) {
	categories, err := s.store.ListCategories(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	transactions := s.transactionsOrEmpty(ctx, ownerID)

	summary := dashboard.Compute(categories, transactions)
	return &summary, nil
}

// Trend computes the monthly income/expense trend for ownerID in the given
// currency.
func (s *dashboardService) Trend(ctx context.Context, ownerID, currency string, months int) ([]dashboard.MonthPoint, error) {
	if currency == "" {
		currency = models.DefaultCurrency
	}
	transactions := s.transactionsOrEmpty(ctx, ownerID)
	return dashboard.MonthlyTrend(transactions, currency, months), nil
}

// transactionsOrEmpty fetches the owner's transactions, degrading a fetch
// failure to an empty snapshot rather than aborting the aggregation pass.
func (s *dashboardService) transactionsOrEmpty(ctx context.Context, ownerID string) []models.Transaction {
	transactions, err := s.store.ListTransactions(ctx, ownerID)
	if err != nil {
		logger.Get().Warnw("transaction fetch failed, aggregating over empty snapshot",
			"owner_id", ownerID,
			"error", err,
		)
		return []models.Transaction{}
	}
	return transactions
}
