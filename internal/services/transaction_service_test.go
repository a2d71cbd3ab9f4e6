package services

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/events"
	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/testutil"
)

func setupTransactionService(t *testing.T) (TransactionServicer, CategoryServicer, *events.Bus) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	recordStore := store.NewRelationalStore(db)
	bus := events.NewBus()
	return NewTransactionService(recordStore, bus), NewCategoryService(recordStore, bus), bus
}

func TestSaveTransaction(t *testing.T) {
	t.Run("valid_insert", func(t *testing.T) {
		svc, _, _ := setupTransactionService(t)

		tx, err := svc.SaveTransaction(context.Background(), "owner-1", TransactionInput{
			Description: "Paycheck", Amount: 250000, Kind: models.KindIncome, Currency: "USD",
		})
		testutil.AssertNoError(t, err)

		if tx.ID == "" {
			t.Fatal("expected non-empty transaction ID")
		}
		if tx.Date.IsZero() {
			t.Error("expected date to default to now")
		}
	})

	t.Run("missing_description", func(t *testing.T) {
		svc, _, _ := setupTransactionService(t)

		_, err := svc.SaveTransaction(context.Background(), "owner-1", TransactionInput{
			Amount: 100, Kind: models.KindExpense, Currency: "USD",
		})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		svc, _, _ := setupTransactionService(t)

		for _, amount := range []int64{0, -50} {
			_, err := svc.SaveTransaction(context.Background(), "owner-1", TransactionInput{
				Description: "bad", Amount: amount, Kind: models.KindExpense, Currency: "USD",
			})
			testutil.AssertAppError(t, err, "VALIDATION_ERROR")
		}
	})

	t.Run("unknown_currency", func(t *testing.T) {
		svc, _, _ := setupTransactionService(t)

		_, err := svc.SaveTransaction(context.Background(), "owner-1", TransactionInput{
			Description: "bad", Amount: 100, Kind: models.KindExpense, Currency: "DOGE",
		})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("empty_currency_defaults", func(t *testing.T) {
		svc, _, _ := setupTransactionService(t)

		tx, err := svc.SaveTransaction(context.Background(), "owner-1", TransactionInput{
			Description: "legacy shape", Amount: 100, Kind: models.KindExpense,
		})
		testutil.AssertNoError(t, err)
		if tx.Currency != models.DefaultCurrency {
			t.Errorf("expected default currency %s, got %s", models.DefaultCurrency, tx.Currency)
		}
	})

	t.Run("category_must_exist_and_belong_to_owner", func(t *testing.T) {
		svc, catSvc, _ := setupTransactionService(t)
		ctx := context.Background()

		other, err := catSvc.SaveCategory(ctx, "owner-2", CategoryInput{Name: "Theirs", Kind: models.KindExpense})
		testutil.AssertNoError(t, err)

		_, err = svc.SaveTransaction(ctx, "owner-1", TransactionInput{
			Description: "lunch", Amount: 100, Kind: models.KindExpense,
			Currency: "USD", CategoryID: &other.ID,
		})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("kind_must_match_category_kind", func(t *testing.T) {
		svc, catSvc, _ := setupTransactionService(t)
		ctx := context.Background()

		salary, err := catSvc.SaveCategory(ctx, "owner-1", CategoryInput{Name: "Salary", Kind: models.KindIncome})
		testutil.AssertNoError(t, err)

		_, err = svc.SaveTransaction(ctx, "owner-1", TransactionInput{
			Description: "lunch", Amount: 100, Kind: models.KindExpense,
			Currency: "USD", CategoryID: &salary.ID,
		})
		testutil.AssertAppError(t, err, "KIND_MISMATCH")
	})

	t.Run("uncategorized_is_allowed", func(t *testing.T) {
		svc, _, _ := setupTransactionService(t)

		tx, err := svc.SaveTransaction(context.Background(), "owner-1", TransactionInput{
			Description: "misc", Amount: 100, Kind: models.KindExpense, Currency: "USD",
		})
		testutil.AssertNoError(t, err)
		if tx.CategoryID != nil {
			t.Errorf("expected nil category reference, got %v", *tx.CategoryID)
		}
	})

	t.Run("publishes_created_event", func(t *testing.T) {
		svc, _, bus := setupTransactionService(t)

		var created *models.Transaction
		bus.Subscribe(events.TransactionCreated, func(payload any) {
			created, _ = payload.(*models.Transaction)
		})

		tx, err := svc.SaveTransaction(context.Background(), "owner-1", TransactionInput{
			Description: "Paycheck", Amount: 250000, Kind: models.KindIncome, Currency: "USD",
		})
		testutil.AssertNoError(t, err)

		if created == nil || created.ID != tx.ID {
			t.Errorf("expected transaction-created event, got %+v", created)
		}
	})

	t.Run("update_keeps_user_set_date", func(t *testing.T) {
		svc, _, _ := setupTransactionService(t)
		ctx := context.Background()

		date := time.Date(2026, time.February, 14, 0, 0, 0, 0, time.Local)
		tx, err := svc.SaveTransaction(ctx, "owner-1", TransactionInput{
			Description: "dinner", Amount: 9000, Kind: models.KindExpense, Currency: "USD", Date: date,
		})
		testutil.AssertNoError(t, err)

		_, err = svc.SaveTransaction(ctx, "owner-1", TransactionInput{
			ID: tx.ID, Description: "dinner for two", Amount: 12000,
			Kind: models.KindExpense, Currency: "USD", Date: date,
		})
		testutil.AssertNoError(t, err)

		listed, err := svc.ListTransactions(ctx, "owner-1")
		testutil.AssertNoError(t, err)
		if len(listed) != 1 {
			t.Fatalf("expected one transaction, got %d", len(listed))
		}
		if !listed[0].Date.Equal(date) {
			t.Errorf("expected date %v preserved, got %v", date, listed[0].Date)
		}
		if listed[0].Amount != 12000 {
			t.Errorf("expected amount replaced, got %d", listed[0].Amount)
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("publishes_deleted_event", func(t *testing.T) {
		svc, _, bus := setupTransactionService(t)
		ctx := context.Background()

		tx, err := svc.SaveTransaction(ctx, "owner-1", TransactionInput{
			Description: "coffee", Amount: 450, Kind: models.KindExpense, Currency: "USD",
		})
		testutil.AssertNoError(t, err)

		var deletedID string
		bus.Subscribe(events.TransactionDeleted, func(payload any) {
			deletedID, _ = payload.(string)
		})

		testutil.AssertNoError(t, svc.DeleteTransaction(ctx, "owner-1", tx.ID))
		if deletedID != tx.ID {
			t.Errorf("expected deleted event with id %s, got %s", tx.ID, deletedID)
		}
	})

	t.Run("missing_id_is_noop", func(t *testing.T) {
		svc, _, _ := setupTransactionService(t)
		testutil.AssertNoError(t, svc.DeleteTransaction(context.Background(), "owner-1", "no-such-id"))
	})
}
