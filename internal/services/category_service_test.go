package services

import (
	"context"
	"testing"

	"fintrack/internal/events"
	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/testutil"
)

func setupCategoryService(t *testing.T) (CategoryServicer, store.RecordStore, *events.Bus) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	recordStore := store.NewRelationalStore(db)
	bus := events.NewBus()
	return NewCategoryService(recordStore, bus), recordStore, bus
}

func TestSaveCategory(t *testing.T) {
	t.Run("valid_insert", func(t *testing.T) {
		svc, _, _ := setupCategoryService(t)

		cat, err := svc.SaveCategory(context.Background(), "owner-1", CategoryInput{
			Name: "Groceries", Kind: models.KindExpense, BudgetLimit: 40000,
		})
		testutil.AssertNoError(t, err)

		if cat.ID == "" {
			t.Fatal("expected non-empty category ID")
		}
		if cat.Name != "Groceries" || cat.Kind != models.KindExpense || cat.BudgetLimit != 40000 {
			t.Errorf("unexpected category: %+v", cat)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		svc, _, _ := setupCategoryService(t)

		_, err := svc.SaveCategory(context.Background(), "owner-1", CategoryInput{
			Kind: models.KindExpense,
		})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("invalid_kind", func(t *testing.T) {
		svc, _, _ := setupCategoryService(t)

		_, err := svc.SaveCategory(context.Background(), "owner-1", CategoryInput{
			Name: "Stuff", Kind: "transfer",
		})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("negative_budget_limit", func(t *testing.T) {
		svc, _, _ := setupCategoryService(t)

		_, err := svc.SaveCategory(context.Background(), "owner-1", CategoryInput{
			Name: "Stuff", Kind: models.KindExpense, BudgetLimit: -1,
		})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("publishes_created_event", func(t *testing.T) {
		svc, _, bus := setupCategoryService(t)

		var created *models.Category
		bus.Subscribe(events.CategoryCreated, func(payload any) {
			created, _ = payload.(*models.Category)
		})

		cat, err := svc.SaveCategory(context.Background(), "owner-1", CategoryInput{
			Name: "Salary", Kind: models.KindIncome,
		})
		testutil.AssertNoError(t, err)

		if created == nil || created.ID != cat.ID {
			t.Errorf("expected category-created event with saved category, got %+v", created)
		}
	})

	t.Run("update_publishes_updated_event", func(t *testing.T) {
		svc, _, bus := setupCategoryService(t)
		ctx := context.Background()

		cat, err := svc.SaveCategory(ctx, "owner-1", CategoryInput{
			Name: "Salary", Kind: models.KindIncome,
		})
		testutil.AssertNoError(t, err)

		var updated *models.Category
		bus.Subscribe(events.CategoryUpdated, func(payload any) {
			updated, _ = payload.(*models.Category)
		})

		_, err = svc.SaveCategory(ctx, "owner-1", CategoryInput{
			ID: cat.ID, Name: "Wages", Kind: models.KindIncome,
		})
		testutil.AssertNoError(t, err)

		if updated == nil || updated.Name != "Wages" {
			t.Errorf("expected category-updated event, got %+v", updated)
		}
	})
}

func TestListCategories(t *testing.T) {
	t.Run("owner_scoped", func(t *testing.T) {
		svc, _, _ := setupCategoryService(t)
		ctx := context.Background()

		_, err := svc.SaveCategory(ctx, "owner-1", CategoryInput{Name: "A", Kind: models.KindExpense})
		testutil.AssertNoError(t, err)
		_, err = svc.SaveCategory(ctx, "owner-1", CategoryInput{Name: "B", Kind: models.KindIncome})
		testutil.AssertNoError(t, err)
		_, err = svc.SaveCategory(ctx, "owner-2", CategoryInput{Name: "C", Kind: models.KindExpense})
		testutil.AssertNoError(t, err)

		categories, err := svc.ListCategories(ctx, "owner-1")
		testutil.AssertNoError(t, err)
		if len(categories) != 2 {
			t.Errorf("expected 2 categories for owner-1, got %d", len(categories))
		}
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("publishes_deleted_event_with_id", func(t *testing.T) {
		svc, _, bus := setupCategoryService(t)
		ctx := context.Background()

		cat, err := svc.SaveCategory(ctx, "owner-1", CategoryInput{Name: "Dining", Kind: models.KindExpense})
		testutil.AssertNoError(t, err)

		var deletedID string
		bus.Subscribe(events.CategoryDeleted, func(payload any) {
			deletedID, _ = payload.(string)
		})

		testutil.AssertNoError(t, svc.DeleteCategory(ctx, "owner-1", cat.ID))
		if deletedID != cat.ID {
			t.Errorf("expected deleted event with id %s, got %s", cat.ID, deletedID)
		}

		categories, err := svc.ListCategories(ctx, "owner-1")
		testutil.AssertNoError(t, err)
		if len(categories) != 0 {
			t.Errorf("expected no categories, got %d", len(categories))
		}
	})

	t.Run("missing_id_is_noop", func(t *testing.T) {
		svc, _, _ := setupCategoryService(t)
		testutil.AssertNoError(t, svc.DeleteCategory(context.Background(), "owner-1", "no-such-id"))
	})
}
