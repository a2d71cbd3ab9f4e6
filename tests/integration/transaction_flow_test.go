package integration

import (
	"net/http"
	"testing"
)

func TestTransactionFlow(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "alice@example.com", "password123")

	t.Run("create_and_list_newest_first", func(t *testing.T) {
		app.createTransaction(t, token,
			`{"description":"salary","amount":500000,"kind":"income","currency":"USD","date":"2026-08-01T09:00:00Z"}`)
		app.createTransaction(t, token,
			`{"description":"coffee","amount":450,"kind":"expense","currency":"USD","date":"2026-08-20T08:30:00Z"}`)

		rec := app.request("GET", "/api/v1/transactions", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(data))
		}
		first := data[0].(map[string]interface{})
		if first["description"] != "coffee" {
			t.Errorf("expected newest transaction first, got %v", first["description"])
		}
	})

	t.Run("zero_amount_rejected", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/transactions",
			`{"description":"nothing","amount":0,"kind":"expense","currency":"USD"}`, token)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown_currency_rejected", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/transactions",
			`{"description":"moon","amount":100,"kind":"expense","currency":"DOGE"}`, token)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("omitted_currency_defaults", func(t *testing.T) {
		id := app.createTransaction(t, token,
			`{"description":"lunch","amount":1200,"kind":"expense"}`)

		rec := app.request("GET", "/api/v1/transactions", "", token)
		result := parseJSON(t, rec)
		for _, item := range result["data"].([]interface{}) {
			tx := item.(map[string]interface{})
			if tx["id"] == id && tx["currency"] != "USD" {
				t.Errorf("expected default currency USD, got %v", tx["currency"])
			}
		}
	})

	t.Run("kind_mismatch_rejected", func(t *testing.T) {
		catID := app.createCategory(t, token, "Salary", "income", 0)
		rec := app.request("POST", "/api/v1/transactions",
			`{"description":"groceries","amount":5000,"kind":"expense","currency":"USD","category_id":"`+catID+`"}`, token)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("foreign_category_rejected", func(t *testing.T) {
		otherToken, _, _ := app.registerUser(t, "mallory@example.com", "password123")
		foreignCat := app.createCategory(t, otherToken, "Private", "expense", 0)

		rec := app.request("POST", "/api/v1/transactions",
			`{"description":"sneaky","amount":100,"kind":"expense","currency":"USD","category_id":"`+foreignCat+`"}`, token)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("replace_and_delete", func(t *testing.T) {
		id := app.createTransaction(t, token,
			`{"description":"book","amount":2000,"kind":"expense","currency":"USD"}`)

		rec := app.request("PUT", "/api/v1/transactions/"+id,
			`{"description":"books","amount":3500,"kind":"expense","currency":"EUR"}`, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("replace failed: %d %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		tx := result["transaction"].(map[string]interface{})
		if tx["amount"].(float64) != 3500 || tx["currency"] != "EUR" {
			t.Errorf("expected replaced fields, got %+v", tx)
		}

		rec = app.request("DELETE", "/api/v1/transactions/"+id, "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
		}

		// Deleting again is a no-op, not an error.
		rec = app.request("DELETE", "/api/v1/transactions/"+id, "", token)
		if rec.Code != http.StatusOK {
			t.Errorf("expected idempotent delete, got %d", rec.Code)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/transactions?page=1&page_size=2", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if len(result["data"].([]interface{})) > 2 {
			t.Errorf("expected at most 2 items per page, got %d", len(result["data"].([]interface{})))
		}
		if result["page_size"].(float64) != 2 {
			t.Errorf("expected page_size 2, got %v", result["page_size"])
		}
	})
}
