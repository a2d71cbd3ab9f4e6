package services

import (
	"fintrack/internal/events"
	"fintrack/internal/logger"
	"fintrack/internal/models"
)

// RegisterAuditListener subscribes a structured-log audit trail to every
// record mutation event on the bus. It returns a function that removes all
// of its registrations.
func RegisterAuditListener(bus *events.Bus) func() {
	log := logger.Get()

	logCategory := func(action string) events.Handler {
		return func(payload any) {
			cat, ok := payload.(*models.Category)
			if !ok {
				return
			}
			log.Infow("audit",
				"action", action,
				"category_id", cat.ID,
				"owner_id", cat.OwnerID,
				"name", cat.Name,
			)
		}
	}
	logTransaction := func(action string) events.Handler {
		return func(payload any) {
			tx, ok := payload.(*models.Transaction)
			if !ok {
				return
			}
			log.Infow("audit",
				"action", action,
				"transaction_id", tx.ID,
				"owner_id", tx.OwnerID,
				"amount", tx.Amount,
				"currency", tx.Currency,
			)
		}
	}
	logDeleted := func(action string) events.Handler {
		return func(payload any) {
			id, ok := payload.(string)
			if !ok {
				return
			}
			log.Infow("audit", "action", action, "id", id)
		}
	}

	unsubscribes := []func(){
		bus.Subscribe(events.CategoryCreated, logCategory("category_created")),
		bus.Subscribe(events.CategoryUpdated, logCategory("category_updated")),
		bus.Subscribe(events.CategoryDeleted, logDeleted("category_deleted")),
		bus.Subscribe(events.TransactionCreated, logTransaction("transaction_created")),
		bus.Subscribe(events.TransactionUpdated, logTransaction("transaction_updated")),
		bus.Subscribe(events.TransactionDeleted, logDeleted("transaction_deleted")),
	}

	return func() {
		for _, unsubscribe := range unsubscribes {
			unsubscribe()
		}
	}
}
