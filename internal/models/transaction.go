package models

import "time"

// DefaultCurrency is assumed for records written before the currency column
// existed. Loads normalize an empty currency to this value.
const DefaultCurrency = "USD"

// Transaction represents a single income or expense record.
//
// Amount is in cents of Currency and is never summed across currencies
// without per-currency bucketing. CategoryID is a weak reference: deleting
// the category clears it rather than deleting the transaction.
type Transaction struct {
	Base
	OwnerID     string     `gorm:"type:uuid;not null;index" json:"owner_id"`
	Description string     `gorm:"not null" json:"description"`
	Amount      int64      `gorm:"type:bigint;not null" json:"amount"`
	Kind        RecordKind `gorm:"not null" json:"kind"`
	Currency    string     `gorm:"size:3;not null;default:USD" json:"currency"`
	CategoryID  *string    `gorm:"type:uuid" json:"category_id,omitempty"`
	Date        time.Time  `gorm:"not null;index" json:"date"`
}
