package models

// RecordKind classifies categories and transactions as income or expense.
// A transaction may only reference a category of the same kind.
type RecordKind string

const (
	KindIncome  RecordKind = "income"
	KindExpense RecordKind = "expense"
)

// Valid reports whether k is one of the known kinds.
func (k RecordKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Category represents a budget category owned by a single user.
// BudgetLimit is a target in cents, not a write-time ceiling; zero means
// the category has no limit.
type Category struct {
	Base
	OwnerID     string     `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name        string     `gorm:"not null" json:"name"`
	Kind        RecordKind `gorm:"not null" json:"kind"`
	BudgetLimit int64      `gorm:"not null;default:0" json:"budget_limit"`
}
