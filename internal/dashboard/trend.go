package dashboard

import (
	"time"

	"fintrack/internal/models"
)

// defaultTrendMonths is the trend window used when the caller does not
// specify one.
const defaultTrendMonths = 6

// MonthPoint holds income and expense sums for one calendar month.
type MonthPoint struct {
	Month   time.Time `json:"month"`
	Label   string    `json:"label"`
	Income  int64     `json:"income"`
	Expense int64     `json:"expense"`
}

// MonthlyTrend buckets transactions of the given currency into the trailing
// monthCount calendar months ending at the current month, oldest first.
// The result always has exactly monthCount entries; months without matching
// transactions carry zero sums. Bucketing uses the (year, month) of the
// transaction date in the local time zone.
func MonthlyTrend(transactions []models.Transaction, currency string, monthCount int) []MonthPoint {
	if monthCount <= 0 {
		monthCount = defaultTrendMonths
	}
	return monthlyTrendAt(transactions, currency, monthCount, time.Now())
}

// monthlyTrendAt is the testable core of MonthlyTrend with an explicit
// reference time.
func monthlyTrendAt(transactions []models.Transaction, currency string, monthCount int, now time.Time) []MonthPoint {
	points := make([]MonthPoint, monthCount)
	index := make(map[monthKey]int, monthCount)

	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < monthCount; i++ {
		month := current.AddDate(0, i-(monthCount-1), 0)
		points[i] = MonthPoint{
			Month: month,
			Label: month.Format("Jan 2006"),
		}
		index[monthKey{month.Year(), month.Month()}] = i
	}

	for _, tx := range transactions {
		if tx.Currency != currency {
			continue
		}
		i, ok := index[monthKey{tx.Date.Year(), tx.Date.Month()}]
		if !ok {
			continue
		}
		switch tx.Kind {
		case models.KindIncome:
			points[i].Income += tx.Amount
		case models.KindExpense:
			points[i].Expense += tx.Amount
		}
	}

	return points
}

type monthKey struct {
	year  int
	month time.Month
}
