package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// PreviousMonthRange returns the inclusive bounds of the calendar month
// before t's: its first instant and the last instant before this month
// starts.
func PreviousMonthRange(t time.Time) (time.Time, time.Time) {
	startOfThisMonth := StartOfMonth(t)
	start := startOfThisMonth.AddDate(0, -1, 0)
	end := startOfThisMonth.Add(-time.Nanosecond)
	return start, end
}

// MonthWindowStart returns the first instant of the month `monthsBack`
// calendar months before t's month. MonthWindowStart(t, 11) opens the
// rolling 12-month analytics window.
func MonthWindowStart(t time.Time, monthsBack int) time.Time {
	return StartOfMonth(t).AddDate(0, -monthsBack, 0)
}

// MonthGrowth is the month-over-month growth percentage. Defined as zero
// when the previous month had no sales, so a first month of trading never
// divides by zero.
func MonthGrowth(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
}

// MonthlyBucket is one calendar month of invoice activity.
type MonthlyBucket struct {
	Month    string          `json:"month"`
	Sales    decimal.Decimal `json:"sales"`
	Invoices int             `json:"invoices"`
}

// MonthBucketLabels returns the short month names of the 12 calendar months
// ending with t's month, oldest first.
func MonthBucketLabels(t time.Time) []string {
	labels := make([]string, 12)
	for i := 0; i < 12; i++ {
		labels[i] = MonthWindowStart(t, 11-i).Format("Jan")
	}
	return labels
}

// BucketByMonth folds (total, createdAt) pairs into the 12-month buckets
// for t. Entries outside the window are dropped.
func BucketByMonth(t time.Time, totals []decimal.Decimal, createdAts []time.Time) []MonthlyBucket {
	labels := MonthBucketLabels(t)
	index := make(map[string]int, len(labels))
	buckets := make([]MonthlyBucket, len(labels))
	for i, label := range labels {
		index[label] = i
		buckets[i] = MonthlyBucket{Month: label, Sales: decimal.Zero}
	}

	windowStart := MonthWindowStart(t, 11)
	for i, createdAt := range createdAts {
		if createdAt.Before(windowStart) {
			continue
		}
		pos, ok := index[createdAt.Format("Jan")]
		if !ok {
			continue
		}
		buckets[pos].Sales = buckets[pos].Sales.Add(totals[i])
		buckets[pos].Invoices++
	}
	return buckets
}
