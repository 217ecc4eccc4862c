package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 45, 123, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), StartOfDay(now))
}

func TestStartOfMonth(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 45, 123, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(now))
}

func TestPreviousMonthRange(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	start, end := PreviousMonthRange(now)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), end)
}

func TestPreviousMonthRangeAcrossYear(t *testing.T) {
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	start, _ := PreviousMonthRange(now)
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestMonthGrowth(t *testing.T) {
	growth := MonthGrowth(d("150"), d("100"))
	assert.True(t, growth.Equal(d("50")), "got %s", growth)

	growth = MonthGrowth(d("50"), d("100"))
	assert.True(t, growth.Equal(d("-50")), "got %s", growth)

	// no sales last month never divides by zero
	assert.True(t, MonthGrowth(d("150"), decimal.Zero).IsZero())
	assert.True(t, MonthGrowth(d("150"), d("-10")).IsZero())
}

func TestMonthBucketLabels(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	labels := MonthBucketLabels(now)
	assert.Len(t, labels, 12)
	assert.Equal(t, "Apr", labels[0])
	assert.Equal(t, "Mar", labels[11])
}

func TestBucketByMonth(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	totals := []decimal.Decimal{d("100"), d("50"), d("25"), d("999")}
	createdAts := []time.Time{
		time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
		time.Date(2022, 3, 5, 10, 0, 0, 0, time.UTC), // outside the window
	}

	buckets := BucketByMonth(now, totals, createdAts)
	assert.Len(t, buckets, 12)

	mar := buckets[11]
	assert.Equal(t, "Mar", mar.Month)
	assert.True(t, mar.Sales.Equal(d("150")), "got %s", mar.Sales)
	assert.Equal(t, 2, mar.Invoices)

	jan := buckets[9]
	assert.Equal(t, "Jan", jan.Month)
	assert.True(t, jan.Sales.Equal(d("25")))
	assert.Equal(t, 1, jan.Invoices)

	// untouched months report zero, not null
	assert.True(t, buckets[0].Sales.IsZero())
	assert.Equal(t, 0, buckets[0].Invoices)
}
