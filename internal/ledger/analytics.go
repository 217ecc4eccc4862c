package ledger

import (
	"context"
	"time"

	"github.com/ahmadhamza100/inventory-management-dashboard/internal/model"

	"github.com/shopspring/decimal"
)

// CardsData is the dashboard summary block.
type CardsData struct {
	MonthlySales   decimal.Decimal `json:"monthly_sales"`
	TodaySales     decimal.Decimal `json:"today_sales"`
	TotalCustomers int64           `json:"total_customers"`
	MonthlyGrowth  decimal.Decimal `json:"monthly_growth"`
	CashFlowToday  decimal.Decimal `json:"cash_flow_today"`
	CashFlowMonth  decimal.Decimal `json:"cash_flow_month"`
}

// StatusCount is one slice of the payment-status breakdown.
type StatusCount struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// ProductSales is one entry of the top-products ranking.
type ProductSales struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// Cards aggregates the dashboard summary for a tenant: sales sums for the
// current day and month, month-over-month growth against the previous
// calendar month, the live customer count, and net cash flow for the day
// and month windows.
func (s *Service) Cards(ctx context.Context, tenantID uint, now time.Time) (*CardsData, error) {
	startOfToday := StartOfDay(now)
	startOfMonth := StartOfMonth(now)
	prevStart, prevEnd := PreviousMonthRange(now)

	monthlySales, err := s.salesSince(ctx, tenantID, startOfMonth)
	if err != nil {
		return nil, err
	}
	todaySales, err := s.salesSince(ctx, tenantID, startOfToday)
	if err != nil {
		return nil, err
	}
	lastMonthSales, err := s.salesBetween(ctx, tenantID, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}

	var totalCustomers int64
	if err := s.db.WithContext(ctx).Model(&model.Customer{}).
		Where("tenant_id = ?", tenantID).
		Count(&totalCustomers).Error; err != nil {
		return nil, err
	}

	cashToday, err := s.netCashFlowSince(ctx, tenantID, startOfToday)
	if err != nil {
		return nil, err
	}
	cashMonth, err := s.netCashFlowSince(ctx, tenantID, startOfMonth)
	if err != nil {
		return nil, err
	}

	return &CardsData{
		MonthlySales:   monthlySales,
		TodaySales:     todaySales,
		TotalCustomers: totalCustomers,
		MonthlyGrowth:  MonthGrowth(monthlySales, lastMonthSales),
		CashFlowToday:  cashToday,
		CashFlowMonth:  cashMonth,
	}, nil
}

// MonthlyPerformance buckets the last 12 calendar months of invoices into
// sales totals and counts, oldest month first.
func (s *Service) MonthlyPerformance(ctx context.Context, tenantID uint, now time.Time) ([]MonthlyBucket, error) {
	windowStart := MonthWindowStart(now, 11)

	type row struct {
		Total     decimal.Decimal
		CreatedAt time.Time
	}
	var rows []row
	if err := s.db.WithContext(ctx).Model(&model.Invoice{}).
		Select("total, created_at").
		Where("tenant_id = ? AND created_at >= ?", tenantID, windowStart).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make([]decimal.Decimal, len(rows))
	createdAts := make([]time.Time, len(rows))
	for i, r := range rows {
		totals[i] = r.Total
		createdAts[i] = r.CreatedAt
	}
	return BucketByMonth(now, totals, createdAts), nil
}

// PaymentStatusBreakdown counts the tenant's non-deleted invoices per
// payment status in a single CASE-counting query. The SQL conditions
// mirror DerivePaymentStatus exactly, including the zero-total edge.
func (s *Service) PaymentStatusBreakdown(ctx context.Context, tenantID uint) ([]StatusCount, error) {
	type row struct {
		FullyPaid     int64
		PartiallyPaid int64
		Unpaid        int64
	}
	var r row
	err := s.db.WithContext(ctx).Model(&model.Invoice{}).
		Select("COUNT(CASE WHEN amount_paid >= total THEN 1 END) AS fully_paid, " +
			"COUNT(CASE WHEN amount_paid > 0 AND amount_paid < total THEN 1 END) AS partially_paid, " +
			"COUNT(CASE WHEN amount_paid = 0 AND total > 0 THEN 1 END) AS unpaid").
		Where("tenant_id = ?", tenantID).
		Scan(&r).Error
	if err != nil {
		return nil, err
	}

	return []StatusCount{
		{Name: "Fully Paid", Value: r.FullyPaid},
		{Name: "Partially Paid", Value: r.PartiallyPaid},
		{Name: "Unpaid", Value: r.Unpaid},
	}, nil
}

// TopProducts ranks the tenant's five best-selling products by snapshot
// revenue over non-deleted invoice items. Products with no sales are
// omitted. The product join skips the tombstone filter so deleted products
// still rank under their historical name.
func (s *Service) TopProducts(ctx context.Context, tenantID uint) ([]ProductSales, error) {
	type row struct {
		ProductName *string
		TotalSales  decimal.Decimal
	}
	var rows []row
	err := s.db.WithContext(ctx).Table("invoice_items").
		Select("products.name AS product_name, COALESCE(SUM(invoice_items.price * invoice_items.quantity), 0) AS total_sales").
		Joins("LEFT JOIN products ON products.id = invoice_items.product_id").
		Where("invoice_items.tenant_id = ? AND invoice_items.deleted_at IS NULL", tenantID).
		Group("invoice_items.product_id, products.name").
		Order("total_sales DESC").
		Limit(5).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]ProductSales, 0, len(rows))
	for _, r := range rows {
		if !r.TotalSales.IsPositive() {
			continue
		}
		name := "Unknown Product"
		if r.ProductName != nil {
			name = *r.ProductName
		}
		out = append(out, ProductSales{Name: name, Value: r.TotalSales})
	}
	return out, nil
}

func (s *Service) salesSince(ctx context.Context, tenantID uint, since time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := s.db.WithContext(ctx).Model(&model.Invoice{}).
		Select("COALESCE(SUM(total), 0)").
		Where("tenant_id = ? AND created_at >= ?", tenantID, since).
		Row()
	err := row.Scan(&total)
	return total, err
}

func (s *Service) salesBetween(ctx context.Context, tenantID uint, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := s.db.WithContext(ctx).Model(&model.Invoice{}).
		Select("COALESCE(SUM(total), 0)").
		Where("tenant_id = ? AND created_at >= ? AND created_at <= ?", tenantID, start, end).
		Row()
	err := row.Scan(&total)
	return total, err
}

func (s *Service) netCashFlowSince(ctx context.Context, tenantID uint, since time.Time) (decimal.Decimal, error) {
	var net decimal.Decimal
	row := s.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0)", model.TransactionCashIn).
		Where("tenant_id = ? AND date >= ?", tenantID, since).
		Row()
	err := row.Scan(&net)
	return net, err
}
