package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/ahmadhamza100/inventory-management-dashboard/internal/events"
	"github.com/ahmadhamza100/inventory-management-dashboard/internal/model"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/database"
	"github.com/ahmadhamza100/inventory-management-dashboard/prometheus"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrCustomerNotFound means the customer does not exist, is deleted, or
	// belongs to another tenant. Callers must not distinguish those cases.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrInvoiceNotFound is the same for invoices.
	ErrInvoiceNotFound = errors.New("invoice not found")
)

// How often a create retries when a concurrent create for the same tenant
// claims the invoice number first.
const maxNumberRetries = 3

// Service keeps invoice rows, item snapshots, and product stock mutually
// consistent. Every mutating operation runs in a single transaction.
type Service struct {
	db        *gorm.DB
	publisher *events.Publisher
}

// NewService builds a ledger over the given store. publisher may be nil.
func NewService(db *gorm.DB, publisher *events.Publisher) *Service {
	return &Service{db: db, publisher: publisher}
}

// CreateInvoice validates the input, assigns the tenant's next invoice
// number, writes the invoice and its item snapshots, and decrements product
// stock in one bulk statement. The whole operation is one transaction; the
// (tenant_id, number) unique index plus retry serializes concurrent number
// generation. Stock is not checked against availability and may go
// negative.
func (s *Service) CreateInvoice(ctx context.Context, tenantID uint, in InvoiceInput) (*model.Invoice, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	total := InvoiceTotal(in.Items)

	var invoice model.Invoice
	for attempt := 0; ; attempt++ {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := checkCustomer(tx, tenantID, in.CustomerID); err != nil {
				return err
			}

			// Include soft-deleted invoices so their numbers are never reused.
			var numbers []string
			if err := tx.Unscoped().Model(&model.Invoice{}).
				Where("tenant_id = ?", tenantID).
				Pluck("number", &numbers).Error; err != nil {
				return err
			}

			invoice = model.Invoice{
				TenantID:   tenantID,
				Number:     NextInvoiceNumber(numbers),
				CustomerID: in.CustomerID,
				Total:      total,
				AmountPaid: in.AmountPaid,
			}
			if err := tx.Create(&invoice).Error; err != nil {
				return err
			}

			if err := tx.Create(itemSnapshots(tenantID, invoice.ID, in.Items)).Error; err != nil {
				return err
			}

			return applyAdjustments(tx, tenantID, AdjustmentsForItems(in.Items, -1))
		})
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < maxNumberRetries {
			prometheus.InvoiceNumberConflictsCounter.Inc()
			continue
		}
		return nil, err
	}

	s.publisher.PublishInvoice(ctx, events.EventInvoiceCreated, tenantID, invoicePayload(&invoice))
	return &invoice, nil
}

// UpdateInvoice wholesale-replaces an invoice's items: restore stock from
// the old items, rewrite the invoice row, delete and reinsert the item
// rows, then apply the new quantities. Restoring before applying makes a
// product in both item sets net to oldQuantity - newQuantity without any
// per-product diffing. One transaction, so a mid-sequence failure leaves
// nothing half-applied.
func (s *Service) UpdateInvoice(ctx context.Context, tenantID, invoiceID uint, in InvoiceInput) (*model.Invoice, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var invoice model.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(database.TenantScope(tenantID)).
			First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}

		if err := checkCustomer(tx, tenantID, in.CustomerID); err != nil {
			return err
		}

		var oldItems []model.InvoiceItem
		if err := tx.Scopes(database.TenantScope(tenantID)).
			Where("invoice_id = ?", invoice.ID).
			Find(&oldItems).Error; err != nil {
			return err
		}

		// Phase 1: give the old quantities back.
		if err := applyAdjustments(tx, tenantID, AdjustmentsForStoredItems(oldItems, +1)); err != nil {
			return err
		}

		invoice.CustomerID = in.CustomerID
		invoice.Total = InvoiceTotal(in.Items)
		invoice.AmountPaid = in.AmountPaid
		if err := tx.Save(&invoice).Error; err != nil {
			return err
		}

		// Items are replaced, not diffed: drop the old rows and reinsert.
		if err := tx.Unscoped().
			Where("tenant_id = ? AND invoice_id = ?", tenantID, invoice.ID).
			Delete(&model.InvoiceItem{}).Error; err != nil {
			return err
		}
		if err := tx.Create(itemSnapshots(tenantID, invoice.ID, in.Items)).Error; err != nil {
			return err
		}

		// Phase 2: take the new quantities.
		return applyAdjustments(tx, tenantID, AdjustmentsForItems(in.Items, -1))
	})
	if err != nil {
		return nil, err
	}

	s.publisher.PublishInvoice(ctx, events.EventInvoiceUpdated, tenantID, invoicePayload(&invoice))
	return &invoice, nil
}

// DeleteInvoice soft-deletes the invoice row. Product stock is left
// untouched: a deleted invoice keeps its sale applied to inventory.
func (s *Service) DeleteInvoice(ctx context.Context, tenantID, invoiceID uint) error {
	var invoice model.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(database.TenantScope(tenantID)).
			First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}
		return tx.Delete(&invoice).Error
	})
	if err != nil {
		return err
	}

	s.publisher.PublishInvoice(ctx, events.EventInvoiceDeleted, tenantID, invoicePayload(&invoice))
	return nil
}

// InvoiceLine is one rendered invoice line: the historical snapshot price
// together with the product's live name and stock (nil when the product row
// is gone entirely).
type InvoiceLine struct {
	Name     *string         `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    *int            `json:"stock"`
	Quantity int             `json:"quantity"`
}

// CustomerSummary is the customer fields joined onto an invoice listing.
type CustomerSummary struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// InvoiceView is one row of the invoice listing.
type InvoiceView struct {
	ID            uint            `json:"id"`
	Number        string          `json:"number"`
	CustomerID    uint            `json:"customer_id"`
	Total         decimal.Decimal `json:"total"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PaymentStatus string          `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Customer      CustomerSummary `json:"customer"`
	Products      []InvoiceLine   `json:"products"`
}

// ListInvoices returns the tenant's non-deleted invoices joined with their
// customer and item lines. Product name and stock come from the live
// product row without the tombstone filter, so items on soft-deleted
// products still resolve their historical display name.
func (s *Service) ListInvoices(ctx context.Context, tenantID uint) ([]InvoiceView, error) {
	type invoiceRow struct {
		ID              uint
		Number          string
		CustomerID      uint
		Total           decimal.Decimal
		AmountPaid      decimal.Decimal
		CreatedAt       time.Time
		UpdatedAt       time.Time
		CustomerName    string
		CustomerEmail   string
		CustomerPhone   string
		CustomerAddress string
	}

	var rows []invoiceRow
	err := s.db.WithContext(ctx).Model(&model.Invoice{}).
		Select("invoices.id, invoices.number, invoices.customer_id, invoices.total, invoices.amount_paid, invoices.created_at, invoices.updated_at, "+
			"customers.name AS customer_name, customers.email AS customer_email, customers.phone AS customer_phone, customers.address AS customer_address").
		Joins("INNER JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.tenant_id = ?", tenantID).
		Order("invoices.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []InvoiceView{}, nil
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	type lineRow struct {
		InvoiceID    uint
		Quantity     int
		Price        decimal.Decimal
		ProductName  *string
		ProductStock *int
	}

	var lines []lineRow
	err = s.db.WithContext(ctx).Table("invoice_items").
		Select("invoice_items.invoice_id, invoice_items.quantity, invoice_items.price, "+
			"products.name AS product_name, products.stock AS product_stock").
		Joins("LEFT JOIN products ON products.id = invoice_items.product_id").
		Where("invoice_items.tenant_id = ? AND invoice_items.deleted_at IS NULL", tenantID).
		Where("invoice_items.invoice_id IN ?", ids).
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}

	linesByInvoice := make(map[uint][]InvoiceLine, len(rows))
	for _, line := range lines {
		linesByInvoice[line.InvoiceID] = append(linesByInvoice[line.InvoiceID], InvoiceLine{
			Name:     line.ProductName,
			Price:    line.Price,
			Stock:    line.ProductStock,
			Quantity: line.Quantity,
		})
	}

	views := make([]InvoiceView, len(rows))
	for i, row := range rows {
		products := linesByInvoice[row.ID]
		if products == nil {
			products = []InvoiceLine{}
		}
		views[i] = InvoiceView{
			ID:            row.ID,
			Number:        row.Number,
			CustomerID:    row.CustomerID,
			Total:         row.Total,
			AmountPaid:    row.AmountPaid,
			PaymentStatus: DerivePaymentStatus(row.Total, row.AmountPaid),
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
			Customer: CustomerSummary{
				Name:    row.CustomerName,
				Email:   row.CustomerEmail,
				Phone:   row.CustomerPhone,
				Address: row.CustomerAddress,
			},
			Products: products,
		}
	}
	return views, nil
}

func checkCustomer(tx *gorm.DB, tenantID, customerID uint) error {
	var customer model.Customer
	if err := tx.Scopes(database.TenantScope(tenantID)).
		First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	return nil
}

func itemSnapshots(tenantID, invoiceID uint, items []ItemInput) []model.InvoiceItem {
	snapshots := make([]model.InvoiceItem, len(items))
	for i, item := range items {
		snapshots[i] = model.InvoiceItem{
			TenantID:  tenantID,
			InvoiceID: invoiceID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}
	return snapshots
}

func applyAdjustments(tx *gorm.DB, tenantID uint, adjustments []StockAdjustment) error {
	if len(adjustments) == 0 {
		return nil
	}
	query, args := BulkStockUpdate(tenantID, adjustments)
	return tx.Exec(query, args...).Error
}

func invoicePayload(inv *model.Invoice) events.InvoicePayload {
	return events.InvoicePayload{
		InvoiceID:  inv.ID,
		Number:     inv.Number,
		CustomerID: inv.CustomerID,
		Total:      inv.Total,
		AmountPaid: inv.AmountPaid,
	}
}
