// internal/repository/invoices.go
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/valentynslivko/chift-odoo-test-assignment/pkg/models"
)

type InvoiceRepository struct {
	*Repository[models.Invoice]
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{Repository: New[models.Invoice](db)}
}

func (r *InvoiceRepository) WithTx(tx *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{Repository: r.Repository.WithTx(tx)}
}

// GetByOdooID looks an invoice up by its external identifier; nil when absent.
func (r *InvoiceRepository) GetByOdooID(ctx context.Context, odooID int) (*models.Invoice, error) {
	return r.GetByFilters(ctx, Filters{"odoo_id": odooID})
}

func (r *InvoiceRepository) GetInvoices(ctx context.Context, limit, offset int) ([]models.Invoice, error) {
	return r.ListByFilters(ctx, Filters{}, limit, offset)
}

func (r *InvoiceRepository) CountInvoices(ctx context.Context) (int64, error) {
	return r.CountByFilters(ctx, Filters{})
}
