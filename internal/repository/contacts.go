// internal/repository/contacts.go
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/valentynslivko/chift-odoo-test-assignment/pkg/models"
)

type ContactRepository struct {
	*Repository[models.Contact]
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{Repository: New[models.Contact](db)}
}

func (r *ContactRepository) WithTx(tx *gorm.DB) *ContactRepository {
	return &ContactRepository{Repository: r.Repository.WithTx(tx)}
}

// GetByOdooID looks a contact up by its external identifier; nil when absent.
func (r *ContactRepository) GetByOdooID(ctx context.Context, odooID int) (*models.Contact, error) {
	return r.GetByFilters(ctx, Filters{"odoo_id": odooID})
}

func (r *ContactRepository) GetContacts(ctx context.Context, isCompany bool, limit, offset int) ([]models.Contact, error) {
	return r.ListByFilters(ctx, Filters{"is_company": isCompany}, limit, offset)
}

func (r *ContactRepository) CountContacts(ctx context.Context, isCompany bool) (int64, error) {
	return r.CountByFilters(ctx, Filters{"is_company": isCompany})
}
