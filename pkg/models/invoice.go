// pkg/models/invoice.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Invoice is the local projection of an Odoo account.move record.
type Invoice struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	OdooID      int            `json:"odoo_id" gorm:"uniqueIndex;not null"`
	Name        *string        `json:"name,omitempty" gorm:"type:varchar(256);index"`
	PartnerRef  datatypes.JSON `json:"partner_id,omitempty"` // raw Odoo partner_id: false or [id, label]
	InvoiceDate *string        `json:"invoice_date,omitempty" gorm:"type:varchar(64)"`
	AmountTotal *float64       `json:"amount_total,omitempty"`
	State       *string        `json:"state,omitempty" gorm:"type:varchar(64)"`
	MoveType    *string        `json:"move_type,omitempty" gorm:"type:varchar(64)"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName specifies the table name for Invoice
func (Invoice) TableName() string {
	return "odoo_invoices"
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
