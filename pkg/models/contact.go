// pkg/models/contact.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Contact is the local projection of an Odoo res.partner record.
// OdooID is the correlation key for sync; ID is assigned locally and
// never derived from it.
type Contact struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	OdooID      int            `json:"odoo_id" gorm:"uniqueIndex;not null"`
	Name        *string        `json:"name,omitempty" gorm:"type:varchar(256);index"`
	Email       *string        `json:"email,omitempty" gorm:"type:varchar(256);index"`
	CompanyName *string        `json:"company_name,omitempty" gorm:"type:varchar(256);index"`
	CompanyRef  datatypes.JSON `json:"company_id,omitempty"` // raw Odoo company_id: false or [id, label]
	IsCompany   bool           `json:"is_company" gorm:"not null;default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName specifies the table name for Contact
func (Contact) TableName() string {
	return "odoo_contacts"
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
