// internal/sync/mapping.go
package sync

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/valentynslivko/chift-odoo-test-assignment/internal/odoo"
	"github.com/valentynslivko/chift-odoo-test-assignment/pkg/models"
)

// Explicit per-entity mapping from the untyped Odoo payload to the local
// entity shape. Reads named keys with defaults so the logic stays auditable
// and testable without storage.

// stringField reads a string key; Odoo sends `false` for empty values, which
// maps to "".
func stringField(rec odoo.Record, key string) string {
	if s, ok := rec[key].(string); ok {
		return s
	}
	return ""
}

// intField reads an integer key; 0 means absent.
func intField(rec odoo.Record, key string) int {
	switch v := rec[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func floatField(rec odoo.Record, key string) float64 {
	switch v := rec[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// referencePair normalizes an Odoo relational field, which is either `false`
// or a two-element [id, label] pair, into a (label, raw JSON reference)
// pair. The label defaults to "" when absent.
func referencePair(raw any) (string, datatypes.JSON) {
	name := ""
	if pair, ok := raw.([]any); ok && len(pair) > 1 {
		if label, ok := pair[1].(string); ok {
			name = label
		}
	}
	if raw == nil {
		raw = false
	}
	b, err := json.Marshal(raw)
	if err != nil {
		b = []byte("false")
	}
	return name, datatypes.JSON(b)
}

func mapContact(rec odoo.Record) *models.Contact {
	name := stringField(rec, "name")
	email := stringField(rec, "email")
	companyName, companyRef := referencePair(rec["company_id"])
	return &models.Contact{
		OdooID:      intField(rec, "id"),
		Name:        &name,
		Email:       &email,
		CompanyName: &companyName,
		CompanyRef:  companyRef,
	}
}

func contactPatch(c *models.Contact) map[string]any {
	return map[string]any{
		"name":         c.Name,
		"email":        c.Email,
		"company_name": c.CompanyName,
		"company_ref":  c.CompanyRef,
	}
}

func mapInvoice(rec odoo.Record) *models.Invoice {
	name := stringField(rec, "name")
	state := stringField(rec, "state")
	moveType := stringField(rec, "move_type")
	amountTotal := floatField(rec, "amount_total")
	_, partnerRef := referencePair(rec["partner_id"])

	// unset dates come back as `false`; store NULL, not "false"
	var invoiceDate *string
	if d, ok := rec["invoice_date"].(string); ok {
		invoiceDate = &d
	}

	return &models.Invoice{
		OdooID:      intField(rec, "id"),
		Name:        &name,
		PartnerRef:  partnerRef,
		InvoiceDate: invoiceDate,
		AmountTotal: &amountTotal,
		State:       &state,
		MoveType:    &moveType,
	}
}

func invoicePatch(i *models.Invoice) map[string]any {
	return map[string]any{
		"name":         i.Name,
		"partner_ref":  i.PartnerRef,
		"invoice_date": i.InvoiceDate,
		"amount_total": i.AmountTotal,
		"state":        i.State,
		"move_type":    i.MoveType,
	}
}
