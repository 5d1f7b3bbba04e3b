// internal/service/odoo.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"gorm.io/datatypes"

	"github.com/valentynslivko/chift-odoo-test-assignment/internal/odoo"
	"github.com/valentynslivko/chift-odoo-test-assignment/internal/repository"
	"github.com/valentynslivko/chift-odoo-test-assignment/pkg/models"
)

// OdooService backs the /api/utils surface: direct remote operations plus
// create-and-sync helpers that mirror a created record into local storage
// right away, without waiting for the next pipeline run.
//
// A fresh client is constructed per operation so each request gets its own
// authenticated session.
type OdooService struct {
	newClient func() (*odoo.Client, error)
	contacts  *repository.ContactRepository
	invoices  *repository.InvoiceRepository
}

func NewOdooService(newClient func() (*odoo.Client, error), contacts *repository.ContactRepository, invoices *repository.InvoiceRepository) *OdooService {
	return &OdooService{
		newClient: newClient,
		contacts:  contacts,
		invoices:  invoices,
	}
}

func (s *OdooService) Version() (odoo.Record, error) {
	client, err := s.newClient()
	if err != nil {
		return nil, err
	}
	return client.Version()
}

func (s *OdooService) GetContactsFromOdoo(limit, offset int) ([]odoo.Record, error) {
	client, err := s.newClient()
	if err != nil {
		return nil, err
	}
	return client.GetContacts(false, limit, offset)
}

func (s *OdooService) GetInvoicesFromOdoo(limit, offset int) ([]odoo.Record, error) {
	client, err := s.newClient()
	if err != nil {
		return nil, err
	}
	return client.GetInvoices(nil, limit, offset)
}

func (s *OdooService) GetPartnersFromOdoo(limit, offset int) ([]odoo.Record, error) {
	client, err := s.newClient()
	if err != nil {
		return nil, err
	}
	return client.GetPartners(nil, limit, offset)
}

// CreateAndInsertContact creates the contact in Odoo and mirrors it into the
// local store, returning the Odoo contact id.
func (s *OdooService) CreateAndInsertContact(ctx context.Context, name, email, companyName string) (int, error) {
	client, err := s.newClient()
	if err != nil {
		return 0, err
	}
	odooID, err := client.CreateContact(name, email, companyName)
	if err != nil {
		return 0, err
	}

	contact := &models.Contact{
		OdooID:      odooID,
		Name:        &name,
		Email:       &email,
		CompanyName: &companyName,
	}
	if _, err := s.contacts.Create(ctx, contact); err != nil {
		// the remote record exists either way; the next sync run reconciles it
		log.Printf("⚠️ [ODOO] contact %d created remotely but local insert failed: %v", odooID, err)
		return odooID, err
	}
	return odooID, nil
}

// CreateAndInsertInvoice creates the invoice in Odoo and mirrors it into the
// local store, returning the Odoo invoice id.
func (s *OdooService) CreateAndInsertInvoice(ctx context.Context, partnerID int, lines []odoo.InvoiceLine) (int, error) {
	client, err := s.newClient()
	if err != nil {
		return 0, err
	}
	odooID, err := client.CreateInvoice(partnerID, lines, "out_invoice")
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, line := range lines {
		total += float64(line.Quantity) * line.PriceUnit
	}
	partnerRef, _ := json.Marshal([]any{partnerID})
	moveType := "out_invoice"
	state := "draft"

	invoice := &models.Invoice{
		OdooID:      odooID,
		PartnerRef:  datatypes.JSON(partnerRef),
		AmountTotal: &total,
		State:       &state,
		MoveType:    &moveType,
	}
	if _, err := s.invoices.Create(ctx, invoice); err != nil {
		log.Printf("⚠️ [ODOO] invoice %d created remotely but local insert failed: %v", odooID, err)
		return odooID, err
	}
	return odooID, nil
}
