// internal/sync/odoo_sync.go
package sync

import (
	"context"
	"log"

	"gorm.io/gorm"

	"github.com/valentynslivko/chift-odoo-test-assignment/internal/odoo"
	"github.com/valentynslivko/chift-odoo-test-assignment/internal/repository"
)

// Fetcher is the slice of the Odoo client the pipeline needs.
type Fetcher interface {
	GetContacts(isCompany bool, limit, offset int) ([]odoo.Record, error)
	GetInvoices(domain odoo.Domain, limit, offset int) ([]odoo.Record, error)
}

// ClientFactory builds a fresh authenticated client. Each run owns its own
// session, so an authentication failure only costs that run.
type ClientFactory func() (Fetcher, error)

// SyncService reconciles remote Odoo state into local storage. One run
// fetches a single batch, maps it, and upserts every record by odoo_id
// inside one transaction.
type SyncService struct {
	db         *gorm.DB
	newClient  ClientFactory
	fetchLimit int
}

func NewSyncService(db *gorm.DB, newClient ClientFactory, fetchLimit int) *SyncService {
	return &SyncService{
		db:         db,
		newClient:  newClient,
		fetchLimit: fetchLimit,
	}
}

// SyncContacts runs one contact reconciliation pass.
func (s *SyncService) SyncContacts(ctx context.Context) error {
	client, err := s.newClient()
	if err != nil {
		log.Printf("❌ [SYNC] failed to sync odoo contacts: %v", err)
		return err
	}

	// NOTE: pagination traversal depends on the business logic, each run
	// re-reads one batch from the start
	records, err := client.GetContacts(false, s.fetchLimit, 0)
	if err != nil {
		log.Printf("❌ [SYNC] failed to sync odoo contacts: %v", err)
		return err
	}
	log.Printf("📥 [SYNC] fetched %d contacts from odoo", len(records))

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewContactRepository(tx)
		for _, rec := range records {
			odooID := intField(rec, "id")
			if odooID == 0 {
				log.Printf("⚠️ [SYNC] skipping contact record without odoo id: %v", rec)
				continue
			}

			incoming := mapContact(rec)
			existing, err := repo.GetByOdooID(ctx, odooID)
			if err != nil {
				return err
			}
			if existing != nil {
				if _, err := repo.Update(ctx, existing, contactPatch(incoming)); err != nil {
					return err
				}
			} else {
				if _, err := repo.Create(ctx, incoming); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ [SYNC] failed to sync odoo contacts: %v", err)
		return err
	}

	log.Println("✅ [SYNC] successfully synced odoo contacts to database")
	return nil
}

// SyncInvoices runs one invoice reconciliation pass.
func (s *SyncService) SyncInvoices(ctx context.Context) error {
	client, err := s.newClient()
	if err != nil {
		log.Printf("❌ [SYNC] failed to sync odoo invoices: %v", err)
		return err
	}

	records, err := client.GetInvoices(nil, s.fetchLimit, 0)
	if err != nil {
		log.Printf("❌ [SYNC] failed to sync odoo invoices: %v", err)
		return err
	}
	log.Printf("📥 [SYNC] fetched %d invoices from odoo", len(records))

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewInvoiceRepository(tx)
		for _, rec := range records {
			odooID := intField(rec, "id")
			if odooID == 0 {
				log.Printf("⚠️ [SYNC] skipping invoice record without odoo id: %v", rec)
				continue
			}

			incoming := mapInvoice(rec)
			existing, err := repo.GetByOdooID(ctx, odooID)
			if err != nil {
				return err
			}
			if existing != nil {
				if _, err := repo.Update(ctx, existing, invoicePatch(incoming)); err != nil {
					return err
				}
			} else {
				if _, err := repo.Create(ctx, incoming); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ [SYNC] failed to sync odoo invoices: %v", err)
		return err
	}

	log.Println("✅ [SYNC] successfully synced odoo invoices to database")
	return nil
}
