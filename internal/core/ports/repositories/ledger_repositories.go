package repositories

import (
	"context"
	"time"

	"github.com/finbook-app/finbook_backend/internal/core/domain"
)

// LedgerReader is the ledger accessor used by the reporting engine. Every
// method returns read-only, company-scoped collections filtered to records
// effective on or before the asOf cutoff (inclusive end-of-day bound applied
// by the implementation). Implementations must never mutate the ledger.
type LedgerReader interface {
	// ListAccounts returns all active accounts of the company. Account balances
	// are the persisted running balances, not reconstructed historical ones.
	ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error)

	// ListEntries returns ledger entries dated on or before asOf.
	ListEntries(ctx context.Context, companyID string, asOf time.Time) ([]domain.LedgerEntry, error)

	// ListExpenses returns expenses dated on or before asOf.
	ListExpenses(ctx context.Context, companyID string, asOf time.Time) ([]domain.Expense, error)

	// ListProjects returns projects with their payments received on or before asOf.
	ListProjects(ctx context.Context, companyID string, asOf time.Time) ([]domain.Project, error)

	// ListSales returns sales created on or before asOf, items included.
	ListSales(ctx context.Context, companyID string, asOf time.Time) ([]domain.Sale, error)

	// ListFixedAssets returns fixed assets purchased on or before asOf.
	ListFixedAssets(ctx context.Context, companyID string, asOf time.Time) ([]domain.FixedAsset, error)

	// ListInventoryItems returns the current inventory of the company.
	ListInventoryItems(ctx context.Context, companyID string) ([]domain.InventoryItem, error)
}
