package services

import (
	"context"
	"time"

	"github.com/finbook-app/finbook_backend/internal/core/domain"
	portsrepo "github.com/finbook-app/finbook_backend/internal/core/ports/repositories"
	"github.com/finbook-app/finbook_backend/internal/utils/accounting"
	"golang.org/x/sync/errgroup"
)

// ledgerSnapshot is a point-in-time, company-scoped view of the ledger, the
// sole input of every report computation. Collections are already filtered to
// the inclusive end-of-day asOf bound by the repository.
type ledgerSnapshot struct {
	CompanyID string
	AsOf      time.Time

	Accounts  []domain.Account
	Entries   []domain.LedgerEntry
	Expenses  []domain.Expense
	Projects  []domain.Project
	Sales     []domain.Sale
	Assets    []domain.FixedAsset
	Inventory []domain.InventoryItem
}

// loadLedgerSnapshot fetches all report inputs concurrently. The fetches are
// independent reads, so a failure in any one cancels the rest.
func loadLedgerSnapshot(ctx context.Context, repo portsrepo.LedgerReader, companyID string, asOf time.Time) (*ledgerSnapshot, error) {
	cutoff := accounting.AsOfCutoff(asOf)
	snap := &ledgerSnapshot{CompanyID: companyID, AsOf: cutoff}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		snap.Accounts, err = repo.ListAccounts(gctx, companyID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Entries, err = repo.ListEntries(gctx, companyID, cutoff)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Expenses, err = repo.ListExpenses(gctx, companyID, cutoff)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Projects, err = repo.ListProjects(gctx, companyID, cutoff)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Sales, err = repo.ListSales(gctx, companyID, cutoff)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Assets, err = repo.ListFixedAssets(gctx, companyID, cutoff)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Inventory, err = repo.ListInventoryItems(gctx, companyID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// projectByID indexes the snapshot's projects for link resolution.
func (s *ledgerSnapshot) projectByID() map[string]domain.Project {
	m := make(map[string]domain.Project, len(s.Projects))
	for _, p := range s.Projects {
		m[p.ProjectID] = p
	}
	return m
}
