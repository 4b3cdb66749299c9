package pgsql

import (
	"context"
	"time"

	"github.com/finbook-app/finbook_backend/internal/apperrors"
	"github.com/finbook-app/finbook_backend/internal/core/domain"
	portsrepo "github.com/finbook-app/finbook_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerRepository is the read-only accessor behind the reporting engine.
// It scans straight into domain structs since none of these reads feed back
// into writes.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerReader {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerReader
var _ portsrepo.LedgerReader = (*PgxLedgerRepository)(nil)

// ListAccounts returns all active accounts of the company with their
// persisted balances.
func (r *PgxLedgerRepository) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	query := `
		SELECT account_id, company_id, name, account_type, balance, is_active
		FROM accounts
		WHERE company_id = $1 AND is_active = TRUE
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for company "+companyID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.AccountID, &a.CompanyID, &a.Name, &a.Type, &a.Balance, &a.IsActive); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// ListEntries returns ledger entries dated on or before asOf.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, companyID string, asOf time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, company_id, entry_type, amount, entry_date, notes,
		       account_id, project_id, customer_id, vendor_id, expense_id, journal_id,
		       running_balance
		FROM ledger_entries
		WHERE company_id = $1 AND entry_date <= $2
		ORDER BY entry_date, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries for company "+companyID, err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var e domain.LedgerEntry
		err := rows.Scan(
			&e.EntryID,
			&e.CompanyID,
			&e.Type,
			&e.Amount,
			&e.EntryDate,
			&e.Notes,
			&e.AccountID,
			&e.ProjectID,
			&e.CustomerID,
			&e.VendorID,
			&e.ExpenseID,
			&e.JournalID,
			&e.RunningBalance,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return entries, nil
}

// ListExpenses returns expenses dated on or before asOf.
func (r *PgxLedgerRepository) ListExpenses(ctx context.Context, companyID string, asOf time.Time) ([]domain.Expense, error) {
	query := `
		SELECT expense_id, company_id, category, sub_category, amount,
		       payment_status, kind, expense_date, project_id, customer_id, vendor_id
		FROM expenses
		WHERE company_id = $1 AND expense_date <= $2
		ORDER BY expense_date, expense_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses for company "+companyID, err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		var e domain.Expense
		err := rows.Scan(
			&e.ExpenseID,
			&e.CompanyID,
			&e.Category,
			&e.SubCategory,
			&e.Amount,
			&e.PaymentStatus,
			&e.Kind,
			&e.ExpenseDate,
			&e.ProjectID,
			&e.CustomerID,
			&e.VendorID,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}
	return expenses, nil
}

// ListProjects returns projects created on or before asOf, each carrying the
// payments received up to asOf.
func (r *PgxLedgerRepository) ListProjects(ctx context.Context, companyID string, asOf time.Time) ([]domain.Project, error) {
	query := `
		SELECT project_id, company_id, customer_id, name, status,
		       agreement_amount, advance_paid, remaining_amount
		FROM projects
		WHERE company_id = $1 AND created_at <= $2
		ORDER BY created_at, project_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query projects for company "+companyID, err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	projectIndex := map[string]int{}
	for rows.Next() {
		var p domain.Project
		err := rows.Scan(
			&p.ProjectID,
			&p.CompanyID,
			&p.CustomerID,
			&p.Name,
			&p.Status,
			&p.AgreementAmount,
			&p.AdvancePaid,
			&p.RemainingAmount,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan project row", err)
		}
		p.Payments = []domain.Payment{}
		projectIndex[p.ProjectID] = len(projects)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating project rows", err)
	}

	if len(projects) == 0 {
		return projects, nil
	}

	paymentQuery := `
		SELECT payment_id, company_id, project_id, amount, payment_date
		FROM payments
		WHERE company_id = $1 AND payment_date <= $2
		ORDER BY payment_date, payment_id;
	`
	payRows, err := r.Pool.Query(ctx, paymentQuery, companyID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for company "+companyID, err)
	}
	defer payRows.Close()

	for payRows.Next() {
		var pay domain.Payment
		if err := payRows.Scan(&pay.PaymentID, &pay.CompanyID, &pay.ProjectID, &pay.Amount, &pay.PaymentDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		if idx, ok := projectIndex[pay.ProjectID]; ok {
			projects[idx].Payments = append(projects[idx].Payments, pay)
		}
	}
	if err := payRows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}

	return projects, nil
}

// ListSales returns sales dated on or before asOf with their items attached.
func (r *PgxLedgerRepository) ListSales(ctx context.Context, companyID string, asOf time.Time) ([]domain.Sale, error) {
	query := `
		SELECT sale_id, company_id, customer_id, subtotal, tax, total,
		       paid_amount, payment_status, sale_date
		FROM sales
		WHERE company_id = $1 AND sale_date <= $2
		ORDER BY sale_date, sale_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sales for company "+companyID, err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	saleIndex := map[string]int{}
	for rows.Next() {
		var s domain.Sale
		err := rows.Scan(
			&s.SaleID,
			&s.CompanyID,
			&s.CustomerID,
			&s.Subtotal,
			&s.Tax,
			&s.Total,
			&s.PaidAmount,
			&s.PaymentStatus,
			&s.SaleDate,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sale row", err)
		}
		s.Items = []domain.SaleItem{}
		saleIndex[s.SaleID] = len(sales)
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating sale rows", err)
	}

	if len(sales) == 0 {
		return sales, nil
	}

	itemQuery := `
		SELECT si.sale_item_id, si.sale_id, si.product_id, si.quantity, si.unit_price, si.cost_price
		FROM sale_items si
		JOIN sales s ON s.sale_id = si.sale_id
		WHERE s.company_id = $1 AND s.sale_date <= $2
		ORDER BY si.sale_id, si.sale_item_id;
	`
	itemRows, err := r.Pool.Query(ctx, itemQuery, companyID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sale items for company "+companyID, err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it domain.SaleItem
		if err := itemRows.Scan(&it.SaleItemID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.CostPrice); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sale item row", err)
		}
		if idx, ok := saleIndex[it.SaleID]; ok {
			sales[idx].Items = append(sales[idx].Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating sale item rows", err)
	}

	return sales, nil
}

// ListFixedAssets returns fixed assets purchased on or before asOf. The stored
// book value is returned as-is; reporting recomputes depreciation itself.
func (r *PgxLedgerRepository) ListFixedAssets(ctx context.Context, companyID string, asOf time.Time) ([]domain.FixedAsset, error) {
	query := `
		SELECT asset_id, company_id, name, value, purchase_date, current_book_value
		FROM fixed_assets
		WHERE company_id = $1 AND purchase_date <= $2
		ORDER BY purchase_date, asset_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fixed assets for company "+companyID, err)
	}
	defer rows.Close()

	assets := []domain.FixedAsset{}
	for rows.Next() {
		var a domain.FixedAsset
		if err := rows.Scan(&a.AssetID, &a.CompanyID, &a.Name, &a.Value, &a.PurchaseDate, &a.CurrentBookValue); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fixed asset row", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating fixed asset rows", err)
	}
	return assets, nil
}

// ListInventoryItems returns the current inventory of the company.
func (r *PgxLedgerRepository) ListInventoryItems(ctx context.Context, companyID string) ([]domain.InventoryItem, error) {
	query := `
		SELECT item_id, company_id, name, in_stock, purchase_price
		FROM inventory_items
		WHERE company_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query inventory items for company "+companyID, err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		var it domain.InventoryItem
		if err := rows.Scan(&it.ItemID, &it.CompanyID, &it.Name, &it.InStock, &it.PurchasePrice); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan inventory item row", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating inventory item rows", err)
	}
	return items, nil
}
