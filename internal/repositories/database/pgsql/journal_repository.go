package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/finbook-app/finbook_backend/internal/apperrors"
	"github.com/finbook-app/finbook_backend/internal/core/domain"
	portsrepo "github.com/finbook-app/finbook_backend/internal/core/ports/repositories"
	"github.com/finbook-app/finbook_backend/internal/models"
	"github.com/finbook-app/finbook_backend/internal/utils/mapping"
	"github.com/finbook-app/finbook_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal and ledger entry data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// SaveJournal persists a journal, its lines and the derived ledger entries,
// and applies the account balance deltas, all inside one DB transaction.
// Ledger entry amounts arrive pre-signed from the service; running balances
// are computed here while the account rows are locked.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored if the transaction commits.
	defer r.Rollback(ctx, tx)

	if err := r.saveJournalInTx(ctx, tx, journal, lines, entries, balanceChanges); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction for journal "+journal.JournalID, err)
	}

	return nil
}

// SaveReversal flags the original journal as REVERSED and persists the
// reversing journal in the same transaction, so the books never hold one
// without the other. The status flip is guarded: if the original is no longer
// POSTED (a concurrent reversal won the race), nothing is written.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, reversing domain.Journal, lines []domain.JournalLine, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal, originalJournalID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored if the transaction commits.
	defer r.Rollback(ctx, tx)

	// Flip the original first; its row lock serializes racing reversals.
	markQuery := `
		UPDATE journals
		SET status = $2,
		    reversing_journal_id = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE journal_id = $1 AND status = 'POSTED';
	`
	cmdTag, err := tx.Exec(ctx, markQuery,
		originalJournalID,
		domain.JournalReversed,
		reversing.JournalID,
		reversing.LastUpdatedAt,
		reversing.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark journal "+originalJournalID+" as reversed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal %s is no longer in POSTED status", apperrors.ErrConflict, originalJournalID)
	}

	if err := r.saveJournalInTx(ctx, tx, reversing, lines, entries, balanceChanges); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit reversal of journal "+originalJournalID, err)
	}

	return nil
}

// saveJournalInTx writes a journal, its lines and ledger entries and applies
// the balance deltas using the caller's transaction.
func (r *PgxJournalRepository) saveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, lines []domain.JournalLine, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal) error {
	// 1. Insert the journal row
	modelJournal := mapping.ToModelJournal(journal)
	journalQuery := `
		INSERT INTO journals (
			journal_id, company_id, journal_date, reference, notes, status, amount,
			original_journal_id, reversing_journal_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, journalQuery,
		modelJournal.JournalID,
		modelJournal.CompanyID,
		modelJournal.JournalDate,
		modelJournal.Reference,
		modelJournal.Notes,
		modelJournal.Status,
		modelJournal.Amount,
		modelJournal.OriginalJournalID,
		modelJournal.ReversingJournalID,
		modelJournal.CreatedAt,
		modelJournal.CreatedBy,
		modelJournal.LastUpdatedAt,
		modelJournal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+modelJournal.JournalID, err)
	}

	// 2. Lock the affected accounts and capture their pre-journal balances
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	// 3. Apply the balance deltas
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, journal.CreatedBy, journal.CreatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	// 4. Insert the journal lines
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, journal_id, account_id, account_name, description, debit, credit, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			m.LineID,
			m.JournalID,
			m.AccountID,
			m.AccountName,
			m.Description,
			m.Debit,
			m.Credit,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	// 5. Insert the ledger entries with running balances calculated against
	// the locked pre-journal balances. Entries are sorted by ID so repeated
	// postings of the same logical journal produce identical sequences.
	currentRunningBalances := make(map[string]decimal.Decimal)
	for accID, lockedAcc := range lockedAccounts {
		currentRunningBalances[accID] = lockedAcc.Balance
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].EntryID < entries[j].EntryID
	})

	entryQuery := `
		INSERT INTO ledger_entries (entry_id, company_id, entry_type, amount, entry_date, notes, account_id, project_id, customer_id, vendor_id, expense_id, journal_id, running_balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	for _, entry := range entries {
		m := mapping.ToModelLedgerEntry(entry)
		if entry.AccountID != nil {
			accountID := *entry.AccountID
			if _, ok := lockedAccounts[accountID]; !ok {
				return apperrors.NewAppError(500, "internal error: account "+accountID+" not locked during ledger entry processing", nil)
			}
			newRunningBalance := currentRunningBalances[accountID].Add(entry.Amount)
			m.RunningBalance = newRunningBalance
			currentRunningBalances[accountID] = newRunningBalance
		}

		batch.Queue(entryQuery,
			m.EntryID,
			m.CompanyID,
			m.EntryType,
			m.Amount,
			m.EntryDate,
			m.Notes,
			m.AccountID,
			m.ProjectID,
			m.CustomerID,
			m.VendorID,
			m.ExpenseID,
			m.JournalID,
			m.RunningBalance,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute insert batch for journal "+modelJournal.JournalID, err)
	}

	return nil
}

const journalSelectFields = `
	journal_id, company_id, journal_date, reference, notes, status, amount,
	original_journal_id, reversing_journal_id,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanJournalRow(row pgx.Row) (*models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.CompanyID,
		&m.JournalDate,
		&m.Reference,
		&m.Notes,
		&m.Status,
		&m.Amount,
		&m.OriginalJournalID,
		&m.ReversingJournalID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalSelectFields + ` FROM journals WHERE journal_id = $1;`

	m, err := scanJournalRow(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal by ID "+journalID, err)
	}

	domainJournal := mapping.ToDomainJournal(*m)
	return &domainJournal, nil
}

const journalLineSelectFields = `
	line_id, journal_id, account_id, account_name, description, debit, credit,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanJournalLineRows(rows pgx.Rows) ([]models.JournalLine, error) {
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		err := rows.Scan(
			&m.LineID,
			&m.JournalID,
			&m.AccountID,
			&m.AccountName,
			&m.Description,
			&m.Debit,
			&m.Credit,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, m)
	}
	return lines, rows.Err()
}

// FindLinesByJournalID retrieves all lines of a single journal.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT ` + journalLineSelectFields + `
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal "+journalID, err)
	}

	lines, err := scanJournalLineRows(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan lines for journal "+journalID, err)
	}

	return mapping.ToDomainJournalLineSlice(lines), nil
}

// FindLinesByJournalIDs retrieves lines for multiple journals, grouped by journal ID.
func (r *PgxJournalRepository) FindLinesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalLine, error) {
	if len(journalIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `
		SELECT ` + journalLineSelectFields + `
		FROM journal_lines
		WHERE journal_id = ANY($1)
		ORDER BY journal_id, line_id;
	`

	rows, err := r.Pool.Query(ctx, query, journalIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal IDs", err)
	}

	lines, err := scanJournalLineRows(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan lines during batch fetch", err)
	}

	linesMap := make(map[string][]domain.JournalLine)
	for _, m := range lines {
		linesMap[m.JournalID] = append(linesMap[m.JournalID], mapping.ToDomainJournalLine(m))
	}

	// Ensure even journals with no lines have an entry (empty slice)
	for _, jid := range journalIDs {
		if _, exists := linesMap[jid]; !exists {
			linesMap[jid] = []domain.JournalLine{}
		}
	}

	return linesMap, nil
}

// ListJournalsByCompany retrieves a paginated list of journals for a company
// using token-based pagination. It returns the journals, a token for the next
// page, and an error.
func (r *PgxJournalRepository) ListJournalsByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + journalSelectFields + ` FROM journals`

	filterClause := `WHERE company_id = $1`
	if !includeReversals {
		filterClause += ` AND status != 'REVERSED' AND reversing_journal_id IS NULL AND original_journal_id IS NULL`
	}

	// Ordering must be stable; created_at breaks journal_date ties.
	orderByClause := `ORDER BY journal_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{companyID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		// Tuple comparison keeps the cursor condition concise.
		cursorClause := `AND (journal_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals for company "+companyID, err)
	}
	defer rows.Close()

	modelJournals := make([]models.Journal, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournalRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal row for company "+companyID, scanErr)
		}
		modelJournals = append(modelJournals, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal rows for company "+companyID, err)
	}

	var nextTokenVal *string
	results := modelJournals
	if len(modelJournals) > limit {
		// There is a next page; the token points at the last item included in
		// this page, and the next query starts after it.
		lastJournal := modelJournals[limit-1]
		newToken := pagination.EncodeToken(lastJournal.JournalDate, lastJournal.CreatedAt)
		nextTokenVal = &newToken
		results = modelJournals[:limit]
	}

	domainJournals := make([]domain.Journal, len(results))
	for i, m := range results {
		domainJournals[i] = mapping.ToDomainJournal(m)
	}

	return domainJournals, nextTokenVal, nil
}
