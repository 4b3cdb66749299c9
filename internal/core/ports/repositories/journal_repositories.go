package repositories

import (
	"context"

	"github.com/finbook-app/finbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournalsByCompany retrieves a paginated list of journals for a given company
	// using token-based pagination. It returns the journals, a token for the next
	// page, and an error.
	ListJournalsByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists a journal with its lines and the ledger entries derived
	// from them, updating account balances, all within one database transaction.
	// Either every line is durably written or none are.
	SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal) error

	// SaveReversal persists a reversing journal (lines, ledger entries, balance
	// deltas) and flags the original journal as REVERSED with a link to the
	// reversing one, all within one database transaction. The original must
	// still be POSTED when the transaction runs; if a concurrent reversal got
	// there first, ErrConflict is returned and nothing is written.
	SaveReversal(ctx context.Context, reversing domain.Journal, lines []domain.JournalLine, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal, originalJournalID string) error
}

// JournalLineReader defines read operations for journal line data
type JournalLineReader interface {
	// FindLinesByJournalID retrieves all lines of a single journal.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// FindLinesByJournalIDs retrieves lines for multiple journals, grouped by journal ID.
	FindLinesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalLine, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	JournalLineReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
