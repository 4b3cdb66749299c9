package pgsql

import (
	portsrepo "github.com/finbook-app/finbook_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every PostgreSQL repository off a shared
// connection pool. The journal repository carries a reference to the account
// repository so journal posting can lock and adjust account balances inside
// its own transaction.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:  accountRepo,
		CompanyRepo:  newPgxCompanyRepository(dbPool),
		JournalRepo:  newPgxJournalRepository(dbPool, accountRepo),
		LedgerRepo:   newPgxLedgerRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
		APITokenRepo: newPgxAPITokenRepository(dbPool),
	}
}
