package services

import (
	"context"

	"github.com/finbook-app/finbook_backend/internal/core/domain"
	"github.com/finbook-app/finbook_backend/internal/dto"
)

// JournalSvcFacade defines the journal validator/poster operations.
type JournalSvcFacade interface {
	// PostJournal validates a proposed journal entry and, if valid, posts it
	// atomically: one ledger entry per line, all or nothing. Validation failures
	// are side-effect free and repeatable.
	PostJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error)

	// GetJournalByID retrieves a journal with its lines.
	GetJournalByID(ctx context.Context, companyID string, journalID string, requestingUserID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals for a company.
	ListJournals(ctx context.Context, companyID string, userID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)

	// ReverseJournal posts an offsetting journal for a previously posted one and
	// flags the original as reversed. The ledger stays append-only.
	ReverseJournal(ctx context.Context, companyID string, journalID string, userID string) (*domain.Journal, error)
}
