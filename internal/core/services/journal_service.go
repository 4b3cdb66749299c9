package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/finbook-app/finbook_backend/internal/apperrors"
	"github.com/finbook-app/finbook_backend/internal/core/domain"
	portsrepo "github.com/finbook-app/finbook_backend/internal/core/ports/repositories"
	portssvc "github.com/finbook-app/finbook_backend/internal/core/ports/services"
	"github.com/finbook-app/finbook_backend/internal/dto"
	"github.com/finbook-app/finbook_backend/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrJournalMinAccounts is returned when all lines hit the same account.
	ErrJournalMinAccounts = fmt.Errorf("%w: journal must involve at least two different accounts", apperrors.ErrValidation)
	// ErrAccountNotFound is returned when a referenced account doesn't exist in the company.
	ErrAccountNotFound = fmt.Errorf("%w: account not found", apperrors.ErrValidation)
	// ErrNotPosted is returned when an operation requires a posted journal.
	ErrNotPosted = fmt.Errorf("%w: journal is not in POSTED status", apperrors.ErrConflict)
)

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryWithTx
	accountSvc  portssvc.AccountSvcFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, accountSvc portssvc.AccountSvcFacade, authorizer portssvc.CompanyAuthorizerSvc) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
	}
}

// Ensure journalService implements the JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// PostJournal validates a proposed journal entry and posts it atomically.
// Validation is strict and exact: total debits must equal total credits to
// the last decimal place. A failed validation leaves no trace in storage,
// so resubmitting the same bad request fails identically.
func (s *journalService) PostJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		s.LogWarn(ctx, "Authorization failed for PostJournal",
			slog.String("user_id", creatorUserID),
			slog.String("company_id", companyID),
			slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	// Prepare domain lines from the request
	lines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			AccountID:   lineReq.AccountID,
			Description: lineReq.Description,
			Debit:       lineReq.Debit,
			Credit:      lineReq.Credit,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	// Structural and balance validation. The unbalanced error carries the
	// exact delta so the caller can see how far off the entry is.
	if err := accounting.ValidateJournalLines(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	uniqueAccountIDs := uniqueStrings(accountIDs)
	if len(uniqueAccountIDs) < 2 {
		return nil, ErrJournalMinAccounts
	}

	// Fetch accounts and validate ownership and status
	accountsMap, err := s.accountSvc.GetAccountByIDs(ctx, companyID, uniqueAccountIDs, creatorUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for journal posting",
			slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	accountTypes := make(map[string]string, len(uniqueAccountIDs))
	for _, id := range uniqueAccountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		accountTypes[id] = acc.Type
	}

	for i := range lines {
		lines[i].AccountName = accountsMap[lines[i].AccountID].Name
	}

	// Net balance change per account, derived from each line's side and the
	// account's normal balance
	balanceChanges := make(map[string]decimal.Decimal)
	for _, line := range lines {
		normal := accounting.NormalBalanceFor(accountTypes[line.AccountID])
		signed := accounting.SignedAmount(line, normal)
		balanceChanges[line.AccountID] = balanceChanges[line.AccountID].Add(signed)
	}

	journal := domain.Journal{
		JournalID:   journalID,
		CompanyID:   companyID,
		JournalDate: req.Date,
		Reference:   req.Reference,
		Notes:       req.Notes,
		Status:      domain.JournalPosted,
		Amount:      accounting.JournalAmount(lines),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// One ledger entry per line. Amounts are the signed balance deltas of the
	// linked accounts; running balances are filled in by the repository while
	// it holds the account locks.
	entries := s.buildLedgerEntries(journal, lines, accountTypes, creatorUserID, now)

	if err := s.journalRepo.SaveJournal(ctx, journal, lines, entries, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to save journal",
			slog.String("journal_id", journalID),
			slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	s.LogInfo(ctx, "Journal posted successfully",
		slog.String("journal_id", journalID),
		slog.String("company_id", companyID),
		slog.String("amount", journal.Amount.String()))
	journal.Lines = lines
	return &journal, nil
}

// buildLedgerEntries derives the append-only ledger rows a posted journal
// produces: one entry per line, linked back to the journal.
func (s *journalService) buildLedgerEntries(journal domain.Journal, lines []domain.JournalLine, accountTypes map[string]string, userID string, now time.Time) []domain.LedgerEntry {
	entries := make([]domain.LedgerEntry, len(lines))
	for i, line := range lines {
		accountID := line.AccountID
		journalID := journal.JournalID
		normal := accounting.NormalBalanceFor(accountTypes[line.AccountID])
		entries[i] = domain.LedgerEntry{
			EntryID:   uuid.NewString(),
			CompanyID: journal.CompanyID,
			Type:      domain.EntryOther,
			Amount:    accounting.SignedAmount(line, normal),
			EntryDate: journal.JournalDate,
			Notes:     line.Description,
			AccountID: &accountID,
			JournalID: &journalID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return entries
}

// GetJournalByID retrieves a specific journal with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, companyID string, journalID string, requestingUserID string) (*domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		s.LogWarn(ctx, "Authorization failed for GetJournalByID",
			slog.String("user_id", requestingUserID),
			slog.String("company_id", companyID),
			slog.String("journal_id", journalID),
			slog.String("error", err.Error()))
		return nil, err
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal by ID", slog.String("journal_id", journalID))
		}
		return nil, err
	}

	if journal.CompanyID != companyID {
		s.LogWarn(ctx, "Journal found but belongs to different company",
			slog.String("journal_id", journalID),
			slog.String("journal_company", journal.CompanyID),
			slog.String("requested_company", companyID))
		return nil, apperrors.ErrNotFound // Obscure existence
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for journal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to retrieve lines for journal %s: %w", journalID, apperrors.ErrInternal)
	}
	journal.Lines = lines

	return journal, nil
}

// ListJournals retrieves a paginated list of journals for a company.
func (s *journalService) ListJournals(ctx context.Context, companyID string, userID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		s.LogWarn(ctx, "Authorization failed for ListJournals", slog.String("error", err.Error()))
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	journals, nextToken, err := s.journalRepo.ListJournalsByCompany(ctx, companyID, limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals from repository", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}

	// If lines are requested, fetch them in one batch for the whole page
	var linesMap map[string][]domain.JournalLine
	if params.IncludeLines && len(journals) > 0 {
		journalIDs := make([]string, len(journals))
		for i, journal := range journals {
			journalIDs[i] = journal.JournalID
		}
		linesMap, err = s.journalRepo.FindLinesByJournalIDs(ctx, journalIDs)
		if err != nil {
			s.LogWarn(ctx, "Failed to fetch lines for journals", slog.String("error", err.Error()))
			// Continue without lines rather than failing the whole request
		}
	}

	journalResponses := make([]dto.JournalResponse, len(journals))
	for i, journal := range journals {
		if linesMap != nil {
			journal.Lines = linesMap[journal.JournalID]
		} else {
			journal.Lines = nil
		}
		journalResponses[i] = dto.ToJournalResponse(&journal)
	}

	resp := &dto.ListJournalsResponse{
		Journals:  journalResponses,
		NextToken: nextToken,
	}

	s.LogDebug(ctx, "Journals listed successfully", slog.Int("count", len(journals)))
	return resp, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}

func (s *journalService) validateReversalAndGetOriginal(ctx context.Context, companyID string, journalID string, userID string) (*domain.Journal, []domain.JournalLine, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		s.LogWarn(ctx, "Authorization failed for ReverseJournal", slog.String("error", err.Error()))
		return nil, nil, err
	}

	original, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Original journal not found for reversal", slog.String("journal_id", journalID))
			return nil, nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to fetch original journal for reversal", slog.String("journal_id", journalID))
		return nil, nil, fmt.Errorf("failed to retrieve original journal: %w", err)
	}

	if original.CompanyID != companyID {
		s.LogWarn(ctx, "Attempted to reverse journal from wrong company", slog.String("journal_id", journalID))
		return nil, nil, apperrors.ErrNotFound
	}
	if original.Status != domain.JournalPosted {
		s.LogWarn(ctx, "Attempted to reverse non-posted journal", slog.String("status", string(original.Status)))
		return nil, nil, fmt.Errorf("%w: journal status is %s, expected POSTED", apperrors.ErrConflict, original.Status)
	}
	if original.OriginalJournalID != nil {
		return nil, nil, fmt.Errorf("%w: cannot reverse a journal that is already a reversal", apperrors.ErrConflict)
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch original lines for reversal", slog.String("journal_id", journalID))
		return nil, nil, fmt.Errorf("failed to retrieve original lines: %w", err)
	}
	return original, lines, nil
}

// ReverseJournal posts a new journal whose lines mirror the original with
// debit and credit swapped, then flags the original as REVERSED. The ledger
// stays append-only: nothing about the original journal's lines is touched.
func (s *journalService) ReverseJournal(ctx context.Context, companyID string, journalID string, userID string) (*domain.Journal, error) {
	original, originalLines, err := s.validateReversalAndGetOriginal(ctx, companyID, journalID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newJournalID := uuid.NewString()

	reversing := domain.Journal{
		JournalID:         newJournalID,
		CompanyID:         companyID,
		JournalDate:       original.JournalDate,
		Reference:         original.Reference,
		Status:            domain.JournalPosted,
		Amount:            original.Amount,
		OriginalJournalID: &original.JournalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if strings.TrimSpace(original.Notes) != "" {
		reversing.Notes = fmt.Sprintf("Reversal of: %s", original.Notes)
	} else {
		reversing.Notes = fmt.Sprintf("Reversal of journal %s", original.JournalID)
	}

	// Mirror each line with sides swapped
	reversingLines := make([]domain.JournalLine, len(originalLines))
	accountIDs := make([]string, 0, len(originalLines))
	for i, orig := range originalLines {
		accountIDs = append(accountIDs, orig.AccountID)
		reversingLines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   newJournalID,
			AccountID:   orig.AccountID,
			AccountName: orig.AccountName,
			Description: orig.Description,
			Debit:       orig.Credit,
			Credit:      orig.Debit,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	accountsMap, err := s.accountSvc.GetAccountByIDs(ctx, companyID, uniqueStrings(accountIDs), userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for reversal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to get account details for reversal: %w", err)
	}

	accountTypes := make(map[string]string, len(accountsMap))
	balanceChanges := make(map[string]decimal.Decimal)
	for _, line := range reversingLines {
		acc, ok := accountsMap[line.AccountID]
		if !ok {
			s.LogError(ctx, apperrors.ErrInternal, "Account missing during reversal balance calculation", slog.String("account_id", line.AccountID))
			return nil, fmt.Errorf("internal error: account %s not found during balance calculation", line.AccountID)
		}
		accountTypes[line.AccountID] = acc.Type
		signed := accounting.SignedAmount(line, accounting.NormalBalanceFor(acc.Type))
		balanceChanges[line.AccountID] = balanceChanges[line.AccountID].Add(signed)
	}

	entries := s.buildLedgerEntries(reversing, reversingLines, accountTypes, userID, now)

	// The repository flips the original to REVERSED and saves the reversing
	// journal in one transaction, so a failure on either side leaves the
	// books untouched and a racing second reversal gets ErrConflict.
	if err := s.journalRepo.SaveReversal(ctx, reversing, reversingLines, entries, balanceChanges, original.JournalID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogWarn(ctx, "Journal was reversed concurrently", slog.String("journal_id", original.JournalID))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save reversing journal", slog.String("original_journal_id", journalID))
		return nil, fmt.Errorf("failed to save reversing journal: %w", err)
	}

	s.LogInfo(ctx, "Journal reversed successfully",
		slog.String("original_journal_id", original.JournalID),
		slog.String("reversing_journal_id", newJournalID))
	reversing.Lines = reversingLines
	return &reversing, nil
}
