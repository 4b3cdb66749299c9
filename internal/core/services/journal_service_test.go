package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/finbook-app/finbook_backend/internal/apperrors"
	"github.com/finbook-app/finbook_backend/internal/core/domain"
	portsrepo "github.com/finbook-app/finbook_backend/internal/core/ports/repositories"
	portssvc "github.com/finbook-app/finbook_backend/internal/core/ports/services"
	"github.com/finbook-app/finbook_backend/internal/core/services"
	"github.com/finbook-app/finbook_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, journal, lines, entries, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournalsByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken, includeReversals)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Journal), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalLine, error) {
	args := m.Called(ctx, journalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, reversing domain.Journal, lines []domain.JournalLine, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal, originalJournalID string) error {
	args := m.Called(ctx, reversing, lines, entries, balanceChanges, originalJournalID)
	return args.Error(0)
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountService (as used by JournalService) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, companyID string, accountID string, requestingUserID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByIDs(ctx context.Context, companyID string, accountIDs []string, requestingUserID string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, companyID string, limit int, offset int, requestingUserID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, limit, offset, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, companyID string, accountID string, requestingUserID string) error {
	args := m.Called(ctx, companyID, accountID, requestingUserID)
	return args.Error(0)
}

// --- Mock CompanyAuthorizer ---
type MockCompanyAuthorizer struct {
	mock.Mock
}

var _ portssvc.CompanyAuthorizerSvc = (*MockCompanyAuthorizer)(nil)

func (m *MockCompanyAuthorizer) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error {
	args := m.Called(ctx, userID, companyID, requiredRole)
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockAccountSvc   *MockAccountService
	mockAuthorizer   *MockCompanyAuthorizer
	service          portssvc.JournalSvcFacade
	cashAccount      domain.Account
	incomeAccount    domain.Account
	liabilityAccount domain.Account
	companyID        string
	userID           string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockAuthorizer = new(MockCompanyAuthorizer)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc, suite.mockAuthorizer)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID: uuid.NewString(),
		CompanyID: suite.companyID,
		Name:      "Cash",
		Type:      "CASH",
		IsActive:  true,
	}
	suite.incomeAccount = domain.Account{
		AccountID: uuid.NewString(),
		CompanyID: suite.companyID,
		Name:      "Sales Income",
		Type:      "INCOME",
		IsActive:  true,
	}
	suite.liabilityAccount = domain.Account{
		AccountID: uuid.NewString(),
		CompanyID: suite.companyID,
		Name:      "Bank Loan",
		Type:      "LIABILITY",
		IsActive:  true,
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestPostJournal_Success() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date:      time.Now(),
		Reference: "INV-001",
		Notes:     "Invoice settlement",
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:   suite.cashAccount,
		suite.incomeAccount.AccountID: suite.incomeAccount,
	}
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.companyID, []string{suite.cashAccount.AccountID, suite.incomeAccount.AccountID}, suite.userID).Return(accountsMap, nil).Once()

	// The cash account is debit-normal and the income account credit-normal,
	// so both balances move up by 100
	suite.mockJournalRepo.On("SaveJournal", ctx,
		mock.AnythingOfType("domain.Journal"),
		mock.AnythingOfType("[]domain.JournalLine"),
		mock.AnythingOfType("[]domain.LedgerEntry"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(100)) &&
				changes[suite.incomeAccount.AccountID].Equal(decimal.NewFromInt(100))
		}),
	).Return(nil).Once()

	posted, err := suite.service.PostJournal(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(posted)
	suite.NotEmpty(posted.JournalID)
	suite.Equal(suite.companyID, posted.CompanyID)
	suite.Equal(domain.JournalPosted, posted.Status)
	suite.True(posted.Amount.Equal(decimal.NewFromInt(100)))
	suite.Equal(suite.userID, posted.CreatedBy)
	suite.Require().Len(posted.Lines, 2)
	suite.Equal(suite.cashAccount.Name, posted.Lines[0].AccountName)
	suite.Equal(suite.incomeAccount.Name, posted.Lines[1].AccountName)

	suite.mockAuthorizer.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournal_AuthorizationFail() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date: time.Now(),
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(50)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(50)},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	posted, err := suite.service.PostJournal(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(posted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal")
}

func (suite *JournalServiceTestSuite) TestPostJournal_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date: time.Now(),
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromFloat(99.99)},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()

	posted, err := suite.service.PostJournal(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	// The error carries the exact delta between the sides
	suite.Contains(err.Error(), "0.01")
	suite.Nil(posted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal")
}

func (suite *JournalServiceTestSuite) TestPostJournal_BothSidesSet() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date: time.Now(),
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(100)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()

	posted, err := suite.service.PostJournal(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(posted)
}

func (suite *JournalServiceTestSuite) TestPostJournal_SingleAccount() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date: time.Now(),
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.cashAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()

	posted, err := suite.service.PostJournal(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrJournalMinAccounts)
	suite.Nil(posted)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountByIDs")
}

func (suite *JournalServiceTestSuite) TestPostJournal_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.liabilityAccount
	inactive.IsActive = false

	req := dto.CreateJournalRequest{
		Date: time.Now(),
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: inactive.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
		inactive.AccountID:          inactive,
	}
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.companyID, mock.AnythingOfType("[]string"), suite.userID).Return(accountsMap, nil).Once()

	posted, err := suite.service.PostJournal(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "inactive")
	suite.Nil(posted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal")
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_WrongCompany() {
	ctx := context.Background()
	journalID := uuid.NewString()
	otherCompany := uuid.NewString()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(&domain.Journal{
		JournalID: journalID,
		CompanyID: otherCompany,
		Status:    domain.JournalPosted,
	}, nil).Once()

	journal, err := suite.service.GetJournalByID(ctx, suite.companyID, journalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(journal)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_Success() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.Journal{
		JournalID:   originalID,
		CompanyID:   suite.companyID,
		JournalDate: time.Now().AddDate(0, 0, -1),
		Notes:       "Rent for March",
		Status:      domain.JournalPosted,
		Amount:      decimal.NewFromInt(250),
	}
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), JournalID: originalID, AccountID: suite.cashAccount.AccountID, AccountName: "Cash", Debit: decimal.NewFromInt(250)},
		{LineID: uuid.NewString(), JournalID: originalID, AccountID: suite.incomeAccount.AccountID, AccountName: "Sales Income", Credit: decimal.NewFromInt(250)},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, originalID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, originalID).Return(originalLines, nil).Once()

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:   suite.cashAccount,
		suite.incomeAccount.AccountID: suite.incomeAccount,
	}
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.companyID, mock.AnythingOfType("[]string"), suite.userID).Return(accountsMap, nil).Once()

	// Mirrored lines undo the original balance movement exactly; the reversing
	// journal and the status flip of the original travel in one repo call
	suite.mockJournalRepo.On("SaveReversal", ctx,
		mock.MatchedBy(func(j domain.Journal) bool {
			return j.OriginalJournalID != nil && *j.OriginalJournalID == originalID
		}),
		mock.MatchedBy(func(lines []domain.JournalLine) bool {
			return len(lines) == 2 &&
				lines[0].Credit.Equal(decimal.NewFromInt(250)) &&
				lines[1].Debit.Equal(decimal.NewFromInt(250))
		}),
		mock.AnythingOfType("[]domain.LedgerEntry"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(-250)) &&
				changes[suite.incomeAccount.AccountID].Equal(decimal.NewFromInt(-250))
		}),
		originalID,
	).Return(nil).Once()

	reversing, err := suite.service.ReverseJournal(ctx, suite.companyID, originalID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversing)
	suite.Equal(domain.JournalPosted, reversing.Status)
	suite.Require().NotNil(reversing.OriginalJournalID)
	suite.Equal(originalID, *reversing.OriginalJournalID)
	suite.Contains(reversing.Notes, "Reversal of")
	suite.True(reversing.Amount.Equal(original.Amount))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_ConcurrentReversalConflicts() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.Journal{
		JournalID:   originalID,
		CompanyID:   suite.companyID,
		JournalDate: time.Now().AddDate(0, 0, -1),
		Status:      domain.JournalPosted,
		Amount:      decimal.NewFromInt(100),
	}
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), JournalID: originalID, AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
		{LineID: uuid.NewString(), JournalID: originalID, AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(100)},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, originalID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, originalID).Return(originalLines, nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.companyID, mock.AnythingOfType("[]string"), suite.userID).Return(map[string]domain.Account{
		suite.cashAccount.AccountID:   suite.cashAccount,
		suite.incomeAccount.AccountID: suite.incomeAccount,
	}, nil).Once()

	// A second reversal raced us: the guarded status flip inside the repo
	// transaction finds the original no longer POSTED and nothing commits
	suite.mockJournalRepo.On("SaveReversal", ctx,
		mock.AnythingOfType("domain.Journal"),
		mock.AnythingOfType("[]domain.JournalLine"),
		mock.AnythingOfType("[]domain.LedgerEntry"),
		mock.Anything,
		originalID,
	).Return(fmt.Errorf("%w: journal %s is no longer in POSTED status", apperrors.ErrConflict, originalID)).Once()

	reversing, err := suite.service.ReverseJournal(ctx, suite.companyID, originalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(reversing)
	// No separate status update exists for a failed reversal to strand
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal")
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_SaveFailureWritesNothingElse() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.Journal{
		JournalID:   originalID,
		CompanyID:   suite.companyID,
		JournalDate: time.Now().AddDate(0, 0, -1),
		Status:      domain.JournalPosted,
		Amount:      decimal.NewFromInt(100),
	}
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), JournalID: originalID, AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
		{LineID: uuid.NewString(), JournalID: originalID, AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(100)},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, originalID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, originalID).Return(originalLines, nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.companyID, mock.AnythingOfType("[]string"), suite.userID).Return(map[string]domain.Account{
		suite.cashAccount.AccountID:   suite.cashAccount,
		suite.incomeAccount.AccountID: suite.incomeAccount,
	}, nil).Once()

	suite.mockJournalRepo.On("SaveReversal", ctx,
		mock.AnythingOfType("domain.Journal"),
		mock.AnythingOfType("[]domain.JournalLine"),
		mock.AnythingOfType("[]domain.LedgerEntry"),
		mock.Anything,
		originalID,
	).Return(apperrors.NewAppError(500, "failed to commit reversal of journal "+originalID, nil)).Once()

	reversing, err := suite.service.ReverseJournal(ctx, suite.companyID, originalID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(reversing)
	// The reversing journal and the status flip live in the same transaction,
	// so a failed SaveReversal leaves no committed reversing journal behind
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal")
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_NotPosted() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.Journal{
		JournalID: originalID,
		CompanyID: suite.companyID,
		Status:    domain.JournalReversed,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, originalID).Return(original, nil).Once()

	reversing, err := suite.service.ReverseJournal(ctx, suite.companyID, originalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(reversing)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_AlreadyAReversal() {
	ctx := context.Background()
	originalID := uuid.NewString()
	someOtherID := uuid.NewString()
	original := &domain.Journal{
		JournalID:         originalID,
		CompanyID:         suite.companyID,
		Status:            domain.JournalPosted,
		OriginalJournalID: &someOtherID,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, originalID).Return(original, nil).Once()

	reversing, err := suite.service.ReverseJournal(ctx, suite.companyID, originalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(reversing)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal")
}

func (suite *JournalServiceTestSuite) TestListJournals_DefaultLimit() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("ListJournalsByCompany", ctx, suite.companyID, 20, (*string)(nil), false).
		Return([]domain.Journal{}, nil, nil).Once()

	resp, err := suite.service.ListJournals(ctx, suite.companyID, suite.userID, dto.ListJournalsParams{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Empty(resp.Journals)
	suite.Nil(resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
