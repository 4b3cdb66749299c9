package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbook-app/finbook_backend/internal/apperrors"
	"github.com/finbook-app/finbook_backend/internal/core/domain"
	portsrepo "github.com/finbook-app/finbook_backend/internal/core/ports/repositories"
	portssvc "github.com/finbook-app/finbook_backend/internal/core/ports/services"
	"github.com/finbook-app/finbook_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// --- Stub LedgerReader ---
// A stub is enough here: report computations are pure functions of the data
// the reader returns, so the tests just vary the canned collections.
type StubLedgerReader struct {
	Accounts  []domain.Account
	Entries   []domain.LedgerEntry
	Expenses  []domain.Expense
	Projects  []domain.Project
	Sales     []domain.Sale
	Assets    []domain.FixedAsset
	Inventory []domain.InventoryItem

	Err error
}

var _ portsrepo.LedgerReader = (*StubLedgerReader)(nil)

func (s *StubLedgerReader) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	return s.Accounts, s.Err
}
func (s *StubLedgerReader) ListEntries(ctx context.Context, companyID string, asOf time.Time) ([]domain.LedgerEntry, error) {
	return s.Entries, s.Err
}
func (s *StubLedgerReader) ListExpenses(ctx context.Context, companyID string, asOf time.Time) ([]domain.Expense, error) {
	return s.Expenses, s.Err
}
func (s *StubLedgerReader) ListProjects(ctx context.Context, companyID string, asOf time.Time) ([]domain.Project, error) {
	return s.Projects, s.Err
}
func (s *StubLedgerReader) ListSales(ctx context.Context, companyID string, asOf time.Time) ([]domain.Sale, error) {
	return s.Sales, s.Err
}
func (s *StubLedgerReader) ListFixedAssets(ctx context.Context, companyID string, asOf time.Time) ([]domain.FixedAsset, error) {
	return s.Assets, s.Err
}
func (s *StubLedgerReader) ListInventoryItems(ctx context.Context, companyID string) ([]domain.InventoryItem, error) {
	return s.Inventory, s.Err
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	reader         *StubLedgerReader
	mockAuthorizer *MockCompanyAuthorizer
	service        portssvc.ReportingService
	companyID      string
	userID         string
	asOf           time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.reader = &StubLedgerReader{}
	suite.mockAuthorizer = new(MockCompanyAuthorizer)
	suite.service = services.NewReportingService(suite.reader, services.WithReportingCompanyAuthorizer(suite.mockAuthorizer))
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.asOf = time.Now()

	suite.mockAuthorizer.On("AuthorizeUserAction", context.Background(), suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil)
}

func strPtr(s string) *string { return &s }

func lineValue(lines []domain.ReportLine, label string) decimal.Decimal {
	for _, l := range lines {
		if l.Label == label {
			return l.Value
		}
	}
	return decimal.NewFromInt(-1)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_CashBasis() {
	projectID := uuid.NewString()
	suite.reader.Projects = []domain.Project{{
		ProjectID:       projectID,
		CompanyID:       suite.companyID,
		Name:            "Warehouse fit-out",
		Status:          domain.ProjectActive,
		AgreementAmount: decimal.NewFromInt(10000),
		AdvancePaid:     decimal.NewFromInt(2000),
		Payments: []domain.Payment{
			{PaymentID: uuid.NewString(), ProjectID: projectID, Amount: decimal.NewFromInt(1000)},
		},
	}}
	suite.reader.Sales = []domain.Sale{{
		SaleID:        uuid.NewString(),
		Subtotal:      decimal.NewFromInt(100),
		Tax:           decimal.NewFromInt(10),
		Total:         decimal.NewFromInt(110),
		PaymentStatus: domain.SalePaid,
	}}
	suite.reader.Entries = []domain.LedgerEntry{{
		EntryID: uuid.NewString(),
		Type:    domain.EntryIncome,
		Amount:  decimal.NewFromInt(50),
	}}

	pnl, err := suite.service.ProfitAndLoss(context.Background(), suite.companyID, suite.asOf, domain.CashBasis, suite.userID)

	suite.Require().NoError(err)
	// Project payments (1000) + shop sales at total (110) + other income (50).
	// The advance is not a payment row, so cash view counts 1000, not 3000.
	suite.True(pnl.Revenue.Equal(decimal.NewFromInt(1160)), "revenue was %s", pnl.Revenue)
	suite.True(pnl.DirectCosts.IsZero(), "cash basis carries no COGS")
	suite.True(pnl.NetProfit.Equal(decimal.NewFromInt(1160)))
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_AccrualOnCompletion() {
	completed := uuid.NewString()
	active := uuid.NewString()
	suite.reader.Projects = []domain.Project{
		{
			ProjectID:       completed,
			Name:            "Office renovation",
			Status:          domain.ProjectCompleted,
			AgreementAmount: decimal.NewFromInt(5000),
			AdvancePaid:     decimal.NewFromInt(1000),
		},
		{
			ProjectID:       active,
			Name:            "Warehouse fit-out",
			Status:          domain.ProjectActive,
			AgreementAmount: decimal.NewFromInt(10000),
			AdvancePaid:     decimal.NewFromInt(2000),
		},
	}
	suite.reader.Sales = []domain.Sale{{
		SaleID:   uuid.NewString(),
		Subtotal: decimal.NewFromInt(100),
		Tax:      decimal.NewFromInt(10),
		Total:    decimal.NewFromInt(110),
		Items: []domain.SaleItem{
			{SaleItemID: uuid.NewString(), Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50), CostPrice: decimal.NewFromInt(30)},
		},
	}}

	pnl, err := suite.service.ProfitAndLoss(context.Background(), suite.companyID, suite.asOf, domain.AccrualOnCompletion, suite.userID)

	suite.Require().NoError(err)
	// Completed project at agreement amount (5000) + shop sales at subtotal
	// (100). Cash received on the active project is unearned, not revenue.
	suite.True(pnl.Revenue.Equal(decimal.NewFromInt(5100)), "revenue was %s", pnl.Revenue)
	// COGS: 2 units at cost 30
	suite.True(pnl.DirectCosts.Equal(decimal.NewFromInt(60)), "direct costs were %s", pnl.DirectCosts)
	suite.True(pnl.GrossProfit.Equal(decimal.NewFromInt(5040)))
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_AccrualIncludesRawIncomeEntries() {
	suite.reader.Entries = []domain.LedgerEntry{{
		EntryID: uuid.NewString(),
		Type:    domain.EntryIncome,
		Amount:  decimal.NewFromInt(75),
	}}

	pnl, err := suite.service.ProfitAndLoss(context.Background(), suite.companyID, suite.asOf, domain.AccrualOnCompletion, suite.userID)

	suite.Require().NoError(err)
	// A raw INCOME ledger entry has no later recognition point, so both
	// policies count it the moment it hits the books.
	suite.True(pnl.Revenue.Equal(decimal.NewFromInt(75)), "revenue was %s", pnl.Revenue)
	suite.Require().Len(pnl.RevenueBreakdown, 1)
	suite.Equal("Other income", pnl.RevenueBreakdown[0].Label)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_UnpaidExpenseStillAnExpense() {
	suite.reader.Expenses = []domain.Expense{{
		ExpenseID:     uuid.NewString(),
		Category:      "Rent",
		Amount:        decimal.NewFromInt(80),
		PaymentStatus: domain.ExpenseUnpaid,
		Kind:          domain.KindOperatingExpense,
	}}

	pnl, err := suite.service.ProfitAndLoss(context.Background(), suite.companyID, suite.asOf, domain.AccrualOnCompletion, suite.userID)

	suite.Require().NoError(err)
	suite.True(pnl.OperatingExpenses.Equal(decimal.NewFromInt(80)))
	suite.Require().Len(pnl.OpexBreakdown, 1)
	suite.Equal("Rent", pnl.OpexBreakdown[0].Label)
	suite.True(pnl.NetProfit.Equal(decimal.NewFromInt(-80)))
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_InvalidPolicy() {
	pnl, err := suite.service.ProfitAndLoss(context.Background(), suite.companyID, suite.asOf, domain.RecognitionPolicy("MAGIC"), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(pnl)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Balanced() {
	suite.reader.Accounts = []domain.Account{
		{AccountID: uuid.NewString(), Name: "Cash", Type: "CASH", Balance: decimal.NewFromInt(1000), IsActive: true},
		{AccountID: uuid.NewString(), Name: "Owner Capital", Type: "EQUITY", Balance: decimal.NewFromInt(1000), IsActive: true},
	}

	sheet, err := suite.service.GetBalanceSheet(context.Background(), suite.companyID, suite.asOf, nil, suite.userID)

	suite.Require().NoError(err)
	suite.True(sheet.Balanced)
	suite.True(sheet.Imbalance.IsZero())
	suite.True(sheet.TotalAssets.Equal(decimal.NewFromInt(1000)))
	suite.True(sheet.TotalEquity.Equal(decimal.NewFromInt(1000)))
	suite.True(lineValue(sheet.Assets, "Cash & Bank").Equal(decimal.NewFromInt(1000)))
	suite.True(lineValue(sheet.Equity, "Capital").Equal(decimal.NewFromInt(1000)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_ImbalanceSurfacedNotFatal() {
	suite.reader.Accounts = []domain.Account{
		{AccountID: uuid.NewString(), Name: "Cash", Type: "CASH", Balance: decimal.NewFromInt(1000), IsActive: true},
		{AccountID: uuid.NewString(), Name: "Owner Capital", Type: "EQUITY", Balance: decimal.NewFromInt(900), IsActive: true},
	}

	sheet, err := suite.service.GetBalanceSheet(context.Background(), suite.companyID, suite.asOf, nil, suite.userID)

	suite.Require().NoError(err, "an unbalanced sheet is still returned")
	suite.False(sheet.Balanced)
	suite.True(sheet.Imbalance.Equal(decimal.NewFromInt(100)))
	suite.NotEmpty(sheet.Warnings)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_SubUnitImbalanceTolerated() {
	suite.reader.Accounts = []domain.Account{
		{AccountID: uuid.NewString(), Name: "Cash", Type: "CASH", Balance: decimal.NewFromFloat(1000.50), IsActive: true},
		{AccountID: uuid.NewString(), Name: "Owner Capital", Type: "EQUITY", Balance: decimal.NewFromInt(1000), IsActive: true},
	}

	sheet, err := suite.service.GetBalanceSheet(context.Background(), suite.companyID, suite.asOf, nil, suite.userID)

	suite.Require().NoError(err)
	suite.True(sheet.Balanced, "imbalance below one currency unit is tolerated")
	suite.True(sheet.Imbalance.Equal(decimal.NewFromFloat(0.50)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_UnearnedRevenueForActiveProjects() {
	projectID := uuid.NewString()
	suite.reader.Projects = []domain.Project{{
		ProjectID:   projectID,
		Name:        "Warehouse fit-out",
		Status:      domain.ProjectActive,
		AdvancePaid: decimal.NewFromInt(500),
	}}
	suite.reader.Accounts = []domain.Account{
		{AccountID: uuid.NewString(), Name: "Cash", Type: "CASH", Balance: decimal.NewFromInt(1500), IsActive: true},
		{AccountID: uuid.NewString(), Name: "Owner Capital", Type: "EQUITY", Balance: decimal.NewFromInt(1000), IsActive: true},
	}

	sheet, err := suite.service.GetBalanceSheet(context.Background(), suite.companyID, suite.asOf, nil, suite.userID)

	suite.Require().NoError(err)
	suite.True(lineValue(sheet.Liabilities, "Unearned Revenue").Equal(decimal.NewFromInt(500)))
	suite.True(sheet.Balanced)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_DepreciatedFixedAssets() {
	purchase := time.Date(suite.asOf.Year()-2, time.March, 1, 0, 0, 0, 0, time.UTC)
	suite.reader.Assets = []domain.FixedAsset{{
		AssetID:      uuid.NewString(),
		Name:         "Delivery van",
		Value:        decimal.NewFromInt(1000),
		PurchaseDate: purchase,
	}}

	sheet, err := suite.service.GetBalanceSheet(context.Background(), suite.companyID, suite.asOf, nil, suite.userID)

	suite.Require().NoError(err)
	// Two calendar years at 15% straight line: 1000 - 300
	suite.True(lineValue(sheet.Assets, "Fixed Assets (net)").Equal(decimal.NewFromInt(700)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_DebtNettingPerCounterparty() {
	customerID := uuid.NewString()
	vendorID := uuid.NewString()
	suite.reader.Entries = []domain.LedgerEntry{
		// Customer took 100, repaid 150: net is negative and floors at zero,
		// never flipping into a payable. Repayment without an account link
		// adjusts cash upward.
		{EntryID: uuid.NewString(), Type: domain.EntryDebtTaken, Amount: decimal.NewFromInt(100), CustomerID: &customerID},
		{EntryID: uuid.NewString(), Type: domain.EntryDebtRepaid, Amount: decimal.NewFromInt(150), CustomerID: &customerID},
		// Vendor debt outstanding
		{EntryID: uuid.NewString(), Type: domain.EntryDebtTaken, Amount: decimal.NewFromInt(200), VendorID: &vendorID},
		// Debt with no counterparty is a long-term loan
		{EntryID: uuid.NewString(), Type: domain.EntryDebtTaken, Amount: decimal.NewFromInt(300)},
	}

	sheet, err := suite.service.GetBalanceSheet(context.Background(), suite.companyID, suite.asOf, nil, suite.userID)

	suite.Require().NoError(err)
	suite.True(lineValue(sheet.Assets, "Accounts Receivable").IsZero())
	suite.True(lineValue(sheet.Liabilities, "Accounts Payable").Equal(decimal.NewFromInt(200)))
	suite.True(lineValue(sheet.Liabilities, "Long-term Loans").Equal(decimal.NewFromInt(300)))
	suite.True(lineValue(sheet.Assets, "Cash & Bank").Equal(decimal.NewFromInt(150)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_CompletedProjectReceivable() {
	projectID := uuid.NewString()
	suite.reader.Projects = []domain.Project{{
		ProjectID:       projectID,
		Name:            "Office renovation",
		Status:          domain.ProjectCompleted,
		AgreementAmount: decimal.NewFromInt(10000),
		AdvancePaid:     decimal.NewFromInt(2000),
		Payments: []domain.Payment{
			{PaymentID: uuid.NewString(), ProjectID: projectID, Amount: decimal.NewFromInt(3000)},
		},
	}}

	sheet, err := suite.service.GetBalanceSheet(context.Background(), suite.companyID, suite.asOf, nil, suite.userID)

	suite.Require().NoError(err)
	suite.True(lineValue(sheet.Assets, "Accounts Receivable").Equal(decimal.NewFromInt(5000)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_WorkInProgressAndInventory() {
	projectID := uuid.NewString()
	suite.reader.Projects = []domain.Project{{
		ProjectID: projectID,
		Name:      "Warehouse fit-out",
		Status:    domain.ProjectActive,
	}}
	suite.reader.Expenses = []domain.Expense{{
		ExpenseID:     uuid.NewString(),
		Category:      "Materials",
		Amount:        decimal.NewFromInt(400),
		PaymentStatus: domain.ExpensePaid,
		Kind:          domain.KindDirectCost,
		ProjectID:     &projectID,
	}}
	suite.reader.Inventory = []domain.InventoryItem{{
		ItemID:        uuid.NewString(),
		Name:          "Paint",
		InStock:       decimal.NewFromInt(10),
		PurchasePrice: decimal.NewFromInt(25),
	}}

	sheet, err := suite.service.GetBalanceSheet(context.Background(), suite.companyID, suite.asOf, nil, suite.userID)

	suite.Require().NoError(err)
	suite.True(lineValue(sheet.Assets, "Work In Progress").Equal(decimal.NewFromInt(400)))
	suite.True(lineValue(sheet.Assets, "Inventory").Equal(decimal.NewFromInt(250)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_ExpenseWithUnknownProjectSkipped() {
	ghost := uuid.NewString()
	suite.reader.Expenses = []domain.Expense{{
		ExpenseID:     uuid.NewString(),
		Category:      "Materials",
		Amount:        decimal.NewFromInt(400),
		PaymentStatus: domain.ExpensePaid,
		Kind:          domain.KindDirectCost,
		ProjectID:     &ghost,
	}}

	sheet, err := suite.service.GetBalanceSheet(context.Background(), suite.companyID, suite.asOf, nil, suite.userID)

	suite.Require().NoError(err, "a broken project link must not blank out the statement")
	suite.True(lineValue(sheet.Assets, "Work In Progress").IsZero())
	suite.NotEmpty(sheet.Warnings)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_ProjectFilter() {
	projectA := uuid.NewString()
	projectB := uuid.NewString()
	suite.reader.Projects = []domain.Project{
		{ProjectID: projectA, Name: "A", Status: domain.ProjectCompleted, AgreementAmount: decimal.NewFromInt(1000)},
		{ProjectID: projectB, Name: "B", Status: domain.ProjectCompleted, AgreementAmount: decimal.NewFromInt(2000)},
	}

	sheet, err := suite.service.GetBalanceSheet(context.Background(), suite.companyID, suite.asOf, strPtr(projectA), suite.userID)

	suite.Require().NoError(err)
	suite.True(lineValue(sheet.Assets, "Accounts Receivable").Equal(decimal.NewFromInt(1000)))
}

func (suite *ReportingServiceTestSuite) TestFinancialSummary_CashBasis() {
	projectID := uuid.NewString()
	suite.reader.Projects = []domain.Project{{
		ProjectID: projectID,
		Name:      "Warehouse fit-out",
		Status:    domain.ProjectActive,
		Payments: []domain.Payment{
			{PaymentID: uuid.NewString(), ProjectID: projectID, Amount: decimal.NewFromInt(1000)},
		},
	}}
	suite.reader.Accounts = []domain.Account{
		{AccountID: uuid.NewString(), Name: "Cash", Type: "CASH", Balance: decimal.NewFromInt(1000), IsActive: true},
	}

	summary, err := suite.service.GetFinancialSummary(context.Background(), suite.companyID, suite.asOf, domain.CashBasis, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.CashBasis, summary.Policy)
	suite.True(summary.Performance.Revenue.Equal(decimal.NewFromInt(1000)))
	suite.True(summary.Position.Assets.Equal(decimal.NewFromInt(1000)))
}

func (suite *ReportingServiceTestSuite) TestFinancialSummary_AuthorizationFail() {
	authorizer := new(MockCompanyAuthorizer)
	svc := services.NewReportingService(suite.reader, services.WithReportingCompanyAuthorizer(authorizer))
	authorizer.On("AuthorizeUserAction", context.Background(), suite.userID, suite.companyID, domain.RoleReadOnly).Return(apperrors.ErrForbidden).Once()

	summary, err := svc.GetFinancialSummary(context.Background(), suite.companyID, suite.asOf, domain.CashBasis, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(summary)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
