package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/finbook-app/finbook_backend/internal/apperrors"
	"github.com/finbook-app/finbook_backend/internal/core/domain"
	portssvc "github.com/finbook-app/finbook_backend/internal/core/ports/services"
	"github.com/finbook-app/finbook_backend/internal/dto"
	"github.com/finbook-app/finbook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial statements.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers reporting routes nested under a company group.
func registerReportingRoutes(companyGroup *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := companyGroup.Group("/reports")
	{
		reports.GET("/financial-summary", h.getFinancialSummary)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
	}
}

// parseReportParams extracts the shared asOf/policy query parameters.
// asOf defaults to today; the service normalizes it to an end-of-day bound.
func parseReportParams(c *gin.Context) (time.Time, domain.RecognitionPolicy, bool) {
	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	asOf, err := time.Parse("2006-01-02", asOfStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
		return time.Time{}, "", false
	}

	policy := domain.RecognitionPolicy(c.DefaultQuery("policy", string(domain.CashBasis)))
	if !policy.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid policy, expected CASH_BASIS or ACCRUAL_ON_COMPLETION"})
		return time.Time{}, "", false
	}

	return asOf, policy, true
}

// getFinancialSummary godoc
// @Summary Financial summary
// @Description Computes the combined performance (P&L) and position (balance sheet totals) view
// @Description for a company under the selected revenue recognition policy.
// @Tags reports
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   asOf query string false "Report date (YYYY-MM-DD, default today)"
// @Param   policy query string false "Recognition policy: CASH_BASIS (default) or ACCRUAL_ON_COMPLETION"
// @Success 200 {object} dto.FinancialSummaryResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to compute summary"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/financial-summary [get]
func (h *reportingHandler) getFinancialSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf, policy, ok := parseReportParams(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.GetFinancialSummary(c.Request.Context(), companyID, asOf, policy, userID)
	if err != nil {
		handleReportingError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialSummaryResponse(summary, asOf))
}

// getProfitAndLoss godoc
// @Summary Profit and loss statement
// @Description Assembles the P&L statement as of a date under the selected recognition policy,
// @Description with revenue and operating expense breakdowns.
// @Tags reports
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   asOf query string false "Report date (YYYY-MM-DD, default today)"
// @Param   policy query string false "Recognition policy: CASH_BASIS (default) or ACCRUAL_ON_COMPLETION"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to compute P&L"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf, policy, ok := parseReportParams(c)
	if !ok {
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), companyID, asOf, policy, userID)
	if err != nil {
		handleReportingError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report, asOf))
}

// getBalanceSheet godoc
// @Summary Balance sheet
// @Description Assembles the statement of financial position as of a date. Revenue-dependent
// @Description figures always use accrual recognition so the sheet balances against retained earnings.
// @Tags reports
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   asOf query string false "Report date (YYYY-MM-DD, default today)"
// @Param   projectId query string false "Narrow receivables and work-in-progress to one project"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to compute balance sheet"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	asOf, err := time.Parse("2006-01-02", asOfStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}

	var projectID *string
	if pid := c.Query("projectId"); pid != "" {
		projectID = &pid
	}

	report, err := h.reportingService.GetBalanceSheet(c.Request.Context(), companyID, asOf, projectID, userID)
	if err != nil {
		handleReportingError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report, asOf))
}

func handleReportingError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Report computation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
