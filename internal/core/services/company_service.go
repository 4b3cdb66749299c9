package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbook-app/finbook_backend/internal/apperrors"
	"github.com/finbook-app/finbook_backend/internal/core/domain"
	portsrepo "github.com/finbook-app/finbook_backend/internal/core/ports/repositories"
	portssvc "github.com/finbook-app/finbook_backend/internal/core/ports/services"
	"github.com/finbook-app/finbook_backend/internal/middleware"
	"github.com/google/uuid"
)

// CompanyService handles business logic related to companies and memberships.
type CompanyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(cr portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &CompanyService{
		companyRepo: cr,
	}
}

// Ensure CompanyService implements the portssvc.CompanySvcFacade interface
var _ portssvc.CompanySvcFacade = (*CompanyService)(nil)

// CreateCompany creates a new company and makes the creator the initial admin.
func (s *CompanyService) CreateCompany(ctx context.Context, name, description, creatorUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	newCompanyID := uuid.NewString()

	company := domain.Company{
		CompanyID:   newCompanyID,
		Name:        name,
		Description: description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		logger.Error("Failed to save company in repository", slog.String("error", err.Error()), slog.String("company_name", name))
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	// Add the creator as the initial admin
	membership := domain.UserCompany{
		UserID:    creatorUserID,
		CompanyID: newCompanyID,
		Role:      domain.RoleAdmin,
		JoinedAt:  now,
	}
	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		logger.Error("Failed to add creator as admin to new company", slog.String("error", err.Error()), slog.String("company_id", newCompanyID), slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to add creator membership: %w", err)
	}

	logger.Info("Company created successfully", slog.String("company_id", newCompanyID), slog.String("creator_user_id", creatorUserID))
	return &company, nil
}

// AddUserToCompany adds a user to a company with a specific role.
func (s *CompanyService) AddUserToCompany(ctx context.Context, addingUserID, targetUserID, companyID string, role domain.UserCompanyRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Only admins can manage membership
	if err := s.AuthorizeUserAction(ctx, addingUserID, companyID, domain.RoleAdmin); err != nil {
		return err // Return auth error (NotFound or Forbidden)
	}

	now := time.Now()
	membership := domain.UserCompany{
		UserID:    targetUserID,
		CompanyID: companyID,
		Role:      role,
		JoinedAt:  now,
	}

	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		logger.Error("Failed to add user to company in repository", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("company_id", companyID))
		return fmt.Errorf("failed to add user %s to company %s: %w", targetUserID, companyID, err)
	}

	logger.Info("User added to company successfully", slog.String("target_user_id", targetUserID), slog.String("company_id", companyID), slog.String("role", string(role)), slog.String("added_by_user_id", addingUserID))
	return nil
}

// ListUserCompanies retrieves the list of companies a given user belongs to.
func (s *CompanyService) ListUserCompanies(ctx context.Context, userID string, includeDisabled bool) ([]domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	companies, err := s.companyRepo.ListCompaniesByUserID(ctx, userID)
	if err != nil {
		logger.Error("Failed to list companies for user from repository", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list companies for user %s: %w", userID, err)
	}

	if !includeDisabled {
		active := companies[:0]
		for _, c := range companies {
			if c.IsActive {
				active = append(active, c)
			}
		}
		companies = active
	}

	if companies == nil {
		return []domain.Company{}, nil // Return empty slice, not nil
	}

	logger.Debug("Companies listed successfully for user", slog.String("user_id", userID), slog.Int("count", len(companies)))
	return companies, nil
}

// FindCompanyByID retrieves a company by its ID.
func (s *CompanyService) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find company by ID in repository", slog.String("error", err.Error()), slog.String("company_id", companyID))
		}
		return nil, err // Propagate error (including NotFound)
	}
	logger.Debug("Company found by ID", slog.String("company_id", companyID))
	return company, nil
}

// AuthorizeUserAction checks if a user has the required role (or higher) within a specific company.
// Returns apperrors.ErrUnauthorized when the identifiers are missing,
// apperrors.ErrNotFound if the user is not a member (obscuring company
// existence), apperrors.ErrForbidden if the member lacks the required role,
// and nil if authorized.
func (s *CompanyService) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if userID == "" || companyID == "" {
		logger.Warn("Authorization failed: missing user or company identifier")
		return apperrors.ErrUnauthorized
	}

	membership, err := s.companyRepo.FindUserCompanyRole(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authorization failed: user or company not found, or user not a member", slog.String("user_id", userID), slog.String("company_id", companyID))
			// Return NotFound to avoid revealing company existence
			return apperrors.ErrNotFound
		}
		logger.Error("Failed to check user company role in repository", slog.String("error", err.Error()), slog.String("user_id", userID), slog.String("company_id", companyID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if membership.Role == domain.RoleRemoved {
		logger.Warn("Authorization failed: user was removed from company", slog.String("user_id", userID), slog.String("company_id", companyID))
		return apperrors.ErrNotFound
	}

	// ADMIN has all permissions
	if membership.Role == domain.RoleAdmin {
		return nil
	}

	// MEMBER covers write access, which also implies read access
	if membership.Role == requiredRole {
		return nil
	}
	if membership.Role == domain.RoleMember && requiredRole == domain.RoleReadOnly {
		return nil
	}

	logger.Warn("Authorization failed: user lacks required role", slog.String("user_id", userID), slog.String("company_id", companyID), slog.String("user_role", string(membership.Role)), slog.String("required_role", string(requiredRole)))
	return apperrors.ErrForbidden
}
