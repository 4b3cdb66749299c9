package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finbook-app/finbook_backend/internal/apperrors"
	"github.com/finbook-app/finbook_backend/internal/core/domain"
	portsrepo "github.com/finbook-app/finbook_backend/internal/core/ports/repositories"
	portssvc "github.com/finbook-app/finbook_backend/internal/core/ports/services"
	"github.com/finbook-app/finbook_backend/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const apiTokenPrefix = "fbk_"

// apiTokenService implements the APITokenSvc interface
type apiTokenService struct {
	BaseService
	tokenRepo portsrepo.APITokenRepository
}

// NewAPITokenService creates a new instance of apiTokenService
func NewAPITokenService(tokenRepo portsrepo.APITokenRepository) portssvc.APITokenSvc {
	return &apiTokenService{
		tokenRepo: tokenRepo,
	}
}

// Ensure apiTokenService implements the APITokenSvc interface
var _ portssvc.APITokenSvc = (*apiTokenService)(nil)

// CreateToken generates a new API token for the user. The plaintext embeds
// the token ID so validation can look up the record directly instead of
// scanning all hashes; only the bcrypt hash of the secret half is stored.
func (s *apiTokenService) CreateToken(ctx context.Context, userID, name string, expiresIn *time.Duration) (string, *domain.APIToken, error) {
	if userID == "" {
		return "", nil, fmt.Errorf("%w: user ID is required", apperrors.ErrValidation)
	}
	if name == "" {
		return "", nil, fmt.Errorf("%w: token name is required", apperrors.ErrValidation)
	}

	secret, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	secretHash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash token: %w", err)
	}

	var expiresAt *time.Time
	if expiresIn != nil {
		expiry := time.Now().Add(*expiresIn)
		expiresAt = &expiry
	}

	apiToken := &domain.APIToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		TokenHash: string(secretHash),
		ExpiresAt: expiresAt,
	}

	if err := s.tokenRepo.Create(ctx, apiToken); err != nil {
		return "", nil, fmt.Errorf("failed to save token: %w", err)
	}

	// The plaintext token is only available here, never again
	plaintext := apiTokenPrefix + apiToken.ID + "." + secret
	return plaintext, apiToken, nil
}

// ListTokens returns all API tokens for a user
func (s *apiTokenService) ListTokens(ctx context.Context, userID string) ([]domain.APIToken, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", apperrors.ErrValidation)
	}

	tokens, err := s.tokenRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}

	return tokens, nil
}

// RevokeToken deletes a specific API token for a user
func (s *apiTokenService) RevokeToken(ctx context.Context, userID, tokenID string) error {
	if userID == "" || tokenID == "" {
		return fmt.Errorf("%w: user ID and token ID are required", apperrors.ErrValidation)
	}

	// Verify the token belongs to the user before deleting
	token, err := s.tokenRepo.FindByID(ctx, tokenID)
	if err != nil {
		return err
	}
	if token.UserID != userID {
		return apperrors.ErrNotFound // Obscure existence
	}

	if err := s.tokenRepo.Delete(ctx, tokenID); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// ValidateToken checks a plaintext token and returns the owning user ID.
func (s *apiTokenService) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	tokenID, secret, err := splitAPIToken(tokenString)
	if err != nil {
		return "", err
	}

	token, err := s.tokenRepo.FindByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrUnauthorized
		}
		return "", fmt.Errorf("failed to look up token: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(token.TokenHash), []byte(secret)); err != nil {
		return "", apperrors.ErrUnauthorized
	}

	if token.IsExpired() {
		// Auto-revoke expired tokens
		if err := s.tokenRepo.Delete(ctx, token.ID); err != nil {
			s.LogWarn(ctx, "Failed to delete expired API token", "token_id", token.ID, "error", err.Error())
		}
		return "", fmt.Errorf("%w: token has expired", apperrors.ErrUnauthorized)
	}

	token.UpdateLastUsed()
	if err := s.tokenRepo.Update(ctx, token); err != nil {
		// Validation still succeeds; last_used_at is best effort
		s.LogWarn(ctx, "Failed to update API token last_used_at", "token_id", token.ID, "error", err.Error())
	}

	return token.UserID, nil
}

// splitAPIToken parses "fbk_<tokenID>.<secret>".
func splitAPIToken(tokenString string) (tokenID string, secret string, err error) {
	if !strings.HasPrefix(tokenString, apiTokenPrefix) {
		return "", "", apperrors.ErrUnauthorized
	}
	rest := strings.TrimPrefix(tokenString, apiTokenPrefix)
	idx := strings.IndexByte(rest, '.')
	if idx <= 0 || idx == len(rest)-1 {
		return "", "", apperrors.ErrUnauthorized
	}
	return rest[:idx], rest[idx+1:], nil
}
