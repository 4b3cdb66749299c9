package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/finbook-app/finbook_backend/internal/apperrors"
	"github.com/finbook-app/finbook_backend/internal/core/domain"
	portsrepo "github.com/finbook-app/finbook_backend/internal/core/ports/repositories"
	"github.com/finbook-app/finbook_backend/internal/models"
	"github.com/finbook-app/finbook_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAPITokenRepository struct {
	BaseRepository
}

// newPgxAPITokenRepository creates a new PostgreSQL API token repository
func newPgxAPITokenRepository(pool *pgxpool.Pool) portsrepo.APITokenRepository {
	return &PgxAPITokenRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAPITokenRepository implements portsrepo.APITokenRepository
var _ portsrepo.APITokenRepository = (*PgxAPITokenRepository)(nil)

const apiTokenSelectFields = `
	api_token_id, user_id, name, token_hash, last_used_at, expires_at, created_at, updated_at
`

func scanAPITokenRow(row pgx.Row) (*models.APIToken, error) {
	var m models.APIToken
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.TokenHash,
		&m.LastUsedAt,
		&m.ExpiresAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persists a new API token. The token ID is assigned by the caller.
func (r *PgxAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	m := mapping.ToModelAPIToken(*token)
	query := `
		INSERT INTO api_tokens (api_token_id, user_id, name, token_hash, last_used_at, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ID,
		m.UserID,
		m.Name,
		m.TokenHash,
		m.LastUsedAt,
		m.ExpiresAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to create API token", err)
	}
	return nil
}

// FindByID retrieves an API token by its ID.
func (r *PgxAPITokenRepository) FindByID(ctx context.Context, id string) (*domain.APIToken, error) {
	query := `SELECT ` + apiTokenSelectFields + ` FROM api_tokens WHERE api_token_id = $1;`

	m, err := scanAPITokenRow(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find API token by ID", err)
	}

	domainToken := mapping.ToDomainAPIToken(*m)
	return &domainToken, nil
}

// FindByUserID retrieves all API tokens for a specific user, newest first.
func (r *PgxAPITokenRepository) FindByUserID(ctx context.Context, userID string) ([]domain.APIToken, error) {
	query := `SELECT ` + apiTokenSelectFields + ` FROM api_tokens WHERE user_id = $1 ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query API tokens for user "+userID, err)
	}
	defer rows.Close()

	tokens := []models.APIToken{}
	for rows.Next() {
		m, scanErr := scanAPITokenRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan API token row", scanErr)
		}
		tokens = append(tokens, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating API token rows", err)
	}

	return mapping.ToDomainAPITokenSlice(tokens), nil
}

// Update updates an existing API token, typically to record usage.
func (r *PgxAPITokenRepository) Update(ctx context.Context, token *domain.APIToken) error {
	query := `
		UPDATE api_tokens
		SET last_used_at = $2, updated_at = NOW()
		WHERE api_token_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, token.ID, token.LastUsedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update API token", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an API token by ID.
func (r *PgxAPITokenRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM api_tokens WHERE api_token_id = $1;`, id)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete API token", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpired removes all API tokens that expired before the given time.
func (r *PgxAPITokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM api_tokens WHERE expires_at IS NOT NULL AND expires_at < $1;`, before)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete expired API tokens", err)
	}
	return cmdTag.RowsAffected(), nil
}
