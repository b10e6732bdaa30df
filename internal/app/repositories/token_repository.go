package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/demir/classhub/internal/app/models"
	"github.com/demir/classhub/internal/pkg/apperrors"
	"github.com/demir/classhub/internal/pkg/dberrors"
	"github.com/demir/classhub/internal/pkg/logger"
)

// TokenRepository handles database operations for refresh tokens.
// Rotation is delete based: consuming a token removes its row and a
// replacement row is inserted, so a token can never be replayed.
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository instance.
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a new refresh token.
func (r *TokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	query := r.sb.Insert("refresh_tokens").
		Columns("user_id", "token", "expires_at").
		Values(token.UserID, token.Token, token.ExpiresAt).
		Suffix("RETURNING id")

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&token.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "refresh_tokens_token_key") {
			logger.Warn().Int64("userId", token.UserID).Msg("Refresh token collision on insert")
			return apperrors.ErrConflict
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetByToken retrieves a refresh token by its opaque value.
func (r *TokenRepository) GetByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := r.sb.Select("id", "user_id", "token", "expires_at", "created_at").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rt := &models.RefreshToken{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error scanning row: %w", err)
	}

	return rt, nil
}

// Delete removes a single refresh token. Used when rotating or on logout.
func (r *TokenRepository) Delete(ctx context.Context, token string) error {
	query := r.sb.Delete("refresh_tokens").
		Where(squirrel.Eq{"token": token})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}

	return nil
}

// DeleteByUserID removes every refresh token belonging to a user, ending
// all of their sessions. Called after a password change.
func (r *TokenRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	query := r.sb.Delete("refresh_tokens").
		Where(squirrel.Eq{"user_id": userID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// DeleteExpired purges refresh tokens past their expiry and reports how
// many rows were removed.
func (r *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := r.sb.Delete("refresh_tokens").
		Where(squirrel.Lt{"expires_at": time.Now()})

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return result.RowsAffected(), nil
}
