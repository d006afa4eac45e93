package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/velorent/velorent-auth/internal/model"
)

var _ model.PasswordResetCodeStore = (*PasswordResetCodeRepository)(nil)

type PasswordResetCodeRepository struct {
	db DB
}

func NewPasswordResetCodeRepository(db DB) *PasswordResetCodeRepository {
	return &PasswordResetCodeRepository{db: db}
}

// Replace swaps the account's live reset code inside one transaction,
// mirroring the two-factor store.
func (r *PasswordResetCodeRepository) Replace(ctx context.Context, code model.PasswordResetCode) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, `DELETE FROM change_psw_codes WHERE user_id = $1`, code.UserID); err != nil {
		return fmt.Errorf("failed to delete previous reset code: %w", err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO change_psw_codes (user_id, code, created_at) VALUES ($1, $2, NOW())`,
		code.UserID, code.Code,
	); err != nil {
		return fmt.Errorf("failed to insert reset code: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reset code replacement: %w", err)
	}
	return nil
}

func (r *PasswordResetCodeRepository) GetByCode(ctx context.Context, code string) (model.PasswordResetCode, error) {
	var reset model.PasswordResetCode
	query := `SELECT user_id, code, created_at FROM change_psw_codes WHERE code = $1`

	err := r.db.QueryRow(ctx, query, code).Scan(&reset.UserID, &reset.Code, &reset.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PasswordResetCode{}, model.ErrNotFound
		}
		return model.PasswordResetCode{}, fmt.Errorf("failed to get reset code: %w", err)
	}

	return reset, nil
}

// Consume rewrites the account's credential material and removes the code row
// in one transaction, so a redeemed code can never be presented again.
func (r *PasswordResetCodeRepository) Consume(ctx context.Context, userID uuid.UUID, passwordHash, salt string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	tag, err := tx.Exec(ctx,
		`UPDATE users SET password_hash = $2, salt = $3, updated_at = NOW() WHERE id = $1 AND status = 'active'`,
		userID, passwordHash, salt,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM change_psw_codes WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete consumed reset code: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit password change: %w", err)
	}
	return nil
}
