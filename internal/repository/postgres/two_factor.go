package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/velorent/velorent-auth/internal/model"
)

var _ model.TwoFactorCodeStore = (*TwoFactorCodeRepository)(nil)

type TwoFactorCodeRepository struct {
	db DB
}

func NewTwoFactorCodeRepository(db DB) *TwoFactorCodeRepository {
	return &TwoFactorCodeRepository{db: db}
}

// Replace swaps the account's live code inside one transaction so there is
// never a window with zero or two codes. A racing redeem simply sees the old
// row gone and fails, which the caller retries.
func (r *TwoFactorCodeRepository) Replace(ctx context.Context, code model.TwoFactorCode) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, `DELETE FROM codes_2fa WHERE user_id = $1`, code.UserID); err != nil {
		return fmt.Errorf("failed to delete previous code: %w", err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO codes_2fa (user_id, code) VALUES ($1, $2)`,
		code.UserID, code.Code,
	); err != nil {
		return fmt.Errorf("failed to insert code: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit code replacement: %w", err)
	}
	return nil
}

func (r *TwoFactorCodeRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (model.TwoFactorCode, error) {
	var code model.TwoFactorCode
	query := `SELECT user_id, code FROM codes_2fa WHERE user_id = $1`

	err := r.db.QueryRow(ctx, query, userID).Scan(&code.UserID, &code.Code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.TwoFactorCode{}, model.ErrNotFound
		}
		return model.TwoFactorCode{}, fmt.Errorf("failed to get two-factor code: %w", err)
	}

	return code, nil
}
