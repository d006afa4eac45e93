package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/velorent/velorent-auth/internal/model"
)

var _ model.UserInfoStore = (*UserInfoRepository)(nil)

type UserInfoRepository struct {
	db DB
}

func NewUserInfoRepository(db DB) *UserInfoRepository {
	return &UserInfoRepository{
		db: db,
	}
}

func (r *UserInfoRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (model.UserInfo, error) {
	var info model.UserInfo
	query := `SELECT user_id, birth_date, national_id, phone FROM user_info WHERE user_id = $1`

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&info.UserID, &info.BirthDate, &info.NationalID, &info.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.UserInfo{}, model.ErrNotFound
		}
		return model.UserInfo{}, fmt.Errorf("failed to get user info: %w", err)
	}

	return info, nil
}

func (r *UserInfoRepository) UpdatePhone(ctx context.Context, userID uuid.UUID, phone string) error {
	query := `UPDATE user_info SET phone = $2 WHERE user_id = $1`

	tag, err := r.db.Exec(ctx, query, userID, phone)
	if err != nil {
		return fmt.Errorf("failed to update phone: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
