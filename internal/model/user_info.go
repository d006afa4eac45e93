package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserInfoStore defines persistence operations for account profiles.
type UserInfoStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (UserInfo, error)
	UpdatePhone(ctx context.Context, userID uuid.UUID, phone string) error
}

// UserInfo is the profile attached 1:1 to every non-admin account.
type UserInfo struct {
	UserID     uuid.UUID
	BirthDate  time.Time
	NationalID string
	Phone      *string
}

// Age returns full years elapsed since the birth date.
func (i UserInfo) Age(now time.Time) int {
	years := now.Year() - i.BirthDate.Year()
	anniversary := i.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
