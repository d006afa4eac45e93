package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Two-factor code bounds. Codes are drawn uniformly from this range.
const (
	TwoFactorCodeMin = 10000
	TwoFactorCodeMax = 999999
)

// TwoFactorCodeStore persists at most one live login code per account.
type TwoFactorCodeStore interface {
	// Replace removes any live code for the account and inserts the new one
	// as a single atomic operation.
	Replace(ctx context.Context, code TwoFactorCode) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (TwoFactorCode, error)
}

// TwoFactorCode is a numeric login challenge. It is consumed by comparison
// and lives until replaced by the next issue.
type TwoFactorCode struct {
	UserID uuid.UUID
	Code   int
}

// PasswordResetCodeStore persists at most one live reset code per account.
type PasswordResetCodeStore interface {
	// Replace removes any live code for the account and inserts the new one
	// as a single atomic operation.
	Replace(ctx context.Context, code PasswordResetCode) error
	GetByCode(ctx context.Context, code string) (PasswordResetCode, error)
	// Consume rewrites the account's credential material and deletes the code
	// row in one transaction, so a code redeems exactly once.
	Consume(ctx context.Context, userID uuid.UUID, passwordHash, salt string) error
}

// PasswordResetCode is a 64-char hex challenge valid for a configured window
// after CreatedAt.
type PasswordResetCode struct {
	UserID    uuid.UUID
	Code      string
	CreatedAt time.Time
}

// Expired reports whether the code fell out of its validity window.
func (c PasswordResetCode) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.CreatedAt) >= ttl
}
