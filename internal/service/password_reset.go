package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/velorent/velorent-auth/internal/credential"
	"github.com/velorent/velorent-auth/internal/logger"
	"github.com/velorent/velorent-auth/internal/model"
)

const minPasswordLength = 8

// PasswordReset issues and redeems time-boxed password-change codes.
type PasswordReset struct {
	users       model.UserStore
	codes       model.PasswordResetCodeStore
	mailer      model.Mailer
	frontendURL string
	ttl         time.Duration
	logger      *logger.Logger
}

func NewPasswordReset(
	users model.UserStore,
	codes model.PasswordResetCodeStore,
	mailer model.Mailer,
	frontendURL string,
	ttl time.Duration,
	logger *logger.Logger,
) *PasswordReset {
	return &PasswordReset{
		users:       users,
		codes:       codes,
		mailer:      mailer,
		frontendURL: frontendURL,
		ttl:         ttl,
		logger:      logger,
	}
}

// Request emails the account a reset link carrying a fresh code. An unknown
// email surfaces as an error; the distinct response is an acknowledged
// account-existence leak kept for product reasons.
func (s *PasswordReset) Request(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	code, err := credential.NewResetCode()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	if err := s.codes.Replace(ctx, model.PasswordResetCode{UserID: user.ID, Code: code}); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	link := fmt.Sprintf("%s/changepassword?code=%s", strings.TrimRight(s.frontendURL, "/"), code)
	body := fmt.Sprintf("Hello %s,\n\nYou can change your password here: %s\n\nThe link expires in %d minutes.\n",
		user.Name, link, int(s.ttl.Minutes()))

	if err := s.mailer.Send(ctx, user.Email, "Password change request", body); err != nil {
		return fmt.Errorf("failed to send reset link: %w", err)
	}

	s.logger.Info("PasswordReset service: reset link sent", "user_id", user.ID)
	return nil
}

// Check reports whether a code is currently redeemable.
func (s *PasswordReset) Check(ctx context.Context, code string) (bool, error) {
	reset, err := s.codes.GetByCode(ctx, code)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get reset code: %w", err)
	}

	return !reset.Expired(time.Now(), s.ttl), nil
}

// Change redeems a code: the account gets a fresh salt and digest and the
// code row disappears in the same transaction, so each code works once.
func (s *PasswordReset) Change(ctx context.Context, code, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return model.ErrWeakPassword
	}

	reset, err := s.codes.GetByCode(ctx, code)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrInvalidCode
	}
	if err != nil {
		return fmt.Errorf("failed to get reset code: %w", err)
	}

	if reset.Expired(time.Now(), s.ttl) {
		return model.ErrCodeExpired
	}

	salt, err := credential.NewSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	if err := s.codes.Consume(ctx, reset.UserID, credential.Hash(newPassword, salt), salt); err != nil {
		return fmt.Errorf("failed to consume reset code: %w", err)
	}

	s.logger.Info("PasswordReset service: password changed", "user_id", reset.UserID)
	return nil
}
