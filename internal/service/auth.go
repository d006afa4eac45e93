package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/velorent/velorent-auth/internal/credential"
	"github.com/velorent/velorent-auth/internal/logger"
	"github.com/velorent/velorent-auth/internal/model"
)

// Auth orchestrates login, two-factor verification, refresh rotation and
// logout over the single refresh-token slot each account carries.
type Auth struct {
	users     model.UserStore
	info      model.UserInfoStore
	twoFactor model.TwoFactorCodeStore
	tokens    model.TokenManager
	mailer    model.Mailer
	logger    *logger.Logger
}

func NewAuth(
	users model.UserStore,
	info model.UserInfoStore,
	twoFactor model.TwoFactorCodeStore,
	tokens model.TokenManager,
	mailer model.Mailer,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:     users,
		info:      info,
		twoFactor: twoFactor,
		tokens:    tokens,
		mailer:    mailer,
		logger:    logger,
	}
}

// LoginResult is either a completed session or a notice that a two-factor
// code was emailed and the login must be repeated with it.
type LoginResult struct {
	TwoFactorSent bool
	AccessToken   string
	RefreshToken  string
	User          model.User
	Info          *model.UserInfo
}

// Login validates credentials and runs the role-dependent flow: clients get
// tokens immediately; admins and employees must present the emailed code.
func (a *Auth) Login(ctx context.Context, email, password string, code *int) (LoginResult, error) {
	a.logger.Debug("Auth service: processing login", "email", email)

	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return LoginResult{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !credential.DigestEqual(user.PasswordHash, credential.Hash(password, user.Salt)) {
		a.logger.Info("Auth service: password mismatch", "email", email)
		return LoginResult{}, model.ErrInvalidCredentials
	}

	switch user.Role {
	case model.RoleClient:
		return a.issueSession(ctx, user)
	case model.RoleAdmin, model.RoleEmployee:
		if code == nil {
			if err := a.sendTwoFactorCode(ctx, user); err != nil {
				return LoginResult{}, err
			}
			return LoginResult{TwoFactorSent: true}, nil
		}
		if err := a.checkTwoFactorCode(ctx, user.ID, *code); err != nil {
			return LoginResult{}, err
		}
		return a.issueSession(ctx, user)
	default:
		return LoginResult{}, model.ErrUnknownRole
	}
}

// Refresh rotates the token pair. A verified token that no longer matches
// the stored slot is proof of rotation-replay or theft; the slot is nulled
// so the whole lineage dies and the account must log in again.
func (a *Auth) Refresh(ctx context.Context, presented string) (LoginResult, error) {
	claims, err := a.tokens.ParseRefreshToken(presented)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}

	user, err := a.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return LoginResult{}, model.ErrInvalidToken
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if user.RefreshToken == nil || subtle.ConstantTimeCompare([]byte(*user.RefreshToken), []byte(presented)) != 1 {
		a.logger.Warn("Auth service: superseded refresh token presented, killing session",
			"user_id", user.ID)
		if err := a.users.SetRefreshToken(ctx, user.ID, nil); err != nil {
			return LoginResult{}, fmt.Errorf("failed to invalidate session: %w", err)
		}
		return LoginResult{}, model.ErrTokenMismatch
	}

	return a.issueSession(ctx, user)
}

// Logout nulls the refresh slot for whatever account the access token names.
// Calling it repeatedly is harmless.
func (a *Auth) Logout(ctx context.Context, access string) error {
	claims, err := a.tokens.ParseAccessToken(access)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}

	if err := a.users.SetRefreshToken(ctx, claims.UserID, nil); err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	a.logger.Info("Auth service: session terminated", "user_id", claims.UserID)
	return nil
}

// Authenticate resolves the claims behind an access token.
func (a *Auth) Authenticate(_ context.Context, access string) (model.SessionClaims, error) {
	claims, err := a.tokens.ParseAccessToken(access)
	if err != nil {
		return model.SessionClaims{}, fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}
	return claims, nil
}

// issueSession mints a fresh pair and persists the refresh token before the
// pair is ever exposed to the caller.
func (a *Auth) issueSession(ctx context.Context, user model.User) (LoginResult, error) {
	access, err := a.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := a.tokens.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	if err := a.users.SetRefreshToken(ctx, user.ID, &refresh); err != nil {
		return LoginResult{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	result := LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}

	if user.Role != model.RoleAdmin {
		info, err := a.info.GetByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return LoginResult{}, fmt.Errorf("failed to get user info: %w", err)
		}
		if err == nil {
			result.Info = &info
		}
	}

	a.logger.Info("Auth service: session issued", "user_id", user.ID, "role", user.Role)
	return result, nil
}

func (a *Auth) sendTwoFactorCode(ctx context.Context, user model.User) error {
	code, err := credential.NewTwoFactorCode()
	if err != nil {
		return fmt.Errorf("failed to generate two-factor code: %w", err)
	}

	if err := a.twoFactor.Replace(ctx, model.TwoFactorCode{UserID: user.ID, Code: code}); err != nil {
		return fmt.Errorf("failed to store two-factor code: %w", err)
	}

	body := fmt.Sprintf("Hello %s,\n\nYour verification code is %d.\n", user.Name, code)
	if err := a.mailer.Send(ctx, user.Email, "Your login verification code", body); err != nil {
		return fmt.Errorf("failed to send two-factor code: %w", err)
	}

	a.logger.Info("Auth service: two-factor code sent", "user_id", user.ID)
	return nil
}

// checkTwoFactorCode compares the presented code against the live one.
// The code is consumed by comparison only; it stays until the next issue
// replaces it.
func (a *Auth) checkTwoFactorCode(ctx context.Context, userID uuid.UUID, code int) error {
	stored, err := a.twoFactor.GetByUserID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrInvalidCode
	}
	if err != nil {
		return fmt.Errorf("failed to get two-factor code: %w", err)
	}

	if stored.Code != code {
		return model.ErrInvalidCode
	}
	return nil
}
