package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/velorent/velorent-auth/internal/model"
)

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", 15*time.Minute, 30*24*time.Hour)
	u := uuid.New()

	access, err := j.GenerateAccessToken(u, model.RoleClient)
	require.NoError(t, err)

	got, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, u, got.UserID)
	require.Equal(t, model.RoleClient, got.Role)
	require.False(t, got.IsRefresh)
}

func TestJWT_RefreshToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", 15*time.Minute, 30*24*time.Hour)
	u := uuid.New()

	refresh, err := j.GenerateRefreshToken(u, model.RoleAdmin)
	require.NoError(t, err)

	got, err := j.ParseRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, u, got.UserID)
	require.Equal(t, model.RoleAdmin, got.Role)
	require.True(t, got.IsRefresh)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	j := NewJWT("secret", 15*time.Minute, 30*24*time.Hour)
	u := uuid.New()

	access, err := j.GenerateAccessToken(u, model.RoleClient)
	require.NoError(t, err)
	refresh, err := j.GenerateRefreshToken(u, model.RoleClient)
	require.NoError(t, err)

	_, err = j.ParseRefreshToken(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)
	_, err = j.ParseAccessToken(refresh)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_Expired(t *testing.T) {
	j := NewJWT("secret", -time.Minute, 30*24*time.Hour)
	u := uuid.New()

	access, err := j.GenerateAccessToken(u, model.RoleClient)
	require.NoError(t, err)

	_, err = j.ParseAccessToken(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_WrongSecret(t *testing.T) {
	issuer := NewJWT("secret", 15*time.Minute, 30*24*time.Hour)
	verifier := NewJWT("other", 15*time.Minute, 30*24*time.Hour)
	u := uuid.New()

	access, err := issuer.GenerateAccessToken(u, model.RoleClient)
	require.NoError(t, err)

	_, err = verifier.ParseAccessToken(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_SameSecondTokensDiffer(t *testing.T) {
	j := NewJWT("secret", 15*time.Minute, 30*24*time.Hour)
	u := uuid.New()

	first, err := j.GenerateAccessToken(u, model.RoleClient)
	require.NoError(t, err)
	second, err := j.GenerateAccessToken(u, model.RoleClient)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}
