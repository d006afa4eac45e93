package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager generates and validates access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(userID uuid.UUID, role Role) (string, error)
	GenerateRefreshToken(userID uuid.UUID, role Role) (string, error)
	ParseAccessToken(token string) (SessionClaims, error)
	ParseRefreshToken(token string) (SessionClaims, error)
}

// SessionClaims is the identity a verified token carries. It lives only
// inside the token; nothing here is persisted. The nonce keeps two tokens
// minted in the same second from colliding byte-for-byte.
type SessionClaims struct {
	UserID    uuid.UUID
	Role      Role
	ExpiresAt time.Time
	IsRefresh bool
	Nonce     uint32
}
