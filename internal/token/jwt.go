package token

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/velorent/velorent-auth/internal/model"
)

// Claims represents JWT claims with token type, account identity and role.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	TokenType string    `json:"typ"`
	Nonce     uint32    `json:"nonce"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWT creates a new JWT token manager with the provided secret key and
// lifetimes. Both lifetimes are fixed at startup.
func NewJWT(secretKey string, accessTTL, refreshTTL time.Duration) model.TokenManager {
	return &JWT{secretKey: secretKey, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// GenerateAccessToken creates a short-lived access token.
func (j *JWT) GenerateAccessToken(userID uuid.UUID, role model.Role) (string, error) {
	return j.generate(userID, role, typeAccess, j.accessTTL)
}

// GenerateRefreshToken creates a long-lived refresh token.
func (j *JWT) GenerateRefreshToken(userID uuid.UUID, role model.Role) (string, error) {
	return j.generate(userID, role, typeRefresh, j.refreshTTL)
}

func (j *JWT) generate(userID uuid.UUID, role model.Role, tokenType string, ttl time.Duration) (string, error) {
	nonce, err := newNonce()
	if err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		Role:      string(role),
		TokenType: tokenType,
		Nonce:     nonce,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return tokenString, nil
}

// ParseAccessToken validates an access token and extracts its claims.
func (j *JWT) ParseAccessToken(tokenString string) (model.SessionClaims, error) {
	return j.parse(tokenString, typeAccess)
}

// ParseRefreshToken validates a refresh token and extracts its claims.
func (j *JWT) ParseRefreshToken(tokenString string) (model.SessionClaims, error) {
	return j.parse(tokenString, typeRefresh)
}

// parse checks signature and expiry together; no claims are returned on any
// failure. A token of the wrong type is rejected outright.
func (j *JWT) parse(tokenString, wantType string) (model.SessionClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return model.SessionClaims{}, fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}
	if !token.Valid {
		return model.SessionClaims{}, model.ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return model.SessionClaims{}, fmt.Errorf("%w: token type mismatch: %s", model.ErrInvalidToken, claims.TokenType)
	}

	role, err := model.ParseRole(claims.Role)
	if err != nil {
		return model.SessionClaims{}, fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}

	return model.SessionClaims{
		UserID:    claims.UserID,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
		IsRefresh: claims.TokenType == typeRefresh,
		Nonce:     claims.Nonce,
	}, nil
}

func newNonce() (uint32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}
