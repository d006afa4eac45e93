// Package credential implements the password codec and the random material
// behind salts, server-generated passwords and one-time codes.
package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/velorent/velorent-auth/internal/model"
)

const (
	saltLength     = 16
	passwordLength = 8
	resetCodeBytes = 32 // 64 hex chars

	alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Hash derives the stored digest from salt and password. Deterministic,
// no external state.
func Hash(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

// DigestEqual compares two digests in constant time.
func DigestEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// NewSalt returns a fresh per-account salt. Salts are never reused across
// accounts.
func NewSalt() (string, error) {
	return randomAlphanumeric(saltLength)
}

// NewPassword returns a server-generated initial password. The user never
// chooses a password at creation time; this one is delivered by email.
func NewPassword() (string, error) {
	return randomAlphanumeric(passwordLength)
}

// NewTwoFactorCode returns a login challenge drawn uniformly from the
// configured numeric range.
func NewTwoFactorCode() (int, error) {
	span := int64(model.TwoFactorCodeMax - model.TwoFactorCodeMin + 1)
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return 0, fmt.Errorf("failed to generate two-factor code: %w", err)
	}
	return model.TwoFactorCodeMin + int(n.Int64()), nil
}

// NewResetCode returns a 64-char hex password-reset code.
func NewResetCode() (string, error) {
	buf := make([]byte, resetCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func randomAlphanumeric(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(alphanumeric)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random string: %w", err)
		}
		buf[i] = alphanumeric[n.Int64()]
	}
	return string(buf), nil
}
