package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

// ParseRole maps a stored role value onto the closed enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleEmployee:
		return RoleEmployee, nil
	case RoleClient:
		return RoleClient, nil
	default:
		return "", ErrUnknownRole
	}
}

// Account status values. Deletion is a soft delete and is never reversed.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// UserStore defines persistence operations for user accounts.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	// CreateWithInfo inserts the account and, for non-admin roles, its profile
	// in a single transaction. The deliver callback runs after both rows are
	// staged; the transaction commits only if it returns nil.
	CreateWithInfo(ctx context.Context, user User, info *UserInfo, deliver func() error) (User, error)
	// SetRefreshToken overwrites the account's single refresh token slot.
	// A nil token terminates the session lineage.
	SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error
	ListByRole(ctx context.Context, role Role) ([]User, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// User represents a stored account with its credential material.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Surname      string
	PasswordHash string
	Salt         string
	Role         Role
	Status       string
	RefreshToken *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
