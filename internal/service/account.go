package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/velorent/velorent-auth/internal/credential"
	"github.com/velorent/velorent-auth/internal/logger"
	"github.com/velorent/velorent-auth/internal/model"
)

const adultAge = 18

// Account provisions and administers user accounts.
type Account struct {
	users  model.UserStore
	info   model.UserInfoStore
	mailer model.Mailer
	logger *logger.Logger
}

func NewAccount(users model.UserStore, info model.UserInfoStore, mailer model.Mailer, logger *logger.Logger) *Account {
	return &Account{
		users:  users,
		info:   info,
		mailer: mailer,
		logger: logger,
	}
}

// SignupParams carries the profile data for a new account. The password is
// never part of it; provisioning generates one server-side.
type SignupParams struct {
	Email      string
	Name       string
	Surname    string
	BirthDate  time.Time
	NationalID string
	Phone      *string
}

// SignupClient provisions a self-registered client account. Underage
// registrations are rejected before anything is written.
func (a *Account) SignupClient(ctx context.Context, params SignupParams) error {
	info := model.UserInfo{BirthDate: params.BirthDate}
	if info.Age(time.Now()) < adultAge {
		a.logger.Info("Account service: underage signup rejected", "email", params.Email)
		return model.ErrUnderage
	}
	return a.provision(ctx, params, model.RoleClient)
}

// RegisterEmployee provisions an employee account. The admin-role gate lives
// at the transport boundary.
func (a *Account) RegisterEmployee(ctx context.Context, params SignupParams) error {
	return a.provision(ctx, params, model.RoleEmployee)
}

// provision runs the transactional creation protocol: stage the account and
// profile rows, email the generated password, and commit only once the mail
// is out. Any failure leaves no trace of the account.
func (a *Account) provision(ctx context.Context, params SignupParams, role model.Role) error {
	a.logger.Debug("Account service: provisioning account", "email", params.Email, "role", role)

	password, err := credential.NewPassword()
	if err != nil {
		return fmt.Errorf("failed to generate password: %w", err)
	}
	salt, err := credential.NewSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        params.Email,
		Name:         params.Name,
		Surname:      params.Surname,
		PasswordHash: credential.Hash(password, salt),
		Salt:         salt,
		Role:         role,
		Status:       model.StatusActive,
	}
	info := &model.UserInfo{
		UserID:     user.ID,
		BirthDate:  params.BirthDate,
		NationalID: params.NationalID,
		Phone:      params.Phone,
	}

	body := fmt.Sprintf("Hello %s,\n\nYour account has been created. Your password is: %s\n\nPlease change it after your first login.\n", params.Name, password)

	_, err = a.users.CreateWithInfo(ctx, user, info, func() error {
		return a.mailer.Send(ctx, params.Email, "Welcome to Velorent", body)
	})
	if err != nil {
		a.logger.Error("Account service: provisioning failed", "email", params.Email, "error", err.Error())
		return err
	}

	a.logger.Info("Account service: account provisioned", "user_id", user.ID, "role", role)
	return nil
}

// Employee pairs an account with its profile for listings.
type Employee struct {
	User model.User
	Info model.UserInfo
}

// ListEmployees returns every active employee with its profile.
func (a *Account) ListEmployees(ctx context.Context) ([]Employee, error) {
	users, err := a.users.ListByRole(ctx, model.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	employees := make([]Employee, 0, len(users))
	for _, user := range users {
		info, err := a.info.GetByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("failed to get employee info: %w", err)
		}
		employees = append(employees, Employee{User: user, Info: info})
	}

	return employees, nil
}

// DeleteEmployee soft-deletes an employee account. The row survives for
// audit; the status flip also kills any live session.
func (a *Account) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	user, err := a.users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get employee: %w", err)
	}

	switch user.Role {
	case model.RoleEmployee:
		// deletable
	case model.RoleAdmin, model.RoleClient:
		return model.ErrForbidden
	}

	if err := a.users.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	a.logger.Info("Account service: employee deleted", "user_id", id)
	return nil
}

// ChangePhone updates the caller's own profile phone.
func (a *Account) ChangePhone(ctx context.Context, userID uuid.UUID, phone string) error {
	if err := a.info.UpdatePhone(ctx, userID, phone); err != nil {
		return fmt.Errorf("failed to change phone: %w", err)
	}
	return nil
}
