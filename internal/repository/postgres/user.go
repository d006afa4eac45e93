package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/velorent/velorent-auth/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, email, name, surname, password_hash, salt, role, status, current_refresh_token, created_at, updated_at`

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND status = 'active'`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND status = 'active'`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// CreateWithInfo stages the account row and profile row in one transaction,
// then runs deliver. The transaction commits only when every step, the
// outbound notification included, has succeeded; any failure rolls the whole
// creation back so no credential exists without a delivered password.
func (r *UserRepository) CreateWithInfo(ctx context.Context, user model.User, info *model.UserInfo, deliver func() error) (model.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	insertUser := `INSERT INTO users (id, email, name, surname, password_hash, salt, role, status, created_at, updated_at)
				   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
				   RETURNING ` + userColumns

	saved, err := scanUser(tx.QueryRow(ctx, insertUser,
		user.ID, user.Email, user.Name, user.Surname,
		user.PasswordHash, user.Salt, user.Role, user.Status,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	if info != nil {
		insertInfo := `INSERT INTO user_info (user_id, birth_date, national_id, phone)
					   VALUES ($1, $2, $3, $4)`

		_, err = tx.Exec(ctx, insertInfo, saved.ID, info.BirthDate, info.NationalID, info.Phone)
		if err != nil {
			if isUniqueViolation(err) {
				return model.User{}, model.ErrNationalIDTaken
			}
			return model.User{}, fmt.Errorf("failed to create user info: %w", err)
		}
	}

	if err := deliver(); err != nil {
		return model.User{}, fmt.Errorf("failed to deliver credentials: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.User{}, fmt.Errorf("failed to commit user creation: %w", err)
	}

	return saved, nil
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	query := `UPDATE users SET current_refresh_token = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, token)
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 AND status = 'active' ORDER BY surname, name`

	rows, err := r.db.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user rows: %w", err)
	}

	return users, nil
}

func (r *UserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET status = 'deleted', current_refresh_token = NULL, updated_at = NOW()
			  WHERE id = $1 AND status = 'active'`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	var role string
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.Surname,
		&user.PasswordHash, &user.Salt, &role, &user.Status,
		&user.RefreshToken, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return model.User{}, err
	}

	user.Role, err = model.ParseRole(role)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
