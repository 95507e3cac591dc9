package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/hireloop/internal/domain/user"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) user.Repository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, full_name, password_hash, role, email_verified, verification_token, created_at, updated_at`

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	query := `
		INSERT INTO users (email, full_name, password_hash, role, email_verified, verification_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		u.Email, nullString(u.FullName), u.PasswordHash, u.Role, u.EmailVerified,
		nullString(&u.VerificationToken), now.Unix(), now.Unix(),
	).Scan(&u.ID)
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

// GetByVerificationToken retrieves the user holding token
func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, errors.NotFound("User")
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE verification_token = $1`, token)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}
	return u, nil
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET email = $1, full_name = $2, password_hash = $3, role = $4,
		    email_verified = $5, verification_token = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := r.db.ExecContext(ctx, query,
		u.Email, nullString(u.FullName), u.PasswordHash, u.Role, u.EmailVerified,
		nullString(&u.VerificationToken), u.UpdatedAt.Unix(), u.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// List retrieves all users with pagination
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to count users", err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list users", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan user", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate users", err)
	}

	return users, total, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(s rowScanner) (*user.User, error) {
	var u user.User
	var fullName, token sql.NullString
	var createdAt, updatedAt int64

	err := s.Scan(&u.ID, &u.Email, &fullName, &u.PasswordHash, &u.Role, &u.EmailVerified, &token, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	u.FullName = stringPtr(fullName)
	u.VerificationToken = token.String
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	u.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &u, nil
}
