package repo

import (
	"context"
	"database/sql"

	"github.com/stockpulse/stockpulse/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, name, email, password_hash, phone, location, bio, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Location, &u.Bio, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ==========================
// Create User
// ==========================
// Create inserts a new user. A duplicate email surfaces as a unique-violation
// error (check with IsUniqueViolation).
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	return scanUser(r.DB.QueryRowContext(ctx, query, name, email, passwordHash))
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRowContext(ctx, query, id))
}

// ==========================
// Get By Email
// ==========================
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.DB.QueryRowContext(ctx, query, email))
}

// ==========================
// Update Profile
// ==========================
// UpdateProfile overwrites the mutable profile fields and returns the updated
// record. Changing email to one already in use surfaces as a unique violation.
func (r *UserRepo) UpdateProfile(ctx context.Context, id int, name, email, phone, location, bio string) (*models.User, error) {
	query := `
		UPDATE users
		SET name = $1, email = $2, phone = $3, location = $4, bio = $5
		WHERE id = $6
		RETURNING ` + userColumns

	return scanUser(r.DB.QueryRowContext(ctx, query, name, email, phone, location, bio, id))
}

// ==========================
// Update Password
// ==========================
func (r *UserRepo) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
