package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/Hussein-shsx3/Server-New-Project/app/models"
	"github.com/google/uuid"
)

type UsersStore struct {
	db *sql.DB
}

const userColumns = `id, name, avatar, email, password_hash, is_email_verified,
	verification_token, verification_expires, reset_token, reset_expires,
	refresh_token, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Avatar,
		&user.Email,
		&user.PasswordHash,
		&user.IsEmailVerified,
		&user.VerificationToken,
		&user.VerificationExpires,
		&user.ResetToken,
		&user.ResetExpires,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UsersStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *UsersStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(s.db.QueryRowContext(ctx, query, email))
}

func (s *UsersStore) Create(ctx context.Context, user *models.User) error {
	query := `
	INSERT INTO users (id, name, avatar, email, password_hash, is_email_verified,
		verification_token, verification_expires)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`

	return s.db.QueryRowContext(ctx, query,
		user.ID,
		user.Name,
		user.Avatar,
		user.Email,
		user.PasswordHash,
		user.IsEmailVerified,
		user.VerificationToken,
		user.VerificationExpires,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (s *UsersStore) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET name = $1, avatar = $2, updated_at = now() WHERE id = $3`
	_, err := s.db.ExecContext(ctx, query,
		user.Name,
		user.Avatar,
		user.ID,
	)
	return err
}

func (s *UsersStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`
	_, err := s.db.ExecContext(ctx, query, passwordHash, id)
	return err
}

func (s *UsersStore) SetVerificationToken(ctx context.Context, id uuid.UUID, tokenHash string, expires time.Time) error {
	query := `UPDATE users SET verification_token = $1, verification_expires = $2,
	updated_at = now() WHERE id = $3`
	_, err := s.db.ExecContext(ctx, query, tokenHash, expires, id)
	return err
}

func (s *UsersStore) ClearVerificationToken(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET verification_token = NULL, verification_expires = NULL,
	updated_at = now() WHERE id = $1`
	_, err := s.db.ExecContext(ctx, query, id)
	return err
}

// ConsumeVerificationToken marks the account verified and clears the token in
// one conditional update. The WHERE clause requires the token to still be
// present and unexpired, so of two racing consumers exactly one sees a row;
// the other gets sql.ErrNoRows.
func (s *UsersStore) ConsumeVerificationToken(ctx context.Context, tokenHash string) (*models.User, error) {
	query := `UPDATE users SET is_email_verified = TRUE, verification_token = NULL,
	verification_expires = NULL, updated_at = now()
	WHERE verification_token = $1 AND verification_expires > now()
	RETURNING ` + userColumns
	return scanUser(s.db.QueryRowContext(ctx, query, tokenHash))
}

func (s *UsersStore) GetByResetToken(ctx context.Context, tokenHash string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
	WHERE reset_token = $1 AND reset_expires > now()`
	return scanUser(s.db.QueryRowContext(ctx, query, tokenHash))
}

func (s *UsersStore) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expires time.Time) error {
	query := `UPDATE users SET reset_token = $1, reset_expires = $2,
	updated_at = now() WHERE id = $3`
	_, err := s.db.ExecContext(ctx, query, tokenHash, expires, id)
	return err
}

func (s *UsersStore) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET reset_token = NULL, reset_expires = NULL,
	updated_at = now() WHERE id = $1`
	_, err := s.db.ExecContext(ctx, query, id)
	return err
}

// ConsumeResetToken writes the new password hash, clears the reset token, and
// revokes the stored refresh token in a single conditional update (same
// single-winner semantics as ConsumeVerificationToken).
func (s *UsersStore) ConsumeResetToken(ctx context.Context, tokenHash string, passwordHash string) (*models.User, error) {
	query := `UPDATE users SET password_hash = $2, reset_token = NULL,
	reset_expires = NULL, refresh_token = NULL, updated_at = now()
	WHERE reset_token = $1 AND reset_expires > now()
	RETURNING ` + userColumns
	return scanUser(s.db.QueryRowContext(ctx, query, tokenHash, passwordHash))
}

func (s *UsersStore) SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	query := `UPDATE users SET refresh_token = $1, updated_at = now() WHERE id = $2`
	_, err := s.db.ExecContext(ctx, query, token, id)
	return err
}
