package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/Hussein-shsx3/Server-New-Project/app/models"
	"github.com/google/uuid"
)

// Storage aggregates the persistence interfaces the services depend on.
// Lookups return sql.ErrNoRows when nothing matches; the service layer maps
// that to its own error kinds.
type Storage struct {
	Users UsersStorage
}

// UsersStorage is the credential-store contract. The Consume* operations are
// conditional updates: they succeed for at most one caller per token, so two
// racing consumers cannot both spend the same single-use token.
type UsersStorage interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	SetVerificationToken(ctx context.Context, id uuid.UUID, tokenHash string, expires time.Time) error
	ClearVerificationToken(ctx context.Context, id uuid.UUID) error
	ConsumeVerificationToken(ctx context.Context, tokenHash string) (*models.User, error)

	GetByResetToken(ctx context.Context, tokenHash string) (*models.User, error)
	SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expires time.Time) error
	ClearResetToken(ctx context.Context, id uuid.UUID) error
	ConsumeResetToken(ctx context.Context, tokenHash string, passwordHash string) (*models.User, error)

	SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error
}

func NewStorage(db *sql.DB) Storage {
	return Storage{
		Users: &UsersStore{db: db},
	}
}
