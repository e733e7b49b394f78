package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the persistent account record. The single-use token columns hold
// the SHA-256 hex of the token that was emailed, never the raw value.
type User struct {
	ID              uuid.UUID
	Name            string
	Avatar          *string
	Email           string
	PasswordHash    string
	IsEmailVerified bool

	VerificationToken   *string
	VerificationExpires *time.Time

	ResetToken   *string
	ResetExpires *time.Time

	// RefreshToken is the only refresh token currently trusted for this
	// account; rotation overwrites it, revocation clears it.
	RefreshToken *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
