package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Hussein-shsx3/Server-New-Project/app/config"
	"github.com/Hussein-shsx3/Server-New-Project/app/dto"
	appErrors "github.com/Hussein-shsx3/Server-New-Project/app/errors"
	"github.com/Hussein-shsx3/Server-New-Project/app/logger"
	"github.com/Hussein-shsx3/Server-New-Project/app/models"
	"github.com/Hussein-shsx3/Server-New-Project/app/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns the account lifecycle state machine: registration, login,
// email verification, password reset/change, and the single-use tokens those
// flows mint and consume. Session tokens themselves are the SessionService's
// job; AuthService calls into it where a flow ends with a logged-in user.
type AuthService struct {
	store     store.Storage
	sessions  *SessionService
	minter    *TokenMinter
	publisher EventPublisher

	frontendBaseURL     string
	verificationTTL     time.Duration
	resetTTL            time.Duration
	requireVerification bool
}

func NewAuthService(store store.Storage, sessions *SessionService, minter *TokenMinter, publisher EventPublisher, cfg config.Config) *AuthService {
	return &AuthService{
		store:               store,
		sessions:            sessions,
		minter:              minter,
		publisher:           publisher,
		frontendBaseURL:     cfg.FrontendBaseURL,
		verificationTTL:     cfg.VerificationTokenTTL,
		resetTTL:            cfg.ResetTokenTTL,
		requireVerification: cfg.RequireEmailVerification,
	}
}

// Register creates an account and logs it in.
// Note: Input validation (format, length, etc.) is already done in the handler layer.
// The verification policy decides whether the account starts verified or gets
// a 24h single-use token and a verification email. If publishing that email
// fails, the token is rolled back and registration still succeeds; the user
// can request a fresh token later.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, *appErrors.AppError) {
	email := normalizeEmail(req.Email)

	existingUser, err := s.store.Users.GetByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, appErrors.NewConflict("email already in use")
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.NewInternal("database error while checking email")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.NewInternal("error hashing password")
	}

	user := &models.User{
		ID:              uuid.New(),
		Name:            req.Name,
		Email:           email,
		PasswordHash:    string(passwordHash),
		IsEmailVerified: !s.requireVerification,
	}

	var rawToken string
	if s.requireVerification {
		rawToken, err = s.minter.RandomToken()
		if err != nil {
			return nil, appErrors.NewInternal("error generating verification token")
		}
		tokenHash := HashToken(rawToken)
		expires := time.Now().Add(s.verificationTTL)
		user.VerificationToken = &tokenHash
		user.VerificationExpires = &expires
	}

	if err := s.store.Users.Create(ctx, user); err != nil {
		return nil, appErrors.NewInternal("error creating user")
	}

	if s.requireVerification {
		if err := s.publisher.PublishEmailVerification(ctx, user.Email, s.verificationURL(rawToken)); err != nil {
			// Roll the pending token back so no token the user never received
			// stays live. Registration itself still succeeds.
			log := getLoggerFromContext(ctx)
			log.Error().
				Err(err).
				Str("user_id", user.ID.String()).
				Str("email", user.Email).
				Msg("failed to publish verification email, clearing pending token")
			if clearErr := s.store.Users.ClearVerificationToken(ctx, user.ID); clearErr != nil {
				log.Error().Err(clearErr).Str("user_id", user.ID.String()).
					Msg("failed to clear verification token after publish failure")
			}
		}
	}

	pair, err := s.sessions.IssuePair(ctx, user.ID)
	if err != nil {
		return nil, appErrors.NewInternal("error issuing token pair")
	}

	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         dto.NewUserResponse(user),
	}, nil
}

// Login verifies credentials and issues a session pair. The failure is the
// same error kind and message whether the email is unknown or the password is
// wrong.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, *appErrors.AppError) {
	user, err := s.store.Users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewInvalidCredentials()
		}
		return nil, appErrors.NewInternal("error getting user by email")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, appErrors.NewInvalidCredentials()
		}
		return nil, appErrors.NewInternal("error verifying password")
	}

	pair, err := s.sessions.IssuePair(ctx, user.ID)
	if err != nil {
		return nil, appErrors.NewInternal("error issuing token pair")
	}

	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         dto.NewUserResponse(user),
	}, nil
}

// VerifyEmail consumes a verification token. Consumption is atomic with
// clearing the token: a second call with the same token, or a call after
// expiry, fails with the same error kind.
func (s *AuthService) VerifyEmail(ctx context.Context, req dto.VerifyEmailRequest) (*dto.UserResponse, *appErrors.AppError) {
	if req.Token == "" {
		return nil, appErrors.NewInvalidInput("missing verification token")
	}

	user, err := s.store.Users.ConsumeVerificationToken(ctx, HashToken(req.Token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewInvalidOrExpiredToken()
		}
		return nil, appErrors.NewInternal("error consuming verification token")
	}

	// Welcome email is best effort; verification never rolls back on a
	// delivery problem.
	if err := s.publisher.PublishWelcome(ctx, user.Email, user.Name); err != nil {
		log := getLoggerFromContext(ctx)
		log.Error().
			Err(err).
			Str("user_id", user.ID.String()).
			Str("email", user.Email).
			Msg("failed to publish welcome email")
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ResendVerification mints a fresh verification token, invalidating any
// pending one. An unknown email reports generic success so callers cannot
// enumerate accounts; a verified account gets AlreadyVerified.
func (s *AuthService) ResendVerification(ctx context.Context, req dto.ResendVerificationRequest) *appErrors.AppError {
	user, err := s.store.Users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Don't reveal whether the email exists.
			return nil
		}
		log := getLoggerFromContext(ctx)
		log.Error().Err(err).Str("email", req.Email).
			Msg("database error while looking up user for resend verification")
		return nil
	}

	if user.IsEmailVerified {
		return appErrors.NewAlreadyVerified()
	}

	rawToken, err := s.minter.RandomToken()
	if err != nil {
		return appErrors.NewInternal("error generating verification token")
	}
	if err := s.store.Users.SetVerificationToken(ctx, user.ID, HashToken(rawToken), time.Now().Add(s.verificationTTL)); err != nil {
		return appErrors.NewInternal("error storing verification token")
	}

	if err := s.publisher.PublishEmailVerification(ctx, user.Email, s.verificationURL(rawToken)); err != nil {
		// Same rollback rule as Register: a token no email carried must not
		// stay live.
		log := getLoggerFromContext(ctx)
		log.Error().
			Err(err).
			Str("user_id", user.ID.String()).
			Str("email", user.Email).
			Msg("failed to publish verification email, clearing pending token")
		if clearErr := s.store.Users.ClearVerificationToken(ctx, user.ID); clearErr != nil {
			log.Error().Err(clearErr).Str("user_id", user.ID.String()).
				Msg("failed to clear verification token after publish failure")
		}
	}
	return nil
}

// ForgotPassword always reports generic success regardless of whether the
// email matched, for the same anti-enumeration reason as ResendVerification.
func (s *AuthService) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) *appErrors.AppError {
	user, err := s.store.Users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log := getLoggerFromContext(ctx)
			log.Error().Err(err).Str("email", req.Email).
				Msg("database error while looking up user for password reset")
		}
		return nil
	}

	rawToken, err := s.minter.RandomToken()
	if err != nil {
		log := getLoggerFromContext(ctx)
		log.Error().Err(err).Str("user_id", user.ID.String()).
			Msg("failed to generate password reset token")
		return nil
	}
	if err := s.store.Users.SetResetToken(ctx, user.ID, HashToken(rawToken), time.Now().Add(s.resetTTL)); err != nil {
		log := getLoggerFromContext(ctx)
		log.Error().Err(err).Str("user_id", user.ID.String()).
			Msg("failed to store password reset token")
		return nil
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendBaseURL, rawToken)
	if err := s.publisher.PublishPasswordReset(ctx, user.Email, resetURL); err != nil {
		// No dangling usable token may survive an email that was never sent.
		log := getLoggerFromContext(ctx)
		log.Error().
			Err(err).
			Str("user_id", user.ID.String()).
			Str("email", user.Email).
			Msg("failed to publish password reset email, clearing token")
		if clearErr := s.store.Users.ClearResetToken(ctx, user.ID); clearErr != nil {
			log.Error().Err(clearErr).Str("user_id", user.ID.String()).
				Msg("failed to clear reset token after publish failure")
		}
	}
	return nil
}

// ResetPassword consumes a reset token and writes the new password. A new
// password equal to the current one is rejected and leaves the token intact.
// Success also revokes the stored refresh token, forcing re-login everywhere.
func (s *AuthService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) *appErrors.AppError {
	if req.Token == "" {
		return appErrors.NewInvalidInput("missing reset token")
	}
	if req.NewPassword == "" {
		return appErrors.NewInvalidInput("missing new password")
	}

	tokenHash := HashToken(req.Token)

	user, err := s.store.Users.GetByResetToken(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NewInvalidOrExpiredToken()
		}
		return appErrors.NewInternal("error looking up reset token")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.NewPassword)) == nil {
		return appErrors.NewSamePassword()
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.NewInternal("error hashing new password")
	}

	// Conditional consume: if the token was spent or expired between the
	// lookup and this update, the race loser lands here with zero rows.
	if _, err := s.store.Users.ConsumeResetToken(ctx, tokenHash, string(newHash)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NewInvalidOrExpiredToken()
		}
		return appErrors.NewInternal("error updating password")
	}
	return nil
}

// ChangePassword is the authenticated variant. Unlike ResetPassword it does
// not reject a new password equal to the current one; the asymmetry is kept
// deliberately.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) *appErrors.AppError {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NewNotFound("user")
		}
		return appErrors.NewInternal("error loading user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return appErrors.NewInvalidCredentials()
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.NewInternal("error hashing new password")
	}
	if err := s.store.Users.UpdatePassword(ctx, userID, string(newHash)); err != nil {
		return appErrors.NewInternal("error updating password")
	}
	return nil
}

// Profile returns the public projection of an account.
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *appErrors.AppError) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewNotFound("user")
		}
		return nil, appErrors.NewInternal("error loading user")
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies the provided profile fields and returns the updated
// projection. Nil fields are left unchanged.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserResponse, *appErrors.AppError) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewNotFound("user")
		}
		return nil, appErrors.NewInternal("error loading user")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}

	if err := s.store.Users.UpdateProfile(ctx, user); err != nil {
		return nil, appErrors.NewInternal("error updating profile")
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *AuthService) verificationURL(rawToken string) string {
	return fmt.Sprintf("%s/verify-email?token=%s", s.frontendBaseURL, rawToken)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// getLoggerFromContext retrieves logger from context or returns global logger
func getLoggerFromContext(ctx context.Context) zerolog.Logger {
	if log := zerolog.Ctx(ctx); log.GetLevel() != zerolog.Disabled {
		return *log
	}
	return logger.Logger
}
