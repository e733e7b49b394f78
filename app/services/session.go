package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	appErrors "github.com/Hussein-shsx3/Server-New-Project/app/errors"
	"github.com/Hussein-shsx3/Server-New-Project/app/models"
	"github.com/Hussein-shsx3/Server-New-Project/app/store"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "blacklist:access_token:"

// TokenPair is one access/refresh issuance. MaxAge values are what the
// transport layer should put on cookies.
type TokenPair struct {
	AccessToken   string
	RefreshToken  string
	AccessMaxAge  time.Duration
	RefreshMaxAge time.Duration
}

// SessionService owns issuance, verification, rotation, and revocation of
// the access/refresh token pair bound to an account. The account row holds
// the single trusted refresh token; Redis holds the logout blacklist for
// access tokens that must die before their natural expiry.
type SessionService struct {
	store       store.Storage
	minter      *TokenMinter
	redisClient *redis.Client
}

func NewSessionService(store store.Storage, minter *TokenMinter, redisClient *redis.Client) *SessionService {
	return &SessionService{
		store:       store,
		minter:      minter,
		redisClient: redisClient,
	}
}

// IssuePair mints a fresh access/refresh pair and persists the refresh value
// on the account row, replacing whatever was trusted before.
func (s *SessionService) IssuePair(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	accessToken, err := s.minter.SignAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refreshToken, err := s.minter.SignRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.store.Users.SetRefreshToken(ctx, userID, &refreshToken); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		AccessMaxAge:  s.minter.AccessTokenTTL(),
		RefreshMaxAge: s.minter.RefreshTokenTTL(),
	}, nil
}

// Rotate exchanges a refresh token for a brand-new pair. The presented value
// must verify AND byte-match the stored one; a token superseded by an earlier
// rotation fails even when its signature is still good.
func (s *SessionService) Rotate(ctx context.Context, refreshToken string) (*TokenPair, *models.User, *appErrors.AppError) {
	claims, err := s.minter.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, appErrors.NewUnauthorized("invalid or expired refresh token")
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, nil, appErrors.NewUnauthorized("invalid or expired refresh token")
	}

	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.NewUnauthorized("invalid or expired refresh token")
		}
		return nil, nil, appErrors.NewInternal("error loading user for refresh")
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, nil, appErrors.NewUnauthorized("invalid or expired refresh token")
	}

	pair, err := s.IssuePair(ctx, userID)
	if err != nil {
		return nil, nil, appErrors.NewInternal("error issuing token pair")
	}
	return pair, user, nil
}

// Revoke clears the stored refresh token; any previously issued refresh
// token becomes permanently unusable.
func (s *SessionService) Revoke(ctx context.Context, userID uuid.UUID) *appErrors.AppError {
	if err := s.store.Users.SetRefreshToken(ctx, userID, nil); err != nil {
		return appErrors.NewInternal("error revoking refresh token")
	}
	return nil
}

// Logout revokes the refresh token and blacklists the presented access token
// until its natural expiry, so it stops working immediately.
func (s *SessionService) Logout(ctx context.Context, accessToken string, userID uuid.UUID) *appErrors.AppError {
	if appErr := s.Revoke(ctx, userID); appErr != nil {
		return appErr
	}
	if err := s.blacklistAccessToken(ctx, accessToken); err != nil {
		return appErrors.NewInternal("error blacklisting access token")
	}
	return nil
}

// Authenticate verifies an access token and resolves its account.
func (s *SessionService) Authenticate(ctx context.Context, accessToken string) (*models.User, *appErrors.AppError) {
	claims, err := s.minter.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, appErrors.NewUnauthorized("invalid or expired token")
	}

	// Blacklist check by JTI
	if claims.ID != "" && s.redisClient != nil {
		exists, err := s.redisClient.Exists(ctx, blacklistKey(claims.ID)).Result()
		if err != nil {
			return nil, appErrors.NewInternal("blacklist lookup failed")
		}
		if exists > 0 {
			return nil, appErrors.NewUnauthorized("invalid or expired token")
		}
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, appErrors.NewUnauthorized("invalid or expired token")
	}

	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewUnauthorized("invalid or expired token")
		}
		return nil, appErrors.NewInternal("error loading user")
	}
	return user, nil
}

// blacklistAccessToken stores the token JTI in Redis until its expiration.
// An already-expired token needs no entry.
func (s *SessionService) blacklistAccessToken(ctx context.Context, accessToken string) error {
	claims, err := s.minter.VerifyAccessToken(accessToken)
	if err != nil {
		return err
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return fmt.Errorf("token missing jti or exp")
	}

	expiry := time.Until(claims.ExpiresAt.Time)
	if expiry <= 0 {
		return nil
	}
	return s.redisClient.Set(ctx, blacklistKey(claims.ID), "revoked", expiry).Err()
}

func blacklistKey(jti string) string {
	return blacklistPrefix + jti
}
