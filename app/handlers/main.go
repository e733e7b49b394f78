package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hussein-shsx3/Server-New-Project/app/config"
	"github.com/Hussein-shsx3/Server-New-Project/app/dto"
	appErrors "github.com/Hussein-shsx3/Server-New-Project/app/errors"
	"github.com/Hussein-shsx3/Server-New-Project/app/logger"
	"github.com/Hussein-shsx3/Server-New-Project/app/models"
	"github.com/Hussein-shsx3/Server-New-Project/app/services"
	"github.com/Hussein-shsx3/Server-New-Project/app/store"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// authService is the account-lifecycle surface the handlers depend on.
// services.AuthService implements it; tests substitute a mock.
type authService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, *appErrors.AppError)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, *appErrors.AppError)
	VerifyEmail(ctx context.Context, req dto.VerifyEmailRequest) (*dto.UserResponse, *appErrors.AppError)
	ResendVerification(ctx context.Context, req dto.ResendVerificationRequest) *appErrors.AppError
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) *appErrors.AppError
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) *appErrors.AppError
	ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) *appErrors.AppError
	Profile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *appErrors.AppError)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserResponse, *appErrors.AppError)
}

// sessionService is the session surface the handlers and auth middleware use.
type sessionService interface {
	Rotate(ctx context.Context, refreshToken string) (*services.TokenPair, *models.User, *appErrors.AppError)
	Logout(ctx context.Context, accessToken string, userID uuid.UUID) *appErrors.AppError
	Authenticate(ctx context.Context, accessToken string) (*models.User, *appErrors.AppError)
}

type application struct {
	config      config.Config
	store       store.Storage
	auth        authService
	sessions    sessionService
	redisClient *redis.Client
	db          interface {
		PingContext(ctx context.Context) error
		Close() error
	}
	rabbitConn interface {
		IsClosed() bool
		Close() error
	}
	rabbitCh interface {
		IsClosed() bool
		Close() error
	}
}

func main() {
	logger.Init()

	// Load .env file (if it exists) and build the explicit config
	config.Load()
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("invalid configuration")
	}

	logger.Logger.Info().Str("addr", cfg.Addr).Msg("connecting to postgres")
	db, err := config.NewDB(cfg.DB)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	if err := store.RunMigrations(context.Background(), db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to apply database migrations")
	}

	logger.Logger.Info().Str("addr", cfg.RedisAddr).Int("db", cfg.RedisDB).Msg("connecting to redis")
	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	logger.Logger.Info().Msg("connecting to RabbitMQ")
	rabbitConn, rabbitCh, err := config.NewRabbitMQConnection(cfg.RabbitURL)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}

	storage := store.NewStorage(db)
	minter := services.NewTokenMinter(cfg)
	sessionSvc := services.NewSessionService(storage, minter, redisClient)
	publisher := services.NewRabbitMQPublisher(rabbitCh)
	authSvc := services.NewAuthService(storage, sessionSvc, minter, publisher, cfg)

	app := &application{
		config:      cfg,
		store:       storage,
		auth:        authSvc,
		sessions:    sessionSvc,
		redisClient: redisClient,
		db:          db,
		rabbitConn:  rabbitConn,
		rabbitCh:    rabbitCh,
	}

	if err := app.runWithGracefulShutdown(app.mount()); err != nil {
		logger.Logger.Fatal().Err(err).Msg("server error")
	}
}

// runWithGracefulShutdown starts the server, waits for SIGTERM/SIGINT, lets
// in-flight requests complete, then closes connections in order.
func (app *application) runWithGracefulShutdown(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.Addr,
		Handler:      mux,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Logger.Info().Str("addr", app.config.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Logger.Info().Str("signal", sig.String()).Msg("Received signal, starting graceful shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}
	logger.Logger.Info().Msg("Server gracefully stopped")

	if err := app.db.Close(); err != nil {
		logger.Logger.Error().Err(err).Msg("Error closing database")
	}
	if err := app.redisClient.Close(); err != nil {
		logger.Logger.Error().Err(err).Msg("Error closing Redis")
	}
	if err := app.rabbitCh.Close(); err != nil {
		logger.Logger.Error().Err(err).Msg("Error closing RabbitMQ channel")
	}
	if err := app.rabbitConn.Close(); err != nil {
		logger.Logger.Error().Err(err).Msg("Error closing RabbitMQ connection")
	}

	logger.Logger.Info().Msg("Graceful shutdown completed")
	return nil
}
