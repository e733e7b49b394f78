package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds every runtime setting the service needs. It is built once in
// main and handed to each component explicitly; no other package reads the
// environment for secrets or TTLs.
type Config struct {
	Addr string

	DB DBConfig

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RabbitURL string

	// Distinct signing secrets for the access and refresh tokens.
	AccessTokenSecret  string
	RefreshTokenSecret string

	AccessTokenTTL       time.Duration
	RefreshTokenTTL      time.Duration
	VerificationTokenTTL time.Duration
	ResetTokenTTL        time.Duration

	// FrontendBaseURL is the base for the verification/reset links placed in
	// outbound email.
	FrontendBaseURL string

	// RequireEmailVerification selects the registration policy: when true a
	// new account starts unverified and receives a verification email; when
	// false the account is created verified with no token step.
	RequireEmailVerification bool

	Environment        string
	CookieSecure       bool
	CORSAllowedOrigins []string
	MaxBodyBytes       int64
}

type DBConfig struct {
	Addr         string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

// FromEnv assembles a Config from the environment (after Load has been
// called). Values that are missing fall back to development defaults;
// Validate decides which of them are actually required.
func FromEnv() Config {
	dbUser := GetString("POSTGRES_USER", "postgres")
	dbPassword := GetString("POSTGRES_PASSWORD", "postgres")
	dbHost := GetString("POSTGRES_HOST", "localhost")
	dbPort := GetString("POSTGRES_PORT", "5432")
	dbName := GetString("POSTGRES_DB", "identity")
	dbSSLMode := GetString("POSTGRES_SSLMODE", "disable")

	dbAddr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPassword, dbHost, dbPort, dbName, dbSSLMode)

	environment := GetString("ENVIRONMENT", "development")

	var origins []string
	if raw := GetString("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			origins = append(origins, strings.TrimSpace(o))
		}
	}

	return Config{
		Addr: GetString("ADDR", ":8080"),
		DB: DBConfig{
			Addr:         dbAddr,
			MaxOpenConns: GetInt("DB_MAX_OPEN_CONNS", 30),
			MaxIdleConns: GetInt("DB_MAX_IDLE_CONNS", 30),
			MaxIdleTime:  GetDuration("DB_MAX_IDLE_TIME", 15*time.Minute),
		},
		RedisAddr:     GetString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: GetString("REDIS_PASSWORD", ""),
		RedisDB:       GetInt("REDIS_DB", 0),
		RabbitURL:     GetString("RABBITMQ_URL", ""),

		AccessTokenSecret:  GetString("JWT_ACCESS_SECRET", ""),
		RefreshTokenSecret: GetString("JWT_REFRESH_SECRET", ""),

		AccessTokenTTL:       GetDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:      GetDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		VerificationTokenTTL: GetDuration("VERIFICATION_TOKEN_TTL", 24*time.Hour),
		ResetTokenTTL:        GetDuration("RESET_TOKEN_TTL", time.Hour),

		FrontendBaseURL: GetString("FRONTEND_BASE_URL", "http://localhost:3000"),

		RequireEmailVerification: GetBool("REQUIRE_EMAIL_VERIFICATION", true),

		Environment:        environment,
		CookieSecure:       environment == "production" || GetBool("COOKIE_SECURE", false),
		CORSAllowedOrigins: origins,
		MaxBodyBytes:       int64(GetInt("REQUEST_BODY_MAX_SIZE", 1048576)),
	}
}

// Validate checks the settings the service cannot run without. It is called
// once at startup; a failure here is fatal.
func (c Config) Validate() error {
	if c.AccessTokenSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if c.RefreshTokenSecret == "" {
		return fmt.Errorf("JWT_REFRESH_SECRET is required")
	}
	if c.AccessTokenSecret == c.RefreshTokenSecret {
		return fmt.Errorf("access and refresh token secrets must differ")
	}
	if c.RabbitURL == "" {
		return fmt.Errorf("RABBITMQ_URL is required")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}
	if c.VerificationTokenTTL <= 0 || c.ResetTokenTTL <= 0 {
		return fmt.Errorf("single-use token TTLs must be positive")
	}
	return nil
}
