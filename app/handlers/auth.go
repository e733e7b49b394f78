package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Hussein-shsx3/Server-New-Project/app/docs"
	"github.com/Hussein-shsx3/Server-New-Project/app/dto"
	"github.com/Hussein-shsx3/Server-New-Project/app/errors"
	"github.com/Hussein-shsx3/Server-New-Project/app/metrics"
	authmw "github.com/Hussein-shsx3/Server-New-Project/app/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *application) mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(authmw.RequestIDTracing()) // Propagate request ID to logger and context
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Use(authmw.Metrics())
	r.Use(authmw.SecurityHeaders(app.config.Environment == "production"))
	r.Use(authmw.CORS(app.config.CORSAllowedOrigins))
	r.Use(authmw.BodyLimit(app.config.MaxBodyBytes))

	// Request-scoped timeout; further processing stops once ctx.Done() fires.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/auth/v1", func(r chi.Router) {
		r.Get("/health", http.HandlerFunc(app.healthCheckHandler))
		r.Get("/metrics", metrics.MetricsHandler().ServeHTTP)

		// OpenAPI documentation endpoint
		r.Get("/openapi.json", app.openAPIHandler)

		// Authentication endpoints
		r.Post("/register", http.HandlerFunc(app.registerHandler))
		r.Post("/login", http.HandlerFunc(app.loginHandler))
		r.Post("/refresh", http.HandlerFunc(app.refreshHandler))
		r.Get("/verify-email", http.HandlerFunc(app.verifyEmailHandler))
		r.Post("/verify-email", http.HandlerFunc(app.verifyEmailHandler))
		r.Post("/resend-verification", http.HandlerFunc(app.resendVerificationHandler))
		r.Post("/forgot-password", http.HandlerFunc(app.forgotPasswordHandler))
		r.Post("/reset-password", http.HandlerFunc(app.resetPasswordHandler))

		// Protected endpoints
		r.Group(func(pr chi.Router) {
			pr.Use(authmw.RequireAuth(app.sessions))
			pr.Post("/logout", http.HandlerFunc(app.logoutHandler))
			pr.Get("/me", http.HandlerFunc(app.meHandler))
			pr.Put("/me", http.HandlerFunc(app.updateProfileHandler))
			pr.Put("/me/password", http.HandlerFunc(app.changePasswordHandler))
		})
	})
	return r
}

// registerHandler handles user registration
func (app *application) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, errors.NewInvalidInput("invalid request body"))
		return
	}

	// Sanitize before validation; passwords keep their special characters
	req.Email = sanitizeEmail(req.Email, 255)
	req.Name = sanitizeInput(req.Name, 100, false)
	req.Password = sanitizeInput(req.Password, 128, true)

	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	resp, appErr := app.auth.Register(r.Context(), req)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	metrics.RecordRegistration()

	app.setRefreshCookie(w, resp.RefreshToken)
	w.Header().Set("Authorization", "Bearer "+resp.AccessToken)
	// Do not return the refresh token in the body for browser clients.
	resp.RefreshToken = ""

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// loginHandler handles user login
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, errors.NewInvalidInput("invalid request body"))
		return
	}

	req.Email = sanitizeEmail(req.Email, 255)
	req.Password = sanitizeInput(req.Password, 128, true)

	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	resp, appErr := app.auth.Login(r.Context(), req)
	if appErr != nil {
		if appErr.Code == errors.ErrCodeInvalidCredentials {
			metrics.RecordLoginFailed()
		}
		writeErrorResponse(w, appErr)
		return
	}
	metrics.RecordLogin()

	app.setRefreshCookie(w, resp.RefreshToken)
	w.Header().Set("Authorization", "Bearer "+resp.AccessToken)
	resp.RefreshToken = ""

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// refreshHandler rotates the refresh token and issues a new access token.
// The refresh token arrives as an http-only cookie for browser clients, or
// in the body for API clients.
func (app *application) refreshHandler(w http.ResponseWriter, r *http.Request) {
	refreshToken := ""
	if c, err := r.Cookie("refresh_token"); err == nil {
		refreshToken = c.Value
	}
	if refreshToken == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			refreshToken = body.RefreshToken
		}
	}
	if refreshToken == "" {
		http.Error(w, "missing refresh token", http.StatusUnauthorized)
		return
	}

	pair, user, appErr := app.sessions.Rotate(r.Context(), refreshToken)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	metrics.RecordTokenRefresh()

	app.setRefreshCookie(w, pair.RefreshToken)
	w.Header().Set("Authorization", "Bearer "+pair.AccessToken)

	resp := dto.AuthResponse{
		AccessToken: pair.AccessToken,
		User:        dto.NewUserResponse(user),
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// logoutHandler revokes the session: refresh token cleared server-side,
// access token blacklisted until its natural expiry.
func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := authmw.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "user not found in context", http.StatusUnauthorized)
		return
	}

	authHeader := r.Header.Get("Authorization")
	accessToken := strings.TrimPrefix(authHeader, "Bearer ")

	if appErr := app.sessions.Logout(r.Context(), accessToken, user.ID); appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	app.clearRefreshCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// verifyEmailHandler handles email verification using the single-use token
// from the emailed link (GET query param or POST body).
func (app *application) verifyEmailHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyEmailRequest

	if r.Method == http.MethodGet {
		req.Token = r.URL.Query().Get("token")
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, errors.NewInvalidInput("invalid request body"))
			return
		}
	}

	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	user, appErr := app.auth.VerifyEmail(r.Context(), req)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	metrics.RecordEmailVerification()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"message": "Email verified successfully",
		"user":    user,
	})
}

// resendVerificationHandler mints a fresh verification token. The response
// for an unknown email is indistinguishable from a successful resend.
func (app *application) resendVerificationHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendVerificationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, errors.NewInvalidInput("invalid request body"))
		return
	}

	req.Email = sanitizeEmail(req.Email, 255)
	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	if appErr := app.auth.ResendVerification(r.Context(), req); appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(dto.MessageResponse{
		Message: "If an account with that email exists, a verification link has been sent.",
	})
}

// forgotPasswordHandler handles unauthenticated password reset requests.
// Always answers with the same generic success so callers cannot probe which
// emails are registered.
func (app *application) forgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, errors.NewInvalidInput("invalid request body"))
		return
	}

	req.Email = sanitizeEmail(req.Email, 255)
	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	if appErr := app.auth.ForgotPassword(r.Context(), req); appErr != nil {
		// Errors are logged in the service; the response stays generic.
		_ = appErr
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(dto.MessageResponse{
		Message: "If an account with that email exists, a password reset link has been sent.",
	})
}

// resetPasswordHandler handles password reset using the token from email.
func (app *application) resetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, errors.NewInvalidInput("invalid request body"))
		return
	}

	req.NewPassword = sanitizeInput(req.NewPassword, 128, true)
	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	if appErr := app.auth.ResetPassword(r.Context(), req); appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	metrics.RecordPasswordReset()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dto.MessageResponse{
		Message: "Password reset successfully. Please login with your new password.",
	})
}

// openAPIHandler returns the OpenAPI specification
func (app *application) openAPIHandler(w http.ResponseWriter, r *http.Request) {
	docs.OpenAPIHandler(w, r)
}

// setRefreshCookie stores the refresh token as an http-only, same-site-strict
// cookie scoped to the auth routes.
func (app *application) setRefreshCookie(w http.ResponseWriter, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/auth/v1",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   app.config.CookieSecure,
		MaxAge:   int(app.config.RefreshTokenTTL.Seconds()),
	})
}

func (app *application) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/auth/v1",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   app.config.CookieSecure,
		MaxAge:   -1,
	})
}

// writeErrorResponse writes an error response in a consistent format
func writeErrorResponse(w http.ResponseWriter, appErr *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)

	errResp := dto.ErrorResponse{
		Error: appErr.Message,
		Code:  string(appErr.Code),
	}

	json.NewEncoder(w).Encode(errResp)
}
