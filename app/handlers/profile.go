package main

import (
	"encoding/json"
	"net/http"

	"github.com/Hussein-shsx3/Server-New-Project/app/dto"
	"github.com/Hussein-shsx3/Server-New-Project/app/errors"
	authmw "github.com/Hussein-shsx3/Server-New-Project/app/middleware"
)

// meHandler returns the authenticated user's profile
func (app *application) meHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := authmw.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "user not found in context", http.StatusUnauthorized)
		return
	}

	profile, appErr := app.auth.Profile(r.Context(), user.ID)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(profile)
}

// updateProfileHandler updates name and avatar. Fields absent from the body
// are left unchanged.
func (app *application) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := authmw.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "user not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, errors.NewInvalidInput("invalid request body"))
		return
	}

	if req.Name != nil {
		name := sanitizeInput(*req.Name, 100, false)
		req.Name = &name
	}
	if req.Avatar != nil {
		avatar := sanitizeInput(*req.Avatar, 500, false)
		req.Avatar = &avatar
	}

	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	profile, appErr := app.auth.UpdateProfile(r.Context(), user.ID, req)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(profile)
}

// changePasswordHandler changes the password of an authenticated user after
// re-checking the current one.
func (app *application) changePasswordHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := authmw.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "user not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, errors.NewInvalidInput("invalid request body"))
		return
	}

	req.CurrentPassword = sanitizeInput(req.CurrentPassword, 128, true)
	req.NewPassword = sanitizeInput(req.NewPassword, 128, true)

	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	if appErr := app.auth.ChangePassword(r.Context(), user.ID, req); appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dto.MessageResponse{Message: "Password changed successfully"})
}
