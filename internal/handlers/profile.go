package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/stockpulse/stockpulse/internal/middleware"
	"github.com/stockpulse/stockpulse/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// ==========================
// Profile Handler
// ==========================
type ProfileHandler struct {
	Users        *repo.UserRepo
	ExposeErrors bool
}

// ==========================
// Get Profile
// ==========================
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Authentication required", nil, h.ExposeErrors)
		return
	}

	user, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		JSONError(w, http.StatusNotFound, "User not found", nil, h.ExposeErrors)
		return
	}

	JSON(w, http.StatusOK, user)
}

// ==========================
// Update Profile
// ==========================
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Authentication required", nil, h.ExposeErrors)
		return
	}

	// Pointers distinguish "field omitted" from "set to empty".
	var input struct {
		FullName *string `json:"fullName"`
		Email    *string `json:"email"`
		Phone    *string `json:"phone"`
		Location *string `json:"location"`
		Bio      *string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body", err, h.ExposeErrors)
		return
	}

	user, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		JSONError(w, http.StatusNotFound, "User not found", nil, h.ExposeErrors)
		return
	}

	name, email := user.Name, user.Email
	phone, location, bio := user.Phone, user.Location, user.Bio
	if input.FullName != nil && *input.FullName != "" {
		name = *input.FullName
	}
	if input.Email != nil && *input.Email != "" {
		email = *input.Email
	}
	if input.Phone != nil {
		phone = *input.Phone
	}
	if input.Location != nil {
		location = *input.Location
	}
	if input.Bio != nil {
		bio = *input.Bio
	}

	updated, err := h.Users.UpdateProfile(r.Context(), userID, name, email, phone, location, bio)
	if err != nil {
		if repo.IsUniqueViolation(err) {
			JSONError(w, http.StatusBadRequest, "Email already exists", nil, h.ExposeErrors)
			return
		}
		slog.Error("profile update failed", "user_id", userID, "err", err)
		JSONError(w, http.StatusInternalServerError, "Error updating profile", err, h.ExposeErrors)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    updated,
	})
}

// ==========================
// Update Password
// ==========================
func (h *ProfileHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Authentication required", nil, h.ExposeErrors)
		return
	}

	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, http.StatusBadRequest, "Current password and new password are required", err, h.ExposeErrors)
		return
	}
	if input.CurrentPassword == "" || input.NewPassword == "" {
		JSONError(w, http.StatusBadRequest, "Current password and new password are required", nil, h.ExposeErrors)
		return
	}

	user, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		JSONError(w, http.StatusNotFound, "User not found", nil, h.ExposeErrors)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		JSONError(w, http.StatusUnauthorized, "Current password is incorrect", nil, h.ExposeErrors)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "Error updating password", err, h.ExposeErrors)
		return
	}

	if err := h.Users.UpdatePassword(r.Context(), userID, string(hash)); err != nil {
		slog.Error("password update failed", "user_id", userID, "err", err)
		JSONError(w, http.StatusInternalServerError, "Error updating password", err, h.ExposeErrors)
		return
	}

	JSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}
