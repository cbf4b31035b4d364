package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stockpulse/stockpulse/internal/repo"
	"github.com/stockpulse/stockpulse/internal/token"
	"golang.org/x/crypto/bcrypt"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users  *repo.UserRepo
	Tokens *token.Issuer

	// ExposeErrors includes internal error detail in responses (dev only).
	ExposeErrors bool
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, http.StatusBadRequest, "All fields are required", err, h.ExposeErrors)
		return
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		JSONError(w, http.StatusBadRequest, "All fields are required", nil, h.ExposeErrors)
		return
	}

	if _, err := h.Users.GetByEmail(r.Context(), input.Email); err == nil {
		JSONError(w, http.StatusBadRequest, "User already exists", nil, h.ExposeErrors)
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		slog.Error("register: lookup failed", "err", err)
		JSONError(w, http.StatusInternalServerError, "Error creating user", err, h.ExposeErrors)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "Error creating user", err, h.ExposeErrors)
		return
	}

	user, err := h.Users.Create(r.Context(), input.Name, input.Email, string(hash))
	if err != nil {
		// Concurrent register with the same email loses to the unique constraint.
		if repo.IsUniqueViolation(err) {
			JSONError(w, http.StatusBadRequest, "Email already exists", nil, h.ExposeErrors)
			return
		}
		slog.Error("register: create user failed", "err", err)
		JSONError(w, http.StatusInternalServerError, "Error creating user", err, h.ExposeErrors)
		return
	}

	signed, err := h.Tokens.Issue(user.ID)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "Error creating user", err, h.ExposeErrors)
		return
	}

	slog.Info("user registered", "email", user.Email)
	JSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"token":   signed,
		"user":    user,
	})
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, http.StatusBadRequest, "Email and password are required", err, h.ExposeErrors)
		return
	}
	if input.Email == "" || input.Password == "" {
		JSONError(w, http.StatusBadRequest, "Email and password are required", nil, h.ExposeErrors)
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), input.Email)
	if err != nil {
		// Unknown email and wrong password are indistinguishable to the client.
		JSONError(w, http.StatusUnauthorized, "Invalid credentials", nil, h.ExposeErrors)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		JSONError(w, http.StatusUnauthorized, "Invalid credentials", nil, h.ExposeErrors)
		return
	}

	signed, err := h.Tokens.Issue(user.ID)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "Error logging in", err, h.ExposeErrors)
		return
	}

	slog.Info("user logged in", "email", user.Email)
	JSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   signed,
		"user":    user,
	})
}
