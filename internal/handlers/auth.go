package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/adr1ann32323/restorApp/internal/models"
	"github.com/adr1ann32323/restorApp/internal/store"
)

type AuthHandler struct {
	Store    *store.Store
	Secret   []byte
	TokenTTL time.Duration
}

// Basic email validation regex
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, hash, err := h.Store.GetUserByEmail(req.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	h.respondWithToken(w, http.StatusOK, *user)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Validation
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !isValidEmail(req.Email) {
		respondError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < 6 {
		respondError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		respondError(w, http.StatusBadRequest, "invalid role")
		return
	}

	existing, _, err := h.Store.GetUserByEmail(req.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing != nil {
		respondError(w, http.StatusBadRequest, "email is already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user, err := h.Store.CreateUser(req.Name, req.Email, string(hashed), role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	slog.Info("Registered user", "email", user.Email, "role", user.Role)
	h.respondWithToken(w, http.StatusCreated, *user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, user models.User) {
	token, err := IssueToken(h.Secret, user, h.TokenTTL)
	if err != nil {
		slog.Error("Failed to issue token", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, status, models.AuthResponse{Token: token, User: user})
}
