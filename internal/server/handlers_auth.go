package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/vitae/internal/common"
	"github.com/bobmcallan/vitae/internal/models"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userResponse is the public view of an account.
type userResponse struct {
	UserID      string                 `json:"user_id"`
	Name        string                 `json:"name"`
	Email       string                 `json:"email"`
	Preferences models.UserPreferences `json:"preferences"`
	CreatedAt   time.Time              `json:"created_at"`
	LastLogin   time.Time              `json:"last_login"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		UserID:      u.UserID,
		Name:        u.Name,
		Email:       u.Email,
		Preferences: u.Preferences,
		CreatedAt:   u.CreatedAt,
		LastLogin:   u.LastLogin,
	}
}

// handleRegister handles POST /api/auth/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Name == "" || req.Email == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "Please provide all required fields")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid value for: "+strings.Join(validationFields(err), ", "))
		return
	}

	ctx := r.Context()
	store := s.app.Storage.UserStore()

	if _, err := store.GetUserByEmail(ctx, req.Email); err == nil {
		WriteError(w, http.StatusBadRequest, "User with that email already exists")
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error().Err(err).Msg("Failed to look up user by email")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	now := time.Now().UTC()
	user := &models.User{
		UserID:       uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Preferences:  models.DefaultPreferences(),
		CreatedAt:    now,
		LastLogin:    now,
	}

	if err := store.SaveUser(ctx, user); err != nil {
		if errors.Is(err, models.ErrConflict) {
			WriteError(w, http.StatusBadRequest, "User with that email already exists")
			return
		}
		s.logger.Error().Err(err).Msg("Failed to save user")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := signJWT(user, &s.app.Config.Auth, now)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign token")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.logger.Info().Str("user_id", user.UserID).Msg("User registered")

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "User registered successfully",
		"token":   token,
	})
}

// handleLogin handles POST /api/auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.validate.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, "Please provide both email and password")
		return
	}

	ctx := r.Context()
	store := s.app.Storage.UserStore()

	user, err := store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.logger.Error().Err(err).Msg("Failed to look up user by email")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !checkPassword(user.PasswordHash, req.Password) {
		WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now().UTC()
	user.LastLogin = now
	if err := store.SaveUser(ctx, user); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.UserID).Msg("Failed to record last login")
	}

	token, err := signJWT(user, &s.app.Config.Auth, now)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign token")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged in successfully",
		"token":   token,
	})
}

// handleProfile handles GET /api/auth/profile.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user := common.UserFromContext(r.Context())
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User profile retrieved successfully",
		"user":    newUserResponse(user),
	})
}
