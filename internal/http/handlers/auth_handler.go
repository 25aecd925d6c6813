// Account HTTP handlers.
//
// This file exposes REST endpoints for the account lifecycle:
//   - POST /auth/register   (create account)
//   - POST /auth/login      (verify credentials, mint session token)
//   - POST /auth/logout     (stateless acknowledgement)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dilazaad/go-support-backend/internal/domain"
	"github.com/dilazaad/go-support-backend/internal/services"
)

// AuthService defines the account operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AuthService interface {
	// Register creates a new account with a hashed password.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login verifies credentials and returns the user plus a session token.
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
}

// RegisterRequest is the JSON payload for creating an account.
type RegisterRequest struct {
	Username string `json:"username" example:"amna"`
	Email    string `json:"email" example:"amna@example.com"`
	Password string `json:"password" example:"hunter22"`
}

// LoginRequest is the JSON payload for logging in.
type LoginRequest struct {
	Username string `json:"username" example:"amna"`
	Password string `json:"password" example:"hunter22"`
}

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// LoginResponse carries the session token alongside the account.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

// Register handles POST /auth/register.
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	u, err := h.authSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	switch {
	case err == nil:
		ok(c, http.StatusCreated, toUserResponse(u))
	case errors.Is(err, services.ErrDuplicateUser):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, services.ErrMissingFields), errors.Is(err, services.ErrWeakPassword):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not create account")
	}
}

// Login handles POST /auth/login.
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	u, token, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		ok(c, http.StatusOK, LoginResponse{Token: token, User: toUserResponse(u)})
	case errors.Is(err, services.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not log in")
	}
}

// Logout handles POST /auth/logout. Sessions are stateless JWTs, so the
// server has nothing to invalidate; the client discards its token.
func (h *Handlers) Logout(c *gin.Context) {
	noContent(c)
}
