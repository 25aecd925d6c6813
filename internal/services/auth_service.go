// Package services – AuthService
//
// This file implements AuthService, which owns account registration and
// login. Passwords are stored as bcrypt hashes only; successful logins mint a
// signed session token and stamp the user's last_login column.
package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dilazaad/go-support-backend/internal/domain"
	"github.com/dilazaad/go-support-backend/internal/repo"
	"github.com/dilazaad/go-support-backend/internal/utils"
)

const minPasswordRunes = 6

// AuthService provides registration and credential verification.
type AuthService struct {
	DB *gorm.DB

	// JWTSecret signs session tokens; TokenTTL bounds their lifetime.
	JWTSecret string
	TokenTTL  time.Duration
}

// Register creates a new account. The password is validated, hashed with
// bcrypt, and never stored in clear.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	tr := otel.Tracer("services/AuthService")
	ctx, span := tr.Start(ctx, "Register",
		trace.WithAttributes(attribute.String("user.name", username)),
	)
	defer span.End()

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if utf8.RuneCountInString(password) < minPasswordRunes {
		return nil, ErrWeakPassword
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u, err := repo.CreateUser(ctx, s.DB, username, email, hash)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and returns the user together with a signed
// session token. The last_login stamp is best-effort; a failed update does not
// fail the login.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	tr := otel.Tracer("services/AuthService")
	ctx, span := tr.Start(ctx, "Login",
		trace.WithAttributes(attribute.String("user.name", username)),
	)
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	u, err := repo.GetUserByUsername(ctx, s.DB, username)
	if err != nil {
		// Same answer for unknown user and wrong password.
		return nil, "", ErrInvalidCredentials
	}
	if !utils.CheckPassword(u.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.JWTSecret, u.ID, u.Username, s.TokenTTL)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	_ = repo.TouchLastLogin(ctx, s.DB, u.ID, now)
	u.LastLogin = &now

	return u, token, nil
}

// isUniqueViolation reports whether err looks like a unique-constraint breach.
// SQLite surfaces these as textual errors rather than a typed value, so the
// check is on the driver message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "constraint failed")
}
