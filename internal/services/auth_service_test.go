package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dilazaad/go-support-backend/internal/utils"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		DB:        newTestDB(t),
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	s := newAuthService(t)

	u, err := s.Register(context.Background(), "amna", "amna@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.PasswordHash == "hunter22" || u.PasswordHash == "" {
		t.Fatalf("password stored in clear or empty")
	}
	if !utils.CheckPassword(u.PasswordHash, "hunter22") {
		t.Fatalf("stored hash does not verify")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "", "a@example.com", "hunter22"); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("missing username: %v", err)
	}
	if _, err := s.Register(ctx, "amna", "", "hunter22"); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("missing email: %v", err)
	}
	if _, err := s.Register(ctx, "amna", "a@example.com", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("short password: %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "amna", "amna@example.com", "hunter22"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := s.Register(ctx, "amna", "other@example.com", "hunter22"); !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("duplicate username: %v", err)
	}
	if _, err := s.Register(ctx, "other", "amna@example.com", "hunter22"); !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("duplicate email: %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "amna", "amna@example.com", "hunter22"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	u, token, err := s.Login(ctx, "amna", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.LastLogin == nil {
		t.Fatalf("last login not stamped")
	}

	claims, err := utils.ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != u.ID || claims.Username != "amna" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "amna", "amna@example.com", "hunter22"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, _, err := s.Login(ctx, "amna", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, _, err := s.Login(ctx, "nobody", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: %v", err)
	}
	if _, _, err := s.Login(ctx, "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("blank credentials: %v", err)
	}
}
