package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dilazaad/go-support-backend/internal/domain"
	"github.com/dilazaad/go-support-backend/internal/services"
)

type stubAuthService struct {
	user  *domain.User
	token string
	err   error
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	return s.user, s.token, s.err
}

func authTestRouter(svc AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(svc, nil, nil, nil)
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	return r
}

func postBody(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegister_Created(t *testing.T) {
	now := time.Now()
	svc := &stubAuthService{user: &domain.User{
		ID: 1, Username: "amna", Email: "amna@example.com", CreatedAt: now,
	}}
	r := authTestRouter(svc)

	w := postBody(r, "/auth/register", `{"username":"amna","email":"amna@example.com","password":"hunter22"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}
	var out UserResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if out.ID != 1 || out.Username != "amna" {
		t.Fatalf("body = %+v", out)
	}
}

func TestRegister_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.ErrDuplicateUser, http.StatusConflict},
		{services.ErrMissingFields, http.StatusBadRequest},
		{services.ErrWeakPassword, http.StatusBadRequest},
	}
	for _, tc := range cases {
		r := authTestRouter(&stubAuthService{err: tc.err})
		w := postBody(r, "/auth/register", `{"username":"a","email":"b","password":"c"}`)
		if w.Code != tc.want {
			t.Fatalf("%v -> %d; want %d", tc.err, w.Code, tc.want)
		}
	}
}

func TestRegister_MalformedJSON(t *testing.T) {
	r := authTestRouter(&stubAuthService{})
	if w := postBody(r, "/auth/register", `{`); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestLogin_TokenReturned(t *testing.T) {
	svc := &stubAuthService{
		user:  &domain.User{ID: 2, Username: "amna", Email: "amna@example.com"},
		token: "jwt-token",
	}
	r := authTestRouter(svc)

	w := postBody(r, "/auth/login", `{"username":"amna","password":"hunter22"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var out LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if out.Token != "jwt-token" || out.User.ID != 2 {
		t.Fatalf("body = %+v", out)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	r := authTestRouter(&stubAuthService{err: services.ErrInvalidCredentials})
	if w := postBody(r, "/auth/login", `{"username":"a","password":"b"}`); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestLogout_NoContent(t *testing.T) {
	r := authTestRouter(&stubAuthService{})
	if w := postBody(r, "/auth/logout", ""); w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
}
