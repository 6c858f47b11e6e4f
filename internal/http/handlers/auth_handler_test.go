package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/documind/go-documind-backend/internal/domain"
	"github.com/documind/go-documind-backend/internal/services"
)

// fakeAuthSvc scripts auth outcomes per test.
type fakeAuthSvc struct {
	registerUser *domain.User
	registerErr  error
	loginToken   string
	loginUser    *domain.User
	loginErr     error
	currentUser  *domain.User
	currentErr   error
}

func (f *fakeAuthSvc) Register(_ context.Context, _, _ string) (*domain.User, error) {
	return f.registerUser, f.registerErr
}

func (f *fakeAuthSvc) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	return f.loginToken, f.loginUser, f.loginErr
}

func (f *fakeAuthSvc) CurrentUser(_ context.Context, _ string) (*domain.User, error) {
	return f.currentUser, f.currentErr
}

func newAuthRouter(svc AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(svc, nil, nil, nil, nil)
	r := gin.New()
	r.POST("/auth/signup", h.Signup)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", h.Me)
	r.POST("/auth/logout", h.Logout)
	return r
}

func TestSignup_Created(t *testing.T) {
	r := newAuthRouter(&fakeAuthSvc{registerUser: &domain.User{ID: "u1", Email: "a@b.com"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"email":"a@b.com","password":"longenough"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var u domain.User
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil || u.ID != "u1" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("password material leaked: %s", w.Body.String())
	}
}

func TestSignup_Validation(t *testing.T) {
	r := newAuthRouter(&fakeAuthSvc{})

	// short password fails binding
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"email":"a@b.com","password":"short"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("short password: status=%d", w.Code)
	}
}

func TestSignup_EmailTaken(t *testing.T) {
	r := newAuthRouter(&fakeAuthSvc{registerErr: services.ErrEmailTaken})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"email":"a@b.com","password":"longenough"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestLogin_OKAndUnauthorized(t *testing.T) {
	r := newAuthRouter(&fakeAuthSvc{loginToken: "tok", loginUser: &domain.User{ID: "u1"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"a@b.com","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token != "tok" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	r = newAuthRouter(&fakeAuthSvc{loginErr: services.ErrInvalidCredentials})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"a@b.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad creds: status=%d", w.Code)
	}
}

func TestMe_RequiresBearer(t *testing.T) {
	r := newAuthRouter(&fakeAuthSvc{currentUser: &domain.User{ID: "u1", Email: "a@b.com"}})

	// no header
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: status=%d", w.Code)
	}

	// with header
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("with token: status=%d body=%s", w.Code, w.Body.String())
	}

	// invalid token
	r = newAuthRouter(&fakeAuthSvc{currentErr: services.ErrInvalidToken})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer bad")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("invalid token: status=%d", w.Code)
	}
}

func TestLogout_NoContent(t *testing.T) {
	r := newAuthRouter(&fakeAuthSvc{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d", w.Code)
	}
}
