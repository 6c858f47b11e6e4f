// Package services – AuthService
//
// This file implements the AuthService, which manages email/password
// accounts and stateless JWT sessions. Registration normalizes the email,
// hashes the password with bcrypt, and relies on the database unique
// constraint for duplicate detection. Login compares the bcrypt hash and
// issues an HS256-signed token carrying the user id as subject. Logout is
// client-side token discard and needs no server state.
//
// Service-level errors (ErrEmailTaken, ErrInvalidCredentials,
// ErrInvalidToken) are returned for predictable cases so handlers can map
// them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/documind/go-documind-backend/internal/domain"
)

// UserRepo defines the repository contract required by AuthService.
type UserRepo interface {
	// CreateUser inserts a new account row; duplicate emails surface as a
	// raw DB error.
	CreateUser(ctx context.Context, db *gorm.DB, email, passwordHash string) (*domain.User, error)

	// GetUserByEmail fetches an account by its normalized email.
	GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error)

	// GetUser fetches an account by ID.
	GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error)
}

// AuthService provides account registration, credential verification, and
// JWT session handling.
type AuthService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the user repository used by this service.
	Repo UserRepo

	// Secret signs and verifies session tokens (HS256).
	Secret []byte
	// TokenTTL bounds token lifetime.
	TokenTTL time.Duration

	// now is injectable for tests.
	now func() time.Time
}

// NewAuthService constructs an AuthService with the given signing secret
// and token lifetime.
func NewAuthService(db *gorm.DB, r UserRepo, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		DB:       db,
		Repo:     r,
		Secret:   []byte(secret),
		TokenTTL: ttl,
		now:      time.Now,
	}
}

// Register creates a new account. The email is lowercased and trimmed
// before storage; the password is hashed with bcrypt at the default cost.
// Returns ErrEmailTaken when the email already belongs to an account.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := s.Repo.CreateUser(ctx, s.DB, email, string(hash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and returns a signed session token plus
// the account. Unknown email and wrong password both yield
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.Repo.GetUserByEmail(ctx, s.DB, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issue(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// CurrentUser resolves a session token to its account. Any verification
// failure, including expiry, yields ErrInvalidToken.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.VerifyToken(token)
	if err != nil {
		return nil, err
	}
	u, err := s.Repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// VerifyToken parses and validates a session token and returns the user id
// it carries.
func (s *AuthService) VerifyToken(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// issue signs a fresh token for userID.
func (s *AuthService) issue(userID string) (string, error) {
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isUniqueViolation reports whether err came from a UNIQUE constraint.
// glebarez/sqlite often returns plain-text errors instead of
// gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique")
}
