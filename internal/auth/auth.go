// In file: internal/auth/auth.go

// Package auth issues and verifies JWT access tokens for the gateway. It sits
// outside the MCP core: handlers depend on it, the engine does not.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dileep-u-k/mcp-gateway/internal/store"
)

// Sentinel errors for authentication failures.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// TokenTTL is the access-token lifetime.
const TokenTTL = 60 * time.Minute

// Claims is the JWT payload: registered claims plus the username and admin
// flag the handlers need.
type Claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Identity is the verified caller attached to authenticated requests.
type Identity struct {
	UserID   string
	Username string
	IsAdmin  bool
}

// Credentials is the result of a successful register/login.
type Credentials struct {
	AccessToken string
	UserID      string
	ExpiresIn   int
}

// Manager handles user registration, login, and token verification.
type Manager struct {
	store  *store.Store
	secret []byte
}

// NewManager creates an auth manager backed by the given store.
func NewManager(st *store.Store, secret string) *Manager {
	return &Manager{store: st, secret: []byte(secret)}
}

// Register creates a user with a bcrypt-hashed password and returns a fresh
// token.
func (m *Manager) Register(ctx context.Context, username, password string) (*Credentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := m.store.CreateUser(ctx, username, string(hash))
	if err != nil {
		return nil, err
	}
	return m.issueToken(userID, username, false)
}

// Login verifies the password against the stored hash and returns a fresh
// token. Unknown users and wrong passwords are indistinguishable to callers.
func (m *Manager) Login(ctx context.Context, username, password string) (*Credentials, error) {
	user, err := m.store.UserByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return m.issueToken(user.ID, user.Username, user.IsAdmin)
}

// VerifyToken parses and validates a bearer token, returning the caller's
// identity.
func (m *Manager) VerifyToken(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &Identity{
		UserID:   claims.Subject,
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
	}, nil
}

func (m *Manager) issueToken(userID, username string, isAdmin bool) (*Credentials, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &Credentials{
		AccessToken: signed,
		UserID:      userID,
		ExpiresIn:   int(TokenTTL.Seconds()),
	}, nil
}
