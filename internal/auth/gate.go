// Package auth implements login sessions and the route guards built on them.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"appeal-archive/internal/db"
	"appeal-archive/internal/models"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

type UserStore interface {
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

// Gate checks credentials and resolves session tokens to users.
type Gate struct {
	users    UserStore
	sessions SessionStore
	ttl      time.Duration
}

func NewGate(users UserStore, sessions SessionStore, ttl time.Duration) *Gate {
	return &Gate{users: users, sessions: sessions, ttl: ttl}
}

// Login verifies the credentials and opens a session for the user.
func (g *Gate) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	if username == "" || password == "" {
		return "", nil, ErrMissingCredentials
	}

	user, err := g.users.UserByUsername(ctx, username)
	if errors.Is(err, db.ErrUserNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := g.sessions.CreateSession(ctx, token, user.ID, g.ttl); err != nil {
		return "", nil, fmt.Errorf("login %s: %w", username, err)
	}
	return token, user, nil
}

func (g *Gate) Logout(ctx context.Context, token string) error {
	return g.sessions.DeleteSession(ctx, token)
}

// Authenticate resolves token to its user. Unknown, expired or orphaned
// sessions all yield ErrNotAuthenticated.
func (g *Gate) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	userID, err := g.sessions.SessionUser(ctx, token)
	if errors.Is(err, db.ErrSessionNotFound) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}
	user, err := g.users.UserByID(ctx, userID)
	if errors.Is(err, db.ErrUserNotFound) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
