package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"timetable-portal/api"
	"timetable-portal/internal/gateway"
	"timetable-portal/pkg/response"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
)

// Claims are the identity fields the backend bakes into the access token.
type Claims struct {
	Username string
	Role     Role
	Expiry   time.Time
}

type Session struct {
	Token  string
	Claims Claims
}

// Expired reports whether the access token is past its exp claim. Tokens
// without an exp claim never expire from the portal's point of view.
func (s *Session) Expired() bool {
	return !s.Claims.Expiry.IsZero() && time.Now().After(s.Claims.Expiry)
}

// ParseClaims decodes the token payload without verifying the signature.
// The backend already validated the token when it issued it; the portal
// only needs the identity fields out of it.
func ParseClaims(token string) (Claims, error) {
	const op = "session.ParseClaims"

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Claims{}, fmt.Errorf("%s: %w", op, response.ErrMalformedToken)
	}

	out := Claims{}

	if username, ok := claims["username"].(string); ok {
		out.Username = username
	}
	if role, ok := claims["role"].(string); ok {
		out.Role = Role(role)
	}
	if exp, ok := claims["exp"].(float64); ok {
		out.Expiry = time.Unix(int64(exp), 0)
	}

	if out.Username == "" || out.Role == "" {
		return Claims{}, fmt.Errorf("%s: %w", op, response.ErrMalformedToken)
	}

	return out, nil
}

// Manager owns the authentication lifecycle for portal sessions.
type Manager struct {
	gw    *gateway.Client
	store CredentialStore
}

func NewManager(gw *gateway.Client, store CredentialStore) *Manager {
	return &Manager{gw: gw, store: store}
}

// Login exchanges credentials for a token pair, decodes the identity out of
// the access token and persists the pair under the session id.
func (m *Manager) Login(ctx context.Context, sid, username, password string) (*Session, error) {
	const op = "session.Manager.Login"

	var pair api.TokenPair
	err := m.gw.Post(ctx, "auth/login/", "", api.LoginRequest{Username: username, Password: password}, &pair)
	if errors.Is(err, response.ErrUnauthorized) || errors.Is(err, response.ErrBadRequest) {
		return nil, fmt.Errorf("%s: %w", op, response.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	claims, err := ParseClaims(pair.Access)
	if err != nil {
		// A 200 with an undecodable token is still a failed login; nothing
		// gets persisted.
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := m.store.Save(ctx, sid, Credentials{Access: pair.Access, Refresh: pair.Refresh}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Session{Token: pair.Access, Claims: claims}, nil
}

// Restore rebuilds a session from persisted credentials. Missing or
// undecodable credentials yield (nil, nil): a stale token must never break
// a request, it just means unauthenticated.
func (m *Manager) Restore(ctx context.Context, sid string) (*Session, error) {
	const op = "session.Manager.Restore"

	creds, err := m.store.Load(ctx, sid)
	if errors.Is(err, ErrNoCredentials) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	claims, err := ParseClaims(creds.Access)
	if err != nil {
		_ = m.store.Delete(ctx, sid)
		return nil, nil
	}

	return &Session{Token: creds.Access, Claims: claims}, nil
}

// Refresh trades the stored refresh token for a new access token. On any
// failure the credentials are cleared so the next request starts clean.
func (m *Manager) Refresh(ctx context.Context, sid string) (*Session, error) {
	const op = "session.Manager.Refresh"

	creds, err := m.store.Load(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, response.ErrUnauthorized)
	}
	if creds.Refresh == "" {
		_ = m.store.Delete(ctx, sid)
		return nil, fmt.Errorf("%s: %w", op, response.ErrUnauthorized)
	}

	var refreshed api.RefreshResponse
	if err := m.gw.Post(ctx, "auth/refresh/", "", api.RefreshRequest{Refresh: creds.Refresh}, &refreshed); err != nil {
		_ = m.store.Delete(ctx, sid)
		return nil, fmt.Errorf("%s: %w", op, response.ErrUnauthorized)
	}

	claims, err := ParseClaims(refreshed.Access)
	if err != nil {
		_ = m.store.Delete(ctx, sid)
		return nil, fmt.Errorf("%s: %w", op, response.ErrUnauthorized)
	}

	if err := m.store.Save(ctx, sid, Credentials{Access: refreshed.Access, Refresh: creds.Refresh}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Session{Token: refreshed.Access, Claims: claims}, nil
}

// Logout clears persisted credentials. Safe to call when already logged out.
func (m *Manager) Logout(ctx context.Context, sid string) error {
	const op = "session.Manager.Logout"

	if err := m.store.Delete(ctx, sid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
