// Package auth owns the client's session lifecycle: logging in, restoring a
// stored session on startup, refreshing tokens, and logging out. It holds the
// authenticated identity and gates the administrator's account operations.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/leavedesk/leavedesk/internal/client/api"
	"github.com/leavedesk/leavedesk/internal/client/models"
	"github.com/leavedesk/leavedesk/internal/client/routes"
	"github.com/leavedesk/leavedesk/internal/client/session"
	"github.com/leavedesk/leavedesk/internal/common"
	"github.com/leavedesk/leavedesk/internal/logging"
)

// State is the session lifecycle state.
type State int

const (
	// StateAnonymous means no identity is loaded.
	StateAnonymous State = iota
	// StateRestoring means stored credentials were found and the identity is
	// being fetched; authorization decisions should be deferred.
	StateRestoring
	// StateAuthenticated means an identity is loaded.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Manager tracks the session state and identity behind a mutex, so the UI
// can query them while a restore or login is in flight.
type Manager struct {
	gw    api.Gateway
	store session.Store
	log   logging.Logger

	mu       sync.RWMutex
	state    State
	identity *models.Identity
}

func NewManager(gw api.Gateway, store session.Store, log logging.Logger) *Manager {
	return &Manager{gw: gw, store: store, log: log}
}

func (m *Manager) setState(state State, ident *models.Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.identity = ident
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Identity returns the authenticated identity, or nil.
func (m *Manager) Identity() *models.Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity
}

// Restore rebuilds the session from stored credentials on startup. With no
// stored tokens it settles into the anonymous state without error. An
// expired access token is refreshed before the profile fetch; if the
// identity cannot be fetched the stored credentials are cleared so the next
// start does not retry a dead session.
func (m *Manager) Restore(ctx context.Context) error {
	creds, err := m.store.Credentials(ctx)
	if err != nil {
		return err
	}
	if creds.Access == "" && creds.Refresh == "" {
		m.setState(StateAnonymous, nil)
		return nil
	}

	m.setState(StateRestoring, nil)
	m.log.Debug(ctx, "restoring stored session")

	if creds.Refresh != "" && tokenExpired(creds.Access, time.Now()) {
		if err := m.gw.RefreshTokens(ctx); err != nil {
			m.setState(StateAnonymous, nil)
			return fmt.Errorf("restore session: %w", err)
		}
	}

	ident, err := m.gw.Profile(ctx)
	if err != nil {
		_ = m.store.Clear(ctx)
		m.setState(StateAnonymous, nil)
		return fmt.Errorf("restore session: %w", err)
	}

	m.setState(StateAuthenticated, ident)
	m.log.Info(ctx, "session restored", "user", ident.User.Username, "role", ident.Role)
	return nil
}

// Login exchanges credentials for a token pair, loads the identity and
// returns the role's landing view. On any failure the session stays
// anonymous.
func (m *Manager) Login(ctx context.Context, username, password string) (routes.Name, error) {
	if err := m.gw.IssueToken(ctx, username, password); err != nil {
		m.setState(StateAnonymous, nil)
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 401 {
			return routes.Login, fmt.Errorf("%s: %w", apiErr.Message, common.ErrUnauthorized)
		}
		return routes.Login, err
	}

	ident, err := m.gw.Profile(ctx)
	if err != nil {
		_ = m.store.Clear(ctx)
		m.setState(StateAnonymous, nil)
		return routes.Login, fmt.Errorf("load profile: %w", err)
	}

	m.setState(StateAuthenticated, ident)
	m.log.Info(ctx, "logged in", "user", ident.User.Username, "role", ident.Role)
	return routes.Landing(ident.Role), nil
}

// Refresh mints a new access token from the stored refresh token.
func (m *Manager) Refresh(ctx context.Context) error {
	return m.gw.RefreshTokens(ctx)
}

// Logout retires the refresh token on the backend, then drops all local
// session state. The backend call is best effort: local state is cleared
// even when the server is unreachable.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.gw.Logout(ctx); err != nil {
		m.log.Warn(ctx, "backend logout failed", "error", err)
	}
	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	m.setState(StateAnonymous, nil)
	m.log.Info(ctx, "logged out")
	return nil
}

// TokenExpiry returns the stored access token's expiry, when the token
// carries one.
func (m *Manager) TokenExpiry(ctx context.Context) (time.Time, bool) {
	creds, err := m.store.Credentials(ctx)
	if err != nil || creds.Access == "" {
		return time.Time{}, false
	}
	claims, err := ParseAccessClaims(creds.Access)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// RegisterEmployee creates a new employee account (admin only).
func (m *Manager) RegisterEmployee(ctx context.Context, nu api.NewUser) (*models.User, error) {
	if err := models.RequireRole(m.Identity(), models.RoleAdmin); err != nil {
		return nil, err
	}
	return m.gw.CreateUser(ctx, nu)
}

// Users lists all managed accounts (admin only).
func (m *Manager) Users(ctx context.Context) ([]models.Identity, error) {
	if err := models.RequireRole(m.Identity(), models.RoleAdmin); err != nil {
		return nil, err
	}
	return m.gw.Users(ctx)
}

// SetUserActive toggles an account (admin only). Deactivating the current
// account ends the session immediately.
func (m *Manager) SetUserActive(ctx context.Context, userID int64, active bool) error {
	ident := m.Identity()
	if err := models.RequireRole(ident, models.RoleAdmin); err != nil {
		return err
	}
	if err := m.gw.SetUserStatus(ctx, userID, active); err != nil {
		return err
	}
	if !active && ident.User.ID == userID {
		return m.Logout(ctx)
	}
	return nil
}
