package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leavedesk/leavedesk/internal/client/models"
	"github.com/leavedesk/leavedesk/internal/client/session"
	"github.com/leavedesk/leavedesk/internal/common"
	"github.com/leavedesk/leavedesk/internal/logging"
)

// Backend endpoint paths, relative to the base URL.
const (
	pathIssueToken   = "employee/token/"
	pathRefreshToken = "employee/token/refresh/"
	pathProfile      = "employee/profile/"
	pathLogout       = "employee/logout/"
	pathLeaves       = "employee/leave/"
	pathAllLeaves    = "manager/leaves/"
	pathLeaveStatus  = "manager/leave/%d/status/"
	pathUsers        = "manager/all-users/"
	pathUserStatus   = "manager/users/%d/status/"
	pathCreateUser   = "manager/users/create/"
)

// maxAuthRetries caps how many times a single call may be resent after an
// authorization failure.
const maxAuthRetries = 1

// call carries one outbound request together with its auth-retry budget.
// Keeping the counter on the request makes the single-retry policy explicit
// instead of hiding it in interceptor state.
type call struct {
	method  string
	path    string
	body    []byte
	retries int
}

// HTTPGateway implements Gateway over plain HTTP/JSON.
type HTTPGateway struct {
	baseURL string
	store   session.Store
	hc      *http.Client
	log     logging.Logger
}

func NewHTTPGateway(baseURL string, store session.Store, timeout time.Duration, log logging.Logger) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

func newCall(method, path string, payload any) (*call, error) {
	var body []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = b
	}
	return &call{method: method, path: path, body: body}, nil
}

// send dispatches c exactly once. When authenticated is true and an access
// token is stored, it is attached as a bearer credential.
func (g *HTTPGateway) send(ctx context.Context, c *call, authenticated bool) (int, []byte, error) {
	var reqBody io.Reader
	if c.body != nil {
		reqBody = bytes.NewReader(c.body)
	}
	req, err := http.NewRequestWithContext(ctx, c.method, g.baseURL+"/"+c.path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if authenticated {
		creds, err := g.store.Credentials(ctx)
		if err != nil {
			return 0, nil, err
		}
		if creds.Access != "" {
			req.Header.Set("Authorization", "Bearer "+creds.Access)
		}
	}

	resp, err := g.hc.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %v: %w", c.method, c.path, err, common.ErrUnavailable)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// do runs an authenticated call under the refresh-and-retry policy: the
// first authorization failure suspends the call, refreshes the access token
// once, and resends the call exactly once with the new token. A second
// authorization failure is terminal.
func (g *HTTPGateway) do(ctx context.Context, c *call, out any) error {
	for {
		status, body, err := g.send(ctx, c, true)
		if err != nil {
			return err
		}

		if status == http.StatusUnauthorized {
			if c.retries >= maxAuthRetries {
				return fmt.Errorf("%s %s: %w", c.method, c.path, common.ErrUnauthorized)
			}
			c.retries++
			g.log.Debug(ctx, "authorization failed, refreshing access token", "method", c.method, "path", c.path)
			if err := g.RefreshTokens(ctx); err != nil {
				return err
			}
			continue
		}

		if status >= 400 {
			return decodeError(status, body)
		}
		if out != nil && len(body) > 0 {
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
		return nil
	}
}

// tokenPair mirrors the token endpoints' response bodies. The refresh
// endpoint returns only a new access token unless rotation is enabled.
type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func (g *HTTPGateway) IssueToken(ctx context.Context, username, password string) error {
	c, err := newCall(http.MethodPost, pathIssueToken, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}

	status, body, err := g.send(ctx, c, false)
	if err != nil {
		return err
	}
	if status >= 400 {
		return decodeError(status, body)
	}

	var pair tokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		return fmt.Errorf("decode token response: %w", err)
	}
	return g.store.SetPair(ctx, pair.Access, pair.Refresh)
}

func (g *HTTPGateway) RefreshTokens(ctx context.Context) error {
	creds, err := g.store.Credentials(ctx)
	if err != nil {
		return err
	}
	if creds.Refresh == "" {
		_ = g.store.Clear(ctx)
		return fmt.Errorf("no refresh token stored: %w", common.ErrSessionExpired)
	}

	c, err := newCall(http.MethodPost, pathRefreshToken, map[string]string{"refresh": creds.Refresh})
	if err != nil {
		return err
	}
	status, body, err := g.send(ctx, c, false)
	if err != nil {
		return err
	}
	if status >= 400 {
		_ = g.store.Clear(ctx)
		g.log.Warn(ctx, "refresh token rejected", "status", status)
		return fmt.Errorf("refresh rejected (status %d): %w", status, common.ErrSessionExpired)
	}

	var pair tokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		return fmt.Errorf("decode refresh response: %w", err)
	}
	if pair.Refresh != "" {
		// Rotation enabled: the backend retired the old refresh token.
		return g.store.SetPair(ctx, pair.Access, pair.Refresh)
	}
	return g.store.SetAccess(ctx, pair.Access)
}

func (g *HTTPGateway) Profile(ctx context.Context) (*models.Identity, error) {
	c, err := newCall(http.MethodGet, pathProfile, nil)
	if err != nil {
		return nil, err
	}
	var ident models.Identity
	if err := g.do(ctx, c, &ident); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &ident, nil
}

func (g *HTTPGateway) Logout(ctx context.Context) error {
	creds, err := g.store.Credentials(ctx)
	if err != nil {
		return err
	}
	if creds.Refresh == "" {
		return nil
	}
	c, err := newCall(http.MethodPost, pathLogout, map[string]string{"refresh": creds.Refresh})
	if err != nil {
		return err
	}
	return g.do(ctx, c, nil)
}

func (g *HTTPGateway) SubmitLeave(ctx context.Context, sub LeaveSubmission) (*models.LeaveRequest, error) {
	c, err := newCall(http.MethodPost, pathLeaves, sub)
	if err != nil {
		return nil, err
	}
	var created models.LeaveRequest
	if err := g.do(ctx, c, &created); err != nil {
		return nil, fmt.Errorf("submit leave: %w", err)
	}
	return &created, nil
}

func (g *HTTPGateway) OwnLeaves(ctx context.Context) ([]models.LeaveRequest, error) {
	c, err := newCall(http.MethodGet, pathLeaves, nil)
	if err != nil {
		return nil, err
	}
	var leaves []models.LeaveRequest
	if err := g.do(ctx, c, &leaves); err != nil {
		return nil, fmt.Errorf("list own leaves: %w", err)
	}
	return leaves, nil
}

func (g *HTTPGateway) AllLeaves(ctx context.Context) ([]models.LeaveRequest, error) {
	c, err := newCall(http.MethodGet, pathAllLeaves, nil)
	if err != nil {
		return nil, err
	}
	var leaves []models.LeaveRequest
	if err := g.do(ctx, c, &leaves); err != nil {
		return nil, fmt.Errorf("list all leaves: %w", err)
	}
	return leaves, nil
}

// leaveStatusUpdate is the partial-update body for the leave status endpoint.
type leaveStatusUpdate struct {
	Status          models.LeaveStatus `json:"status"`
	RejectionReason string             `json:"reason_not_approved,omitempty"`
}

func (g *HTTPGateway) SetLeaveStatus(ctx context.Context, id int64, status models.LeaveStatus, reason string) (*models.LeaveRequest, error) {
	c, err := newCall(http.MethodPut, fmt.Sprintf(pathLeaveStatus, id), leaveStatusUpdate{
		Status:          status,
		RejectionReason: reason,
	})
	if err != nil {
		return nil, err
	}
	var updated models.LeaveRequest
	if err := g.do(ctx, c, &updated); err != nil {
		return nil, fmt.Errorf("set leave status: %w", err)
	}
	return &updated, nil
}

func (g *HTTPGateway) Users(ctx context.Context) ([]models.Identity, error) {
	c, err := newCall(http.MethodGet, pathUsers, nil)
	if err != nil {
		return nil, err
	}
	var users []models.Identity
	if err := g.do(ctx, c, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (g *HTTPGateway) SetUserStatus(ctx context.Context, userID int64, active bool) error {
	c, err := newCall(http.MethodPut, fmt.Sprintf(pathUserStatus, userID), map[string]bool{"is_active": active})
	if err != nil {
		return err
	}
	if err := g.do(ctx, c, nil); err != nil {
		return fmt.Errorf("set user status: %w", err)
	}
	return nil
}

func (g *HTTPGateway) CreateUser(ctx context.Context, nu NewUser) (*models.User, error) {
	c, err := newCall(http.MethodPost, pathCreateUser, nu)
	if err != nil {
		return nil, err
	}
	var created models.User
	if err := g.do(ctx, c, &created); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &created, nil
}
