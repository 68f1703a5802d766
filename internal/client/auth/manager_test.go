package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leavedesk/leavedesk/internal/client/api"
	"github.com/leavedesk/leavedesk/internal/client/models"
	"github.com/leavedesk/leavedesk/internal/client/routes"
	"github.com/leavedesk/leavedesk/internal/client/session"
	"github.com/leavedesk/leavedesk/internal/common"
	"github.com/leavedesk/leavedesk/internal/logging"
)

type setUserCall struct {
	userID int64
	active bool
}

type fakeGateway struct {
	issueErr   error
	refreshErr error
	profile    *models.Identity
	profileErr error
	logoutErr  error
	users      []models.Identity
	usersErr   error
	created    *models.User
	createErr  error
	setUserErr error

	issueCalls   int
	refreshCalls int
	profileCalls int
	logoutCalls  int
	setUserCalls []setUserCall
}

func (f *fakeGateway) IssueToken(_ context.Context, _, _ string) error {
	f.issueCalls++
	return f.issueErr
}

func (f *fakeGateway) RefreshTokens(context.Context) error {
	f.refreshCalls++
	return f.refreshErr
}

func (f *fakeGateway) Profile(context.Context) (*models.Identity, error) {
	f.profileCalls++
	return f.profile, f.profileErr
}

func (f *fakeGateway) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeGateway) SubmitLeave(context.Context, api.LeaveSubmission) (*models.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeGateway) OwnLeaves(context.Context) ([]models.LeaveRequest, error) { return nil, nil }

func (f *fakeGateway) AllLeaves(context.Context) ([]models.LeaveRequest, error) { return nil, nil }

func (f *fakeGateway) SetLeaveStatus(context.Context, int64, models.LeaveStatus, string) (*models.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeGateway) Users(context.Context) ([]models.Identity, error) {
	return f.users, f.usersErr
}

func (f *fakeGateway) SetUserStatus(_ context.Context, userID int64, active bool) error {
	f.setUserCalls = append(f.setUserCalls, setUserCall{userID: userID, active: active})
	return f.setUserErr
}

func (f *fakeGateway) CreateUser(context.Context, api.NewUser) (*models.User, error) {
	return f.created, f.createErr
}

var _ api.Gateway = (*fakeGateway)(nil)

func newTestManager(gw api.Gateway) (*Manager, *session.MemStore) {
	store := session.NewMemStore()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewManager(gw, store, log), store
}

func adminIdentity() *models.Identity {
	return &models.Identity{
		ID:   1,
		User: models.User{ID: 5, Username: "boss"},
		Role: models.RoleAdmin,
	}
}

func employeeIdentity() *models.Identity {
	return &models.Identity{
		ID:   2,
		User: models.User{ID: 3, Username: "alice"},
		Role: models.RoleEmployee,
	}
}

func TestRestoreWithoutStoredSession(t *testing.T) {
	gw := &fakeGateway{}
	m, _ := newTestManager(gw)

	require.NoError(t, m.Restore(context.Background()))

	assert.Equal(t, StateAnonymous, m.State())
	assert.Nil(t, m.Identity())
	assert.Zero(t, gw.profileCalls)
}

func TestRestoreLoadsIdentity(t *testing.T) {
	gw := &fakeGateway{profile: employeeIdentity()}
	m, store := newTestManager(gw)
	require.NoError(t, store.SetPair(context.Background(), "opaque-access", "opaque-refresh"))

	require.NoError(t, m.Restore(context.Background()))

	assert.Equal(t, StateAuthenticated, m.State())
	require.NotNil(t, m.Identity())
	assert.Equal(t, "alice", m.Identity().User.Username)
	assert.Zero(t, gw.refreshCalls)
}

func TestRestoreRefreshesExpiredAccessToken(t *testing.T) {
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	gw := &fakeGateway{profile: employeeIdentity()}
	m, store := newTestManager(gw)
	require.NoError(t, store.SetPair(context.Background(), expired, "refresh-1"))

	require.NoError(t, m.Restore(context.Background()))

	assert.Equal(t, 1, gw.refreshCalls)
	assert.Equal(t, StateAuthenticated, m.State())
}

func TestRestoreProfileFailureClearsSession(t *testing.T) {
	gw := &fakeGateway{profileErr: common.ErrUnauthorized}
	m, store := newTestManager(gw)
	require.NoError(t, store.SetPair(context.Background(), "opaque-access", "opaque-refresh"))

	err := m.Restore(context.Background())

	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, StateAnonymous, m.State())
	creds, cerr := store.Credentials(context.Background())
	require.NoError(t, cerr)
	assert.Empty(t, creds.Access)
	assert.Empty(t, creds.Refresh)
}

func TestLoginLandsOnRoleView(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.Identity
		want    routes.Name
	}{
		{name: "employee lands home", profile: employeeIdentity(), want: routes.Home},
		{name: "admin lands dashboard", profile: adminIdentity(), want: routes.Dashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{profile: tt.profile}
			m, _ := newTestManager(gw)

			landing, err := m.Login(context.Background(), "user", "pass")
			require.NoError(t, err)
			assert.Equal(t, tt.want, landing)
			assert.Equal(t, StateAuthenticated, m.State())
		})
	}
}

func TestLoginBadCredentials(t *testing.T) {
	gw := &fakeGateway{issueErr: &api.APIError{Status: 401, Message: "No active account found with the given credentials"}}
	m, _ := newTestManager(gw)

	landing, err := m.Login(context.Background(), "alice", "wrong")

	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Contains(t, err.Error(), "No active account")
	assert.Equal(t, routes.Login, landing)
	assert.Equal(t, StateAnonymous, m.State())
	assert.Zero(t, gw.profileCalls)
}

func TestLogoutClearsStateDespiteBackendError(t *testing.T) {
	gw := &fakeGateway{profile: employeeIdentity(), logoutErr: common.ErrUnavailable}
	m, store := newTestManager(gw)
	_, err := m.Login(context.Background(), "alice", "pass")
	require.NoError(t, err)
	require.NoError(t, store.SetPair(context.Background(), "a1", "r1"))

	require.NoError(t, m.Logout(context.Background()))

	assert.Equal(t, StateAnonymous, m.State())
	assert.Nil(t, m.Identity())
	creds, err := store.Credentials(context.Background())
	require.NoError(t, err)
	assert.Empty(t, creds.Access)
	assert.Empty(t, creds.Refresh)
	assert.Equal(t, 1, gw.logoutCalls)
}

func TestAdminOperationsAreRoleGated(t *testing.T) {
	gw := &fakeGateway{profile: employeeIdentity()}
	m, _ := newTestManager(gw)
	_, err := m.Login(context.Background(), "alice", "pass")
	require.NoError(t, err)

	_, err = m.Users(context.Background())
	assert.ErrorIs(t, err, common.ErrNotPermitted)

	_, err = m.RegisterEmployee(context.Background(), api.NewUser{Username: "bob"})
	assert.ErrorIs(t, err, common.ErrNotPermitted)

	err = m.SetUserActive(context.Background(), 9, false)
	assert.ErrorIs(t, err, common.ErrNotPermitted)
	assert.Empty(t, gw.setUserCalls)
}

func TestAdminOperationsRequireLogin(t *testing.T) {
	gw := &fakeGateway{}
	m, _ := newTestManager(gw)

	_, err := m.Users(context.Background())
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestSetUserActiveSelfDeactivationEndsSession(t *testing.T) {
	gw := &fakeGateway{profile: adminIdentity()}
	m, _ := newTestManager(gw)
	_, err := m.Login(context.Background(), "boss", "pass")
	require.NoError(t, err)

	require.NoError(t, m.SetUserActive(context.Background(), 5, false))

	assert.Equal(t, []setUserCall{{userID: 5, active: false}}, gw.setUserCalls)
	assert.Equal(t, StateAnonymous, m.State())
	assert.Equal(t, 1, gw.logoutCalls)
}

func TestSetUserActiveOtherAccountKeepsSession(t *testing.T) {
	gw := &fakeGateway{profile: adminIdentity()}
	m, _ := newTestManager(gw)
	_, err := m.Login(context.Background(), "boss", "pass")
	require.NoError(t, err)

	require.NoError(t, m.SetUserActive(context.Background(), 9, false))

	assert.Equal(t, StateAuthenticated, m.State())
	assert.Zero(t, gw.logoutCalls)
}
