package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/leavedesk/leavedesk/internal/client/api"
	"github.com/leavedesk/leavedesk/internal/client/auth"
	"github.com/leavedesk/leavedesk/internal/client/leave"
	"github.com/leavedesk/leavedesk/internal/client/models"
	"github.com/leavedesk/leavedesk/internal/client/routes"
)

type setActiveCall struct {
	id     int64
	active bool
}

type fakeAuth struct {
	restoreErr error
	landing    routes.Name
	loginErr   error
	logoutErr  error
	ident      *models.Identity
	state      auth.State

	loginCalls     int
	logoutCalls    int
	users          []models.Identity
	usersErr       error
	created        *models.User
	createErr      error
	createdWith    api.NewUser
	setActiveCalls []setActiveCall
	setActiveErr   error
}

func (f *fakeAuth) Restore(context.Context) error { return f.restoreErr }

func (f *fakeAuth) Login(_ context.Context, _, _ string) (routes.Name, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return routes.Login, f.loginErr
	}
	f.state = auth.StateAuthenticated
	return f.landing, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalls++
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.ident = nil
	f.state = auth.StateAnonymous
	return nil
}

func (f *fakeAuth) State() auth.State            { return f.state }
func (f *fakeAuth) Identity() *models.Identity   { return f.ident }
func (f *fakeAuth) TokenExpiry(context.Context) (time.Time, bool) {
	return time.Time{}, false
}

func (f *fakeAuth) RegisterEmployee(_ context.Context, nu api.NewUser) (*models.User, error) {
	f.createdWith = nu
	return f.created, f.createErr
}

func (f *fakeAuth) Users(context.Context) ([]models.Identity, error) {
	return f.users, f.usersErr
}

func (f *fakeAuth) SetUserActive(_ context.Context, id int64, active bool) error {
	f.setActiveCalls = append(f.setActiveCalls, setActiveCall{id: id, active: active})
	return f.setActiveErr
}

var _ authService = (*fakeAuth)(nil)

type fakeLeaves struct {
	submitted []leave.SubmitForm
	submitErr error
	created   *models.LeaveRequest
	own       []models.LeaveRequest
	ownErr    error
	all       []models.LeaveRequest
	allErr    error
	approved  []int64
	rejected  []int64
	reasons   []string
	changeErr error
}

func (f *fakeLeaves) Submit(_ context.Context, _ *models.Identity, form leave.SubmitForm) (*models.LeaveRequest, error) {
	f.submitted = append(f.submitted, form)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.created, nil
}

func (f *fakeLeaves) Own(context.Context, *models.Identity) ([]models.LeaveRequest, error) {
	return f.own, f.ownErr
}

func (f *fakeLeaves) All(context.Context, *models.Identity) ([]models.LeaveRequest, error) {
	return f.all, f.allErr
}

func (f *fakeLeaves) Approve(_ context.Context, _ *models.Identity, id int64) (*models.LeaveRequest, error) {
	f.approved = append(f.approved, id)
	if f.changeErr != nil {
		return nil, f.changeErr
	}
	return &models.LeaveRequest{ID: id, Status: models.StatusApproved}, nil
}

func (f *fakeLeaves) Reject(_ context.Context, _ *models.Identity, id int64, reason string) (*models.LeaveRequest, error) {
	f.rejected = append(f.rejected, id)
	f.reasons = append(f.reasons, reason)
	if f.changeErr != nil {
		return nil, f.changeErr
	}
	return &models.LeaveRequest{ID: id, Status: models.StatusRejected, RejectionReason: reason}, nil
}

var _ leaveService = (*fakeLeaves)(nil)

func newTestApp(fa *fakeAuth, fl *fakeLeaves) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		auth:   fa,
		leaves: fl,
		out:    out,
		reader: bufio.NewReader(strings.NewReader("")),
	}, out
}

// stubInputs replaces the interactive input helpers: text prompts pop the
// next answer in order, the password prompt returns pw.
func stubInputs(t *testing.T, answers []string, pw string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})

	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			t.Fatal("unexpected extra prompt")
		}
		answer := answers[i]
		i++
		return answer, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) {
		return []byte(pw), nil
	}
}
