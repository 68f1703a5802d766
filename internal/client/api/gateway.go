package api

import (
	"context"

	"github.com/leavedesk/leavedesk/internal/client/models"
)

// LeaveSubmission is the payload for creating a leave request. Dates are
// calendar days; the backend derives the inclusive day count and the owner.
type LeaveSubmission struct {
	Type      models.LeaveType `json:"leave_type"`
	StartDate models.Date      `json:"start_date"`
	EndDate   models.Date      `json:"end_date"`
	Reason    string           `json:"reason"`
}

// NewUser is the payload for the administrator's create-user operation.
type NewUser struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Gateway is the API contract against the leave-request backend.
type Gateway interface {
	// IssueToken exchanges credentials for a token pair and persists it.
	IssueToken(ctx context.Context, username, password string) error

	// RefreshTokens mints a new access token from the stored refresh token.
	// Any failure clears the stored pair and reports common.ErrSessionExpired.
	RefreshTokens(ctx context.Context) error

	// Profile fetches the authenticated identity.
	Profile(ctx context.Context) (*models.Identity, error)

	// Logout notifies the backend that the stored refresh token is retired.
	Logout(ctx context.Context) error

	// SubmitLeave creates a leave request owned by the caller.
	SubmitLeave(ctx context.Context, sub LeaveSubmission) (*models.LeaveRequest, error)

	// OwnLeaves lists the caller's leave requests.
	OwnLeaves(ctx context.Context) ([]models.LeaveRequest, error)

	// AllLeaves lists every leave request (admin only).
	AllLeaves(ctx context.Context) ([]models.LeaveRequest, error)

	// SetLeaveStatus transitions a leave request (admin only). The reason is
	// required by the backend when status is rejected.
	SetLeaveStatus(ctx context.Context, id int64, status models.LeaveStatus, reason string) (*models.LeaveRequest, error)

	// Users lists all non-superuser profiles (admin only).
	Users(ctx context.Context) ([]models.Identity, error)

	// SetUserStatus toggles an account active/inactive (admin only).
	SetUserStatus(ctx context.Context, userID int64, active bool) error

	// CreateUser registers a new employee account (admin only).
	CreateUser(ctx context.Context, nu NewUser) (*models.User, error)
}
