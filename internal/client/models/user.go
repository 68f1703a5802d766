// Package models defines the domain types exchanged with the leave-request
// backend: identities with their roles and leave balances, and leave requests
// with their pending/approved/rejected lifecycle.
package models

import (
	"fmt"
	"strings"

	"github.com/leavedesk/leavedesk/internal/common"
)

// Role is the closed set of roles the backend issues. Decision points switch
// over it exhaustively so an unknown role fails loudly instead of silently
// falling through.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

// User is the account record nested inside profiles and leave requests.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Identity is the authenticated profile: the backend's profile resource with
// the role and per-user leave balances. It is fetched fresh after login or
// session restore and discarded on logout.
type Identity struct {
	ID                 int64 `json:"id"`
	User               User  `json:"user"`
	Role               Role  `json:"role"`
	CasualLeaveBalance int   `json:"casual_leave_balance"`
	SickLeaveBalance   int   `json:"sick_leave_balance"`
}

// DisplayName returns "First Last", falling back to the username when the
// name fields are empty.
func (i *Identity) DisplayName() string {
	name := strings.TrimSpace(i.User.FirstName + " " + i.User.LastName)
	if name == "" {
		return i.User.Username
	}
	return name
}

// RequireRole returns nil when ident is authenticated with role want.
// A nil identity yields ErrUnauthorized; a mismatched known role yields
// ErrNotPermitted; an unknown role is reported explicitly.
func RequireRole(ident *Identity, want Role) error {
	if ident == nil {
		return common.ErrUnauthorized
	}
	switch ident.Role {
	case want:
		return nil
	case RoleAdmin, RoleEmployee:
		return common.ErrNotPermitted
	}
	return fmt.Errorf("unknown role %q: %w", ident.Role, common.ErrNotPermitted)
}
