// Package routes is the client-side route table: the named views of the
// application and the role-based admission policy for each of them. The
// policy is evaluated locally before rendering a view; the backend remains
// the authority and re-checks every call.
package routes

import "github.com/leavedesk/leavedesk/internal/client/models"

// Name identifies a view.
type Name string

const (
	Login            Name = "login"
	Home             Name = "home"
	Dashboard        Name = "dashboard"
	ApplyLeave       Name = "apply-leave"
	MyLeaves         Name = "my-leaves"
	LeaveCalendar    Name = "leave-calendar"
	RegisterEmployee Name = "register-employee"
	ManageUsers      Name = "manage-users"
)

// Kind classifies an admission decision.
type Kind int

const (
	// DecisionAllow admits the requested view.
	DecisionAllow Kind = iota
	// DecisionRedirect denies the requested view; Target names where to go
	// instead.
	DecisionRedirect
	// DecisionPending defers the decision: a stored session is still being
	// restored and the identity is not known yet.
	DecisionPending
)

// Decision is the outcome of an admission check.
type Decision struct {
	Kind   Kind
	Target Name
}

// restricted maps each role-gated view to the single role admitted to it.
// Views absent from this map are open to any authenticated identity.
var restricted = map[Name]models.Role{
	Dashboard:        models.RoleAdmin,
	RegisterEmployee: models.RoleAdmin,
	ManageUsers:      models.RoleAdmin,
	Home:             models.RoleEmployee,
	ApplyLeave:       models.RoleEmployee,
	MyLeaves:         models.RoleEmployee,
}

var known = map[Name]bool{
	Login:            true,
	Home:             true,
	Dashboard:        true,
	ApplyLeave:       true,
	MyLeaves:         true,
	LeaveCalendar:    true,
	RegisterEmployee: true,
	ManageUsers:      true,
}

// Landing returns the view a freshly authenticated identity starts on.
// Unknown roles land on the login view.
func Landing(role models.Role) Name {
	switch role {
	case models.RoleAdmin:
		return Dashboard
	case models.RoleEmployee:
		return Home
	}
	return Login
}

// Authorize decides whether ident may enter route. While a stored session is
// still restoring, every check is deferred rather than bounced to login, so
// a reloading client does not flash the login view at an authenticated user.
func Authorize(route Name, ident *models.Identity, restoring bool) Decision {
	if restoring {
		return Decision{Kind: DecisionPending}
	}
	if route == Login {
		return Decision{Kind: DecisionAllow}
	}
	if ident == nil {
		return Decision{Kind: DecisionRedirect, Target: Login}
	}
	if !known[route] {
		return Decision{Kind: DecisionRedirect, Target: Landing(ident.Role)}
	}
	if want, gated := restricted[route]; gated && ident.Role != want {
		return Decision{Kind: DecisionRedirect, Target: Landing(ident.Role)}
	}
	return Decision{Kind: DecisionAllow}
}
