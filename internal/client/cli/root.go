package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/leavedesk/leavedesk/internal/client/auth"
	"github.com/leavedesk/leavedesk/internal/client/models"
	"github.com/leavedesk/leavedesk/internal/client/routes"
	"github.com/leavedesk/leavedesk/internal/common"
)

func (a *App) getStatus() string {
	ident := a.auth.Identity()
	if ident == nil {
		if a.auth.State() == auth.StateRestoring {
			return "(restoring)"
		}
		return ""
	}
	return fmt.Sprintf("(%s %s)", ident.User.Username, ident.Role)
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to LeaveDesk CLI (type 'help' for commands)")

	if err := a.auth.Restore(ctx); err != nil {
		a.printErr(err)
	}

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "ldesk %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "login":
			a.printErrIf(a.Login(ctx))
		case "logout":
			a.printErrIf(a.Logout(ctx))
		case "whoami":
			a.printErrIf(a.Whoami(ctx))
		case "home":
			a.printErrIf(a.navigate(ctx, routes.Home, a.home))
		case "apply":
			a.printErrIf(a.navigate(ctx, routes.ApplyLeave, a.applyLeave))
		case "leaves":
			a.printErrIf(a.navigate(ctx, routes.MyLeaves, a.myLeaves))
		case "calendar":
			a.printErrIf(a.navigate(ctx, routes.LeaveCalendar, func(ctx context.Context) error {
				return a.calendar(ctx, args)
			}))
		case "dashboard":
			a.printErrIf(a.navigate(ctx, routes.Dashboard, a.dashboard))
		case "approve":
			id, ok := parseID(a.out, args, "approve <id>")
			if !ok {
				continue
			}
			a.printErrIf(a.navigate(ctx, routes.Dashboard, func(ctx context.Context) error {
				return a.approve(ctx, id)
			}))
		case "reject":
			id, ok := parseID(a.out, args, "reject <id>")
			if !ok {
				continue
			}
			a.printErrIf(a.navigate(ctx, routes.Dashboard, func(ctx context.Context) error {
				return a.reject(ctx, id)
			}))
		case "users":
			a.printErrIf(a.navigate(ctx, routes.ManageUsers, a.users))
		case "adduser":
			a.printErrIf(a.navigate(ctx, routes.RegisterEmployee, a.addUser))
		case "activate":
			id, ok := parseID(a.out, args, "activate <id>")
			if !ok {
				continue
			}
			a.printErrIf(a.navigate(ctx, routes.ManageUsers, func(ctx context.Context) error {
				return a.setUserActive(ctx, id, true)
			}))
		case "deactivate":
			id, ok := parseID(a.out, args, "deactivate <id>")
			if !ok {
				continue
			}
			a.printErrIf(a.navigate(ctx, routes.ManageUsers, func(ctx context.Context) error {
				return a.setUserActive(ctx, id, false)
			}))
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	ident := a.auth.Identity()
	if ident == nil {
		fmt.Fprintln(a.out, "Available commands: login, help, exit")
		return
	}
	switch ident.Role {
	case models.RoleAdmin:
		fmt.Fprintln(a.out, "Available commands: dashboard, approve <id>, reject <id>, users, adduser, activate <id>, deactivate <id>, calendar [YYYY-MM], whoami, logout, exit")
	default:
		fmt.Fprintln(a.out, "Available commands: home, apply, leaves, calendar [YYYY-MM], whoami, logout, exit")
	}
}

// navigate runs view only when the route admission check allows it.
func (a *App) navigate(ctx context.Context, route routes.Name, view func(context.Context) error) error {
	decision := routes.Authorize(route, a.auth.Identity(), a.auth.State() == auth.StateRestoring)
	switch decision.Kind {
	case routes.DecisionPending:
		fmt.Fprintln(a.out, "Session is still being restored, try again in a moment.")
		return nil
	case routes.DecisionRedirect:
		if decision.Target == routes.Login {
			fmt.Fprintln(a.out, "Please log in first.")
			return nil
		}
		fmt.Fprintf(a.out, "Not available for your role (try '%s').\n", decision.Target)
		return nil
	}
	return view(ctx)
}

func parseID(out io.Writer, args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		fmt.Fprintln(out, "Usage:", usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(out, "Usage:", usage)
		return 0, false
	}
	return id, true
}

func (a *App) printErrIf(err error) {
	if err != nil {
		a.printErr(err)
	}
}

func (a *App) printErr(err error) {
	var ve common.ValidationError
	switch {
	case errors.As(err, &ve):
		fmt.Fprintln(a.out, "Please correct the following:")
		for _, field := range ve.Fields() {
			fmt.Fprintf(a.out, "  %s: %s\n", field, strings.Join(ve[field], "; "))
		}
	case errors.Is(err, common.ErrSessionExpired):
		fmt.Fprintln(a.out, "Your session has expired, please log in again.")
	case errors.Is(err, common.ErrNotPermitted):
		fmt.Fprintln(a.out, "This operation is not permitted for your role.")
	case errors.Is(err, common.ErrUnauthorized):
		fmt.Fprintln(a.out, "Not authorized:", err)
	case errors.Is(err, common.ErrUnavailable):
		fmt.Fprintln(a.out, "The server is unavailable, try again later.")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
}
