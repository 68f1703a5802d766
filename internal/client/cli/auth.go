package cli

import (
	"context"
	"fmt"
	"time"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, authenticates and reports the landing view
// for the user's role.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	landing, err := a.auth.Login(ctx, username, string(password))
	if err != nil {
		return err
	}

	ident := a.auth.Identity()
	fmt.Fprintf(a.out, "Logged in as %s (%s). Landing view: %s\n", ident.DisplayName(), ident.Role, landing)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Whoami prints the authenticated identity, leave balances and the access
// token expiry when one is known.
func (a *App) Whoami(ctx context.Context) error {
	ident := a.auth.Identity()
	if ident == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	fmt.Fprintf(a.out, "%s (%s), role %s\n", ident.DisplayName(), ident.User.Email, ident.Role)
	fmt.Fprintf(a.out, "Leave balance: %d casual, %d sick\n", ident.CasualLeaveBalance, ident.SickLeaveBalance)
	if expiry, ok := a.auth.TokenExpiry(ctx); ok {
		fmt.Fprintf(a.out, "Access token expires %s\n", expiry.Format(time.RFC1123))
	}
	return nil
}
