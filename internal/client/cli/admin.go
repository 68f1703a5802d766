package cli

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/leavedesk/leavedesk/internal/client/api"
	"github.com/leavedesk/leavedesk/internal/client/leave"
)

// dashboard is the administrator landing view: every leave request grouped
// by owner, pending ones first.
func (a *App) dashboard(ctx context.Context) error {
	reqs, err := a.leaves.All(ctx, a.auth.Identity())
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		fmt.Fprintln(a.out, "No leave requests.")
		return nil
	}

	grouped := leave.GroupByOwner(reqs)
	owners := make([]string, 0, len(grouped))
	for owner := range grouped {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	for _, owner := range owners {
		fmt.Fprintf(a.out, "%s:\n", owner)
		b := leave.Partition(grouped[owner])
		a.printLeaveSection("  Pending", b.Pending)
		a.printLeaveSection("  Approved", b.Approved)
		a.printLeaveSection("  Rejected", b.Rejected)
	}
	return nil
}

func (a *App) approve(ctx context.Context, id int64) error {
	updated, err := a.leaves.Approve(ctx, a.auth.Identity(), id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Request #%d is now %s.\n", updated.ID, updated.Status)
	return nil
}

func (a *App) reject(ctx context.Context, id int64) error {
	reason, err := getSimpleText(a.reader, "Rejection reason", a.out)
	if err != nil {
		return err
	}
	updated, err := a.leaves.Reject(ctx, a.auth.Identity(), id, reason)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Request #%d is now %s.\n", updated.ID, updated.Status)
	return nil
}

// users lists every managed account with its role and balances.
func (a *App) users(ctx context.Context) error {
	idents, err := a.auth.Users(ctx)
	if err != nil {
		return err
	}
	if len(idents) == 0 {
		fmt.Fprintln(a.out, "No users.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUsername\tName\tEmail\tRole\tCasual\tSick")
	for i := range idents {
		ident := &idents[i]
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%d\n",
			ident.User.ID, ident.User.Username, ident.DisplayName(), ident.User.Email,
			ident.Role, ident.CasualLeaveBalance, ident.SickLeaveBalance)
	}
	return w.Flush()
}

// addUser prompts for a new employee account and registers it. The backend
// generates the initial password and emails it to the new employee.
func (a *App) addUser(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "First name", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name", a.out)
	if err != nil {
		return err
	}

	created, err := a.auth.RegisterEmployee(ctx, api.NewUser{
		Email:     email,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created user #%d (%s).\n", created.ID, created.Username)
	return nil
}

func (a *App) setUserActive(ctx context.Context, id int64, active bool) error {
	if err := a.auth.SetUserActive(ctx, id, active); err != nil {
		return err
	}
	if active {
		fmt.Fprintf(a.out, "User #%d activated.\n", id)
	} else {
		fmt.Fprintf(a.out, "User #%d deactivated.\n", id)
	}
	return nil
}
