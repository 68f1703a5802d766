package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/leavedesk/leavedesk/internal/client/leave"
	"github.com/leavedesk/leavedesk/internal/client/models"
)

// home is the employee landing view: balances plus a short summary of the
// caller's requests.
func (a *App) home(ctx context.Context) error {
	ident := a.auth.Identity()
	fmt.Fprintf(a.out, "Hello, %s!\n", ident.DisplayName())
	fmt.Fprintf(a.out, "Leave balance: %d casual, %d sick\n", ident.CasualLeaveBalance, ident.SickLeaveBalance)

	reqs, err := a.leaves.Own(ctx, ident)
	if err != nil {
		return err
	}
	b := leave.Partition(reqs)
	fmt.Fprintf(a.out, "Requests: %d pending, %d approved, %d rejected\n", len(b.Pending), len(b.Approved), len(b.Rejected))
	return nil
}

// applyLeave prompts for a new leave request and submits it.
func (a *App) applyLeave(ctx context.Context) error {
	leaveType, err := getSimpleText(a.reader, "Leave type (casual/sick/other)", a.out)
	if err != nil {
		return err
	}
	start, err := getSimpleText(a.reader, "Start date (YYYY-MM-DD)", a.out)
	if err != nil {
		return err
	}
	end, err := getSimpleText(a.reader, "End date (YYYY-MM-DD)", a.out)
	if err != nil {
		return err
	}
	reason, err := getSimpleText(a.reader, "Reason", a.out)
	if err != nil {
		return err
	}

	created, err := a.leaves.Submit(ctx, a.auth.Identity(), leave.SubmitForm{
		Type:      models.LeaveType(leaveType),
		StartDate: start,
		EndDate:   end,
		Reason:    reason,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Submitted request #%d for %d day(s), status %s.\n", created.ID, created.Days, created.Status)
	return nil
}

// myLeaves lists the caller's requests grouped by status.
func (a *App) myLeaves(ctx context.Context) error {
	reqs, err := a.leaves.Own(ctx, a.auth.Identity())
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		fmt.Fprintln(a.out, "No leave requests yet.")
		return nil
	}

	b := leave.Partition(reqs)
	a.printLeaveSection("Pending", b.Pending)
	a.printLeaveSection("Approved", b.Approved)
	a.printLeaveSection("Rejected", b.Rejected)
	return nil
}

func (a *App) printLeaveSection(title string, reqs []models.LeaveRequest) {
	if len(reqs) == 0 {
		return
	}
	fmt.Fprintf(a.out, "%s:\n", title)
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, lr := range reqs {
		line := fmt.Sprintf("  #%d\t%s\t%s to %s\t%d day(s)\t%s", lr.ID, lr.Type, lr.StartDate, lr.EndDate, lr.Days, lr.Reason)
		if lr.Status == models.StatusRejected && lr.RejectionReason != "" {
			line += "\t(rejected: " + lr.RejectionReason + ")"
		}
		fmt.Fprintln(w, line)
	}
	w.Flush()
}

// calendar shows approved leave overlapping the given month (default: the
// current month). Administrators see everyone's leave, employees their own.
func (a *App) calendar(ctx context.Context, args []string) error {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if len(args) > 0 {
		parsed, err := time.Parse("2006-01", args[0])
		if err != nil {
			fmt.Fprintln(a.out, "Usage: calendar [YYYY-MM]")
			return nil
		}
		year, month = parsed.Year(), parsed.Month()
	}

	ident := a.auth.Identity()
	var reqs []models.LeaveRequest
	var err error
	if ident.Role == models.RoleAdmin {
		reqs, err = a.leaves.All(ctx, ident)
	} else {
		reqs, err = a.leaves.Own(ctx, ident)
	}
	if err != nil {
		return err
	}

	approved := leave.ApprovedInMonth(reqs, year, month)
	if len(approved) == 0 {
		fmt.Fprintf(a.out, "No approved leave in %d-%02d.\n", year, month)
		return nil
	}

	fmt.Fprintf(a.out, "Approved leave in %d-%02d:\n", year, month)
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, lr := range approved {
		fmt.Fprintf(w, "  %s\t%s\t%s to %s\t%d day(s)\n", lr.User.Username, lr.Type, lr.StartDate, lr.EndDate, lr.Days)
	}
	return w.Flush()
}
