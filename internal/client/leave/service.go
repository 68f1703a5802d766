// Package leave implements the leave-request workflows on top of the API
// gateway: submission with local form validation, the administrator's
// approve/reject transitions, and the read-side groupings the views render.
package leave

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/leavedesk/leavedesk/internal/client/api"
	"github.com/leavedesk/leavedesk/internal/client/models"
	"github.com/leavedesk/leavedesk/internal/common"
)

// Service runs the leave workflows. Role checks happen here, before any
// network call; the backend enforces them again.
type Service struct {
	gw api.Gateway
}

func NewService(gw api.Gateway) *Service {
	return &Service{gw: gw}
}

// SubmitForm is raw form input for a new leave request. Dates are kept as
// text so validation can report bad formats per field instead of failing
// during decoding.
type SubmitForm struct {
	Type      models.LeaveType
	StartDate string
	EndDate   string
	Reason    string
}

func (f *SubmitForm) validate() (api.LeaveSubmission, error) {
	issues := common.ValidationError{}
	var sub api.LeaveSubmission

	if !f.Type.Valid() {
		issues.Add("leave_type", fmt.Sprintf("%q is not a valid choice", f.Type))
	}
	sub.Type = f.Type

	start, err := models.ParseDate(f.StartDate)
	switch {
	case strings.TrimSpace(f.StartDate) == "":
		issues.Add("start_date", "this field is required")
	case err != nil:
		issues.Add("start_date", "expected a date in YYYY-MM-DD format")
	default:
		sub.StartDate = start
	}

	end, err := models.ParseDate(f.EndDate)
	switch {
	case strings.TrimSpace(f.EndDate) == "":
		issues.Add("end_date", "this field is required")
	case err != nil:
		issues.Add("end_date", "expected a date in YYYY-MM-DD format")
	default:
		sub.EndDate = end
	}

	if _, ok := issues["start_date"]; !ok {
		if _, ok := issues["end_date"]; !ok && sub.EndDate.Before(sub.StartDate) {
			issues.Add("end_date", "end date cannot be before start date")
		}
	}

	sub.Reason = strings.TrimSpace(f.Reason)
	if sub.Reason == "" {
		issues.Add("reason", "this field is required")
	}

	if len(issues) > 0 {
		return api.LeaveSubmission{}, issues
	}
	return sub, nil
}

// Submit validates the form locally and creates the leave request. Invalid
// input never reaches the backend.
func (s *Service) Submit(ctx context.Context, ident *models.Identity, form SubmitForm) (*models.LeaveRequest, error) {
	if err := models.RequireRole(ident, models.RoleEmployee); err != nil {
		return nil, err
	}
	sub, err := form.validate()
	if err != nil {
		return nil, err
	}
	return s.gw.SubmitLeave(ctx, sub)
}

// Own lists the caller's leave requests.
func (s *Service) Own(ctx context.Context, ident *models.Identity) ([]models.LeaveRequest, error) {
	if ident == nil {
		return nil, common.ErrUnauthorized
	}
	return s.gw.OwnLeaves(ctx)
}

// All lists every leave request (admin only).
func (s *Service) All(ctx context.Context, ident *models.Identity) ([]models.LeaveRequest, error) {
	if err := models.RequireRole(ident, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.gw.AllLeaves(ctx)
}

// Approve transitions a pending request to approved (admin only).
func (s *Service) Approve(ctx context.Context, ident *models.Identity, id int64) (*models.LeaveRequest, error) {
	if err := models.RequireRole(ident, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.gw.SetLeaveStatus(ctx, id, models.StatusApproved, "")
}

// Reject transitions a pending request to rejected (admin only). The reason
// is mandatory and is checked before the call goes out.
func (s *Service) Reject(ctx context.Context, ident *models.Identity, id int64, reason string) (*models.LeaveRequest, error) {
	if err := models.RequireRole(ident, models.RoleAdmin); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		issues := common.ValidationError{}
		issues.Add("reason_not_approved", "a rejection reason is required")
		return nil, issues
	}
	return s.gw.SetLeaveStatus(ctx, id, models.StatusRejected, reason)
}

// Buckets groups leave requests by lifecycle state for display.
type Buckets struct {
	Pending  []models.LeaveRequest
	Approved []models.LeaveRequest
	Rejected []models.LeaveRequest
}

// Partition splits requests into status buckets, preserving order.
func Partition(reqs []models.LeaveRequest) Buckets {
	var b Buckets
	for _, lr := range reqs {
		switch lr.Status {
		case models.StatusApproved:
			b.Approved = append(b.Approved, lr)
		case models.StatusRejected:
			b.Rejected = append(b.Rejected, lr)
		default:
			b.Pending = append(b.Pending, lr)
		}
	}
	return b
}

// GroupByOwner buckets requests by the owner's username, preserving order
// within each bucket.
func GroupByOwner(reqs []models.LeaveRequest) map[string][]models.LeaveRequest {
	grouped := make(map[string][]models.LeaveRequest)
	for _, lr := range reqs {
		grouped[lr.User.Username] = append(grouped[lr.User.Username], lr)
	}
	return grouped
}

// ApprovedInMonth filters to approved requests that cover at least one day
// of the given month.
func ApprovedInMonth(reqs []models.LeaveRequest, year int, month time.Month) []models.LeaveRequest {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	var out []models.LeaveRequest
	for _, lr := range reqs {
		if lr.Status == models.StatusApproved && lr.Overlaps(from, to) {
			out = append(out, lr)
		}
	}
	return out
}
