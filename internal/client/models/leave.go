package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// LeaveType is the closed set of leave categories the backend accepts.
type LeaveType string

const (
	LeaveCasual LeaveType = "casual"
	LeaveSick   LeaveType = "sick"
	LeaveOther  LeaveType = "other"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveCasual, LeaveSick, LeaveOther:
		return true
	}
	return false
}

// LeaveStatus models the request lifecycle: pending is the initial state,
// approved and rejected are terminal.
type LeaveStatus string

const (
	StatusPending  LeaveStatus = "pending"
	StatusApproved LeaveStatus = "approved"
	StatusRejected LeaveStatus = "rejected"
)

func (s LeaveStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted out of s.
func (s LeaveStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition reports whether an administrator action may move a request
// from s to the target status.
func (s LeaveStatus) CanTransition(to LeaveStatus) bool {
	return s == StatusPending && to.Terminal()
}

// LeaveRequest is a time-off submission tracked through the pending/
// approved/rejected states. It is created by an employee submission, mutated
// only by an administrator transition, and never deleted.
type LeaveRequest struct {
	ID              int64       `json:"id"`
	User            User        `json:"user"`
	Type            LeaveType   `json:"leave_type"`
	StartDate       Date        `json:"start_date"`
	EndDate         Date        `json:"end_date"`
	Days            int         `json:"no_days"`
	Reason          string      `json:"reason"`
	Status          LeaveStatus `json:"status"`
	RejectionReason string      `json:"reason_not_approved"`
}

// Validate checks the structural invariants:
//   - end date is on or after start date,
//   - the rejection reason is present exactly when status is rejected.
func (lr *LeaveRequest) Validate() error {
	if !lr.Status.Valid() {
		return fmt.Errorf("invalid status %q", lr.Status)
	}
	if lr.EndDate.Before(lr.StartDate) {
		return errors.New("end date before start date")
	}
	reason := strings.TrimSpace(lr.RejectionReason)
	if lr.Status == StatusRejected && reason == "" {
		return errors.New("rejected request without a rejection reason")
	}
	if lr.Status != StatusRejected && reason != "" {
		return fmt.Errorf("rejection reason present on %s request", lr.Status)
	}
	return nil
}

// Overlaps reports whether the request covers any day in [from, to].
func (lr *LeaveRequest) Overlaps(from, to time.Time) bool {
	return !lr.StartDate.After(to) && !lr.EndDate.Time.Before(from)
}

// LeaveDays returns the inclusive day count between start and end, matching
// the backend's no_days computation.
func LeaveDays(start, end Date) (int, error) {
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	return int(end.Sub(start.Time).Hours()/24) + 1, nil
}
