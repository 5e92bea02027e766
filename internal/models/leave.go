package models

import "time"

// Leave request statuses. A request only ever moves PENDING -> ACCEPTED
// or PENDING -> REJECTED.
const (
	LeaveStatusPending  = "PENDING"
	LeaveStatusAccepted = "ACCEPTED"
	LeaveStatusRejected = "REJECTED"
)

// LeaveRequest is a single-day leave application.
type LeaveRequest struct {
	ID        int        `db:"id" json:"id"`
	EmpID     string     `db:"emp_id" json:"emp_id"`
	LeaveDate time.Time  `db:"leave_date" json:"leave_date"`
	Reason    string     `db:"reason" json:"reason"`
	Status    string     `db:"status" json:"status"`
	AppliedAt time.Time  `db:"applied_at" json:"applied_at"`
	DecidedAt *time.Time `db:"decided_at" json:"decided_at,omitempty"`
	DecidedBy *string    `db:"decided_by" json:"decided_by,omitempty"`
}
