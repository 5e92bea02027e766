package models

import "time"

// Notification actions carried on live pushes.
const (
	ActionNewLeaveApplication = "new_leave_application"
	ActionLeaveDecision       = "leave_decision"
)

// Notification is a durable per-employee message. Rows are the system of
// record; the live push is only a latency optimization for connected clients.
type Notification struct {
	ID        int       `db:"id" json:"id"`
	EmpID     string    `db:"emp_id" json:"emp_id"`
	LeaveID   *int      `db:"leave_id" json:"leave_id,omitempty"`
	Message   string    `db:"message" json:"message"`
	Read      bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NotificationEvent is pushed over a personal websocket channel.
type NotificationEvent struct {
	Type     string `json:"type"`
	ID       int    `json:"id"`
	LeaveID  int    `json:"leave_id,omitempty"`
	Message  string `json:"message"`
	Action   string `json:"action"`
	Decision string `json:"decision,omitempty"`
}
