package models

import "time"

// Attendance statuses.
const (
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
	AttendanceLeave   = "LEAVE"
)

// Attendance holds the current attendance status of one employee.
// There is exactly one row per employee, updated in place.
type Attendance struct {
	ID       int       `db:"id" json:"id"`
	EmpID    string    `db:"emp_id" json:"emp_id"`
	Status   string    `db:"status" json:"status"`
	MarkedAt time.Time `db:"marked_at" json:"marked_at"`
}
