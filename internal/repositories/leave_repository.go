package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"employee-service/internal/models"
)

var (
	ErrLeaveNotFound         = errors.New("leave request not found")
	ErrLeaveNotPending       = errors.New("leave request already decided")
	ErrDuplicatePendingLeave = errors.New("pending leave request already exists for this date")
)

// LeaveRepository abstracts the leave workflow's durable state. Submit and
// Decide each commit the request transition and its notification rows as a
// single transaction; callers push live events only after they return.
type LeaveRepository interface {
	SubmitLeave(ctx context.Context, empID string, date time.Time, reason string) (models.LeaveRequest, []models.Notification, error)
	DecideLeave(ctx context.Context, leaveID int, status, deciderID string) (models.LeaveRequest, models.Notification, error)
	ListAllLeaves(ctx context.Context) ([]models.LeaveRequest, error)
	ListLeavesForEmployee(ctx context.Context, empID string) ([]models.LeaveRequest, error)
}

// LeaveRepo is a sqlx-backed LeaveRepository.
type LeaveRepo struct {
	db *sqlx.DB
}

// NewLeaveRepo constructs a LeaveRepo.
func NewLeaveRepo(db *sqlx.DB) *LeaveRepo {
	return &LeaveRepo{db: db}
}

const leaveColumns = `id, emp_id, leave_date, reason, status, applied_at, decided_at, decided_by`

// SubmitLeave records a new PENDING request and one notification per admin in
// a single transaction. Duplicate open requests for the same employee and
// date are rejected by the partial unique index, so the check holds under
// concurrent submissions.
func (r *LeaveRepo) SubmitLeave(ctx context.Context, empID string, date time.Time, reason string) (models.LeaveRequest, []models.Notification, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.LeaveRequest{}, nil, err
	}
	defer tx.Rollback()

	var applicant string
	err = tx.GetContext(ctx, &applicant, `SELECT name FROM employees WHERE emp_id=$1`, empID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LeaveRequest{}, nil, ErrEmployeeNotFound
	}
	if err != nil {
		return models.LeaveRequest{}, nil, err
	}

	var leave models.LeaveRequest
	err = tx.GetContext(ctx, &leave,
		`INSERT INTO leave_requests (emp_id, leave_date, reason) VALUES ($1, $2, $3)
         RETURNING `+leaveColumns, empID, date, reason)
	if isUniqueViolation(err, "uniq_pending_leave") {
		return models.LeaveRequest{}, nil, ErrDuplicatePendingLeave
	}
	if err != nil {
		return models.LeaveRequest{}, nil, err
	}

	var adminIDs []string
	if err := tx.SelectContext(ctx, &adminIDs,
		`SELECT emp_id FROM employees WHERE role=$1 ORDER BY emp_id`, models.RoleAdmin); err != nil {
		return models.LeaveRequest{}, nil, err
	}

	message := fmt.Sprintf("New leave application from %s for %s", applicant, date.Format("2006-01-02"))
	notifications := make([]models.Notification, 0, len(adminIDs))
	for _, adminID := range adminIDs {
		var n models.Notification
		err := tx.GetContext(ctx, &n,
			`INSERT INTO notifications (emp_id, leave_id, message) VALUES ($1, $2, $3)
             RETURNING id, emp_id, leave_id, message, is_read, created_at`,
			adminID, leave.ID, message)
		if err != nil {
			return models.LeaveRequest{}, nil, err
		}
		notifications = append(notifications, n)
	}

	if err := tx.Commit(); err != nil {
		return models.LeaveRequest{}, nil, err
	}
	return leave, notifications, nil
}

// DecideLeave moves a PENDING request to ACCEPTED or REJECTED and records the
// requester's notification, all in one transaction. The status guard in the
// UPDATE serializes concurrent decisions: only the first one finds a PENDING
// row, the loser observes ErrLeaveNotPending.
func (r *LeaveRepo) DecideLeave(ctx context.Context, leaveID int, status, deciderID string) (models.LeaveRequest, models.Notification, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.LeaveRequest{}, models.Notification{}, err
	}
	defer tx.Rollback()

	var leave models.LeaveRequest
	err = tx.GetContext(ctx, &leave,
		`UPDATE leave_requests SET status=$2, decided_at=NOW(), decided_by=$3
         WHERE id=$1 AND status=$4
         RETURNING `+leaveColumns,
		leaveID, status, deciderID, models.LeaveStatusPending)
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if checkErr := tx.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM leave_requests WHERE id=$1)`, leaveID); checkErr != nil {
			return models.LeaveRequest{}, models.Notification{}, checkErr
		}
		if exists {
			return models.LeaveRequest{}, models.Notification{}, ErrLeaveNotPending
		}
		return models.LeaveRequest{}, models.Notification{}, ErrLeaveNotFound
	}
	if err != nil {
		return models.LeaveRequest{}, models.Notification{}, err
	}

	message := fmt.Sprintf("Your leave request for %s was %s", leave.LeaveDate.Format("2006-01-02"), status)
	var notification models.Notification
	err = tx.GetContext(ctx, &notification,
		`INSERT INTO notifications (emp_id, leave_id, message) VALUES ($1, $2, $3)
         RETURNING id, emp_id, leave_id, message, is_read, created_at`,
		leave.EmpID, leave.ID, message)
	if err != nil {
		return models.LeaveRequest{}, models.Notification{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.LeaveRequest{}, models.Notification{}, err
	}
	return leave, notification, nil
}

// ListAllLeaves returns every leave request, newest first.
func (r *LeaveRepo) ListAllLeaves(ctx context.Context) ([]models.LeaveRequest, error) {
	leaves := []models.LeaveRequest{}
	err := r.db.SelectContext(ctx, &leaves,
		`SELECT `+leaveColumns+` FROM leave_requests ORDER BY applied_at DESC`)
	return leaves, err
}

// ListLeavesForEmployee returns one employee's requests, newest first.
func (r *LeaveRepo) ListLeavesForEmployee(ctx context.Context, empID string) ([]models.LeaveRequest, error) {
	leaves := []models.LeaveRequest{}
	err := r.db.SelectContext(ctx, &leaves,
		`SELECT `+leaveColumns+` FROM leave_requests WHERE emp_id=$1 ORDER BY applied_at DESC`, empID)
	return leaves, err
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && (constraint == "" || pqErr.Constraint == constraint)
}
