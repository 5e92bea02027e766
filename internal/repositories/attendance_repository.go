package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"employee-service/internal/models"
)

// AttendanceRepository abstracts attendance persistence. Each employee has a
// single row that is updated in place.
type AttendanceRepository interface {
	GetForEmployee(ctx context.Context, empID string) (models.Attendance, error)
	ListAll(ctx context.Context) ([]models.Attendance, error)
	Upsert(ctx context.Context, empID, status string) (models.Attendance, error)
}

// AttendanceRepo is a sqlx-backed AttendanceRepository.
type AttendanceRepo struct {
	db *sqlx.DB
}

// NewAttendanceRepo constructs an AttendanceRepo.
func NewAttendanceRepo(db *sqlx.DB) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

// GetForEmployee returns the employee's current attendance record.
func (r *AttendanceRepo) GetForEmployee(ctx context.Context, empID string) (models.Attendance, error) {
	var att models.Attendance
	err := r.db.GetContext(ctx, &att,
		`SELECT id, emp_id, status, marked_at FROM attendance WHERE emp_id=$1`, empID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Attendance{}, ErrEmployeeNotFound
	}
	return att, err
}

// ListAll returns every attendance record.
func (r *AttendanceRepo) ListAll(ctx context.Context) ([]models.Attendance, error) {
	records := []models.Attendance{}
	err := r.db.SelectContext(ctx, &records,
		`SELECT id, emp_id, status, marked_at FROM attendance ORDER BY emp_id`)
	return records, err
}

// Upsert sets the employee's attendance status, creating the row if needed.
func (r *AttendanceRepo) Upsert(ctx context.Context, empID, status string) (models.Attendance, error) {
	var att models.Attendance
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO attendance (emp_id, status, marked_at) VALUES ($1, $2, NOW())
         ON CONFLICT (emp_id) DO UPDATE SET status = EXCLUDED.status, marked_at = NOW()
         RETURNING id, emp_id, status, marked_at`, empID, status).
		Scan(&att.ID, &att.EmpID, &att.Status, &att.MarkedAt)
	return att, err
}
