package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"employee-service/internal/models"
)

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrDepartmentInUse    = errors.New("department has employees assigned")
)

// DepartmentRepository abstracts the department master list.
type DepartmentRepository interface {
	CreateDepartment(ctx context.Context, name string) (models.Department, error)
	DeleteDepartment(ctx context.Context, name string) error
	ListDepartmentStats(ctx context.Context) ([]models.DepartmentStats, error)
}

// DepartmentRepo is a sqlx-backed DepartmentRepository.
type DepartmentRepo struct {
	db *sqlx.DB
}

// NewDepartmentRepo constructs a DepartmentRepo.
func NewDepartmentRepo(db *sqlx.DB) *DepartmentRepo {
	return &DepartmentRepo{db: db}
}

// CreateDepartment adds a department to the master list. Creating an existing
// department returns the existing row.
func (r *DepartmentRepo) CreateDepartment(ctx context.Context, name string) (models.Department, error) {
	name = strings.ToUpper(name)

	var dept models.Department
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO departments (name) VALUES ($1)
         ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
         RETURNING id, name`, name).
		Scan(&dept.ID, &dept.Name)
	return dept, err
}

// DeleteDepartment removes a master-list entry. Departments with assigned
// employees cannot be removed.
func (r *DepartmentRepo) DeleteDepartment(ctx context.Context, name string) error {
	name = strings.ToUpper(name)

	var assigned int
	if err := r.db.GetContext(ctx, &assigned,
		`SELECT COUNT(*) FROM employees WHERE dept=$1`, name); err != nil {
		return err
	}
	if assigned > 0 {
		return ErrDepartmentInUse
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE name=$1`, name)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

// ListDepartmentStats returns every department with roster aggregates.
func (r *DepartmentRepo) ListDepartmentStats(ctx context.Context) ([]models.DepartmentStats, error) {
	stats := []models.DepartmentStats{}
	err := r.db.SelectContext(ctx, &stats,
		`SELECT d.name AS department,
                COUNT(e.emp_id) AS employee_count,
                COALESCE(SUM(e.salary), 0) AS total_salary,
                COALESCE(AVG(e.salary), 0) AS average_salary
         FROM departments d
         LEFT JOIN employees e ON e.dept = d.name
         GROUP BY d.name
         ORDER BY d.name`)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.DepartmentStats{}, nil
	}
	return stats, err
}
