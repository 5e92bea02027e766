package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"employee-service/internal/models"
)

var ErrEmployeeNotFound = errors.New("employee not found")

// EmployeeUpdate carries optional field changes; nil means keep the current value.
type EmployeeUpdate struct {
	Name   *string
	Age    *int
	Dept   *string
	Salary *float64
	Role   *string
}

// EmployeeRepository abstracts employee roster persistence.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, name string, age int, dept string, salary float64, role string) (models.Employee, error)
	GetEmployee(ctx context.Context, empID string) (models.Employee, error)
	UpdateEmployee(ctx context.Context, empID string, upd EmployeeUpdate) (models.Employee, error)
	DeleteEmployee(ctx context.Context, empID string) error
	ListEmployees(ctx context.Context, skip, limit int, name string) (models.EmployeePage, error)
}

// EmployeeRepo is a sqlx-backed EmployeeRepository.
type EmployeeRepo struct {
	db *sqlx.DB
}

// NewEmployeeRepo constructs an EmployeeRepo.
func NewEmployeeRepo(db *sqlx.DB) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

// CreateEmployee inserts a new employee plus their initial attendance row in
// one transaction. The employee id keeps the legacy human-readable format
// PREFIX+NAME+NNN, with the numeric suffix drawn from a database sequence so
// concurrent creates never collide.
func (r *EmployeeRepo) CreateEmployee(ctx context.Context, name string, age int, dept string, salary float64, role string) (models.Employee, error) {
	if role == "" {
		role = models.RoleEmployee
	}
	dept = strings.ToUpper(dept)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Employee{}, err
	}
	defer tx.Rollback()

	var deptExists bool
	if err := tx.GetContext(ctx, &deptExists, `SELECT EXISTS(SELECT 1 FROM departments WHERE name=$1)`, dept); err != nil {
		return models.Employee{}, err
	}
	if !deptExists {
		return models.Employee{}, ErrDepartmentNotFound
	}

	var seq int64
	if err := tx.GetContext(ctx, &seq, `SELECT nextval('employee_number_seq')`); err != nil {
		return models.Employee{}, err
	}
	empID := formatEmpID(name, role, seq)

	var emp models.Employee
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO employees (emp_id, name, age, dept, salary, role) VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING emp_id, name, age, dept, salary, role`,
		empID, strings.ToUpper(name), age, dept, salary, role).
		Scan(&emp.EmpID, &emp.Name, &emp.Age, &emp.Dept, &emp.Salary, &emp.Role)
	if err != nil {
		return models.Employee{}, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO attendance (emp_id, status) VALUES ($1, $2)`,
		empID, models.AttendanceAbsent); err != nil {
		return models.Employee{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Employee{}, err
	}
	return emp, nil
}

func formatEmpID(name, role string, seq int64) string {
	prefix := ""
	if role == models.RoleAdmin {
		prefix = "ADMIN"
	}
	compact := strings.ToUpper(strings.ReplaceAll(name, " ", ""))
	return fmt.Sprintf("%s%s%03d", prefix, compact, seq)
}

// GetEmployee fetches a single employee.
func (r *EmployeeRepo) GetEmployee(ctx context.Context, empID string) (models.Employee, error) {
	var emp models.Employee
	err := r.db.GetContext(ctx, &emp,
		`SELECT emp_id, name, age, dept, salary, role FROM employees WHERE emp_id=$1`, empID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Employee{}, ErrEmployeeNotFound
	}
	return emp, err
}

// UpdateEmployee applies partial field updates. A changed department must
// exist in the master list.
func (r *EmployeeRepo) UpdateEmployee(ctx context.Context, empID string, upd EmployeeUpdate) (models.Employee, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Employee{}, err
	}
	defer tx.Rollback()

	var emp models.Employee
	err = tx.GetContext(ctx, &emp,
		`SELECT emp_id, name, age, dept, salary, role FROM employees WHERE emp_id=$1 FOR UPDATE`, empID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return models.Employee{}, err
	}

	if upd.Name != nil {
		emp.Name = strings.ToUpper(*upd.Name)
	}
	if upd.Age != nil {
		emp.Age = *upd.Age
	}
	if upd.Salary != nil {
		emp.Salary = *upd.Salary
	}
	if upd.Role != nil {
		emp.Role = *upd.Role
	}
	if upd.Dept != nil {
		dept := strings.ToUpper(*upd.Dept)
		var deptExists bool
		if err := tx.GetContext(ctx, &deptExists, `SELECT EXISTS(SELECT 1 FROM departments WHERE name=$1)`, dept); err != nil {
			return models.Employee{}, err
		}
		if !deptExists {
			return models.Employee{}, ErrDepartmentNotFound
		}
		emp.Dept = dept
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE employees SET name=$2, age=$3, dept=$4, salary=$5, role=$6 WHERE emp_id=$1`,
		emp.EmpID, emp.Name, emp.Age, emp.Dept, emp.Salary, emp.Role); err != nil {
		return models.Employee{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Employee{}, err
	}
	return emp, nil
}

// DeleteEmployee removes an employee; attendance, leave and notification rows
// cascade in the schema.
func (r *EmployeeRepo) DeleteEmployee(ctx context.Context, empID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE emp_id=$1`, empID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

// ListEmployees returns an offset-paginated roster page, optionally filtered
// by a case-insensitive name fragment.
func (r *EmployeeRepo) ListEmployees(ctx context.Context, skip, limit int, name string) (models.EmployeePage, error) {
	filter := "%" + name + "%"

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM employees WHERE name ILIKE $1`, filter); err != nil {
		return models.EmployeePage{}, err
	}

	employees := []models.Employee{}
	err := r.db.SelectContext(ctx, &employees,
		`SELECT emp_id, name, age, dept, salary, role FROM employees
         WHERE name ILIKE $1 ORDER BY emp_id OFFSET $2 LIMIT $3`,
		filter, skip, limit)
	if err != nil {
		return models.EmployeePage{}, err
	}

	return models.EmployeePage{Total: total, Employees: employees}, nil
}
