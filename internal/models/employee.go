package models

// Employee roles. Admins review leave requests and manage the roster.
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// Employee is a member of the organization.
type Employee struct {
	EmpID  string  `db:"emp_id" json:"emp_id"`
	Name   string  `db:"name" json:"name"`
	Age    int     `db:"age" json:"age"`
	Dept   string  `db:"dept" json:"dept"`
	Salary float64 `db:"salary" json:"salary"`
	Role   string  `db:"role" json:"role"`
}

// EmployeePage is a paginated roster listing.
type EmployeePage struct {
	Total     int        `json:"total"`
	Employees []Employee `json:"list_of_employees"`
}

// Department is a master-list entry.
type Department struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// DepartmentStats combines a department with roster aggregates.
type DepartmentStats struct {
	Department    string  `db:"department" json:"department"`
	EmployeeCount int     `db:"employee_count" json:"employee_count"`
	TotalSalary   float64 `db:"total_salary" json:"total_salary"`
	AverageSalary float64 `db:"average_salary" json:"average_salary"`
}
