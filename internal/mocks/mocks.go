package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"employee-service/internal/models"
	"employee-service/internal/repositories"
)

type EmployeeRepositoryMock struct {
	mock.Mock
}

func (m *EmployeeRepositoryMock) CreateEmployee(ctx context.Context, name string, age int, dept string, salary float64, role string) (models.Employee, error) {
	args := m.Called(ctx, name, age, dept, salary, role)
	var emp models.Employee
	if val := args.Get(0); val != nil {
		emp = val.(models.Employee)
	}
	return emp, args.Error(1)
}

func (m *EmployeeRepositoryMock) GetEmployee(ctx context.Context, empID string) (models.Employee, error) {
	args := m.Called(ctx, empID)
	var emp models.Employee
	if val := args.Get(0); val != nil {
		emp = val.(models.Employee)
	}
	return emp, args.Error(1)
}

func (m *EmployeeRepositoryMock) UpdateEmployee(ctx context.Context, empID string, upd repositories.EmployeeUpdate) (models.Employee, error) {
	args := m.Called(ctx, empID, upd)
	var emp models.Employee
	if val := args.Get(0); val != nil {
		emp = val.(models.Employee)
	}
	return emp, args.Error(1)
}

func (m *EmployeeRepositoryMock) DeleteEmployee(ctx context.Context, empID string) error {
	args := m.Called(ctx, empID)
	return args.Error(0)
}

func (m *EmployeeRepositoryMock) ListEmployees(ctx context.Context, skip, limit int, name string) (models.EmployeePage, error) {
	args := m.Called(ctx, skip, limit, name)
	var page models.EmployeePage
	if val := args.Get(0); val != nil {
		page = val.(models.EmployeePage)
	}
	return page, args.Error(1)
}

type DepartmentRepositoryMock struct {
	mock.Mock
}

func (m *DepartmentRepositoryMock) CreateDepartment(ctx context.Context, name string) (models.Department, error) {
	args := m.Called(ctx, name)
	var dept models.Department
	if val := args.Get(0); val != nil {
		dept = val.(models.Department)
	}
	return dept, args.Error(1)
}

func (m *DepartmentRepositoryMock) DeleteDepartment(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *DepartmentRepositoryMock) ListDepartmentStats(ctx context.Context) ([]models.DepartmentStats, error) {
	args := m.Called(ctx)
	var stats []models.DepartmentStats
	if val := args.Get(0); val != nil {
		stats = val.([]models.DepartmentStats)
	}
	return stats, args.Error(1)
}

type AttendanceRepositoryMock struct {
	mock.Mock
}

func (m *AttendanceRepositoryMock) GetForEmployee(ctx context.Context, empID string) (models.Attendance, error) {
	args := m.Called(ctx, empID)
	var att models.Attendance
	if val := args.Get(0); val != nil {
		att = val.(models.Attendance)
	}
	return att, args.Error(1)
}

func (m *AttendanceRepositoryMock) ListAll(ctx context.Context) ([]models.Attendance, error) {
	args := m.Called(ctx)
	var records []models.Attendance
	if val := args.Get(0); val != nil {
		records = val.([]models.Attendance)
	}
	return records, args.Error(1)
}

func (m *AttendanceRepositoryMock) Upsert(ctx context.Context, empID, status string) (models.Attendance, error) {
	args := m.Called(ctx, empID, status)
	var att models.Attendance
	if val := args.Get(0); val != nil {
		att = val.(models.Attendance)
	}
	return att, args.Error(1)
}

type LeaveRepositoryMock struct {
	mock.Mock
}

func (m *LeaveRepositoryMock) SubmitLeave(ctx context.Context, empID string, date time.Time, reason string) (models.LeaveRequest, []models.Notification, error) {
	args := m.Called(ctx, empID, date, reason)
	var leave models.LeaveRequest
	if val := args.Get(0); val != nil {
		leave = val.(models.LeaveRequest)
	}
	var notifications []models.Notification
	if val := args.Get(1); val != nil {
		notifications = val.([]models.Notification)
	}
	return leave, notifications, args.Error(2)
}

func (m *LeaveRepositoryMock) DecideLeave(ctx context.Context, leaveID int, status, deciderID string) (models.LeaveRequest, models.Notification, error) {
	args := m.Called(ctx, leaveID, status, deciderID)
	var leave models.LeaveRequest
	if val := args.Get(0); val != nil {
		leave = val.(models.LeaveRequest)
	}
	var notification models.Notification
	if val := args.Get(1); val != nil {
		notification = val.(models.Notification)
	}
	return leave, notification, args.Error(2)
}

func (m *LeaveRepositoryMock) ListAllLeaves(ctx context.Context) ([]models.LeaveRequest, error) {
	args := m.Called(ctx)
	var leaves []models.LeaveRequest
	if val := args.Get(0); val != nil {
		leaves = val.([]models.LeaveRequest)
	}
	return leaves, args.Error(1)
}

func (m *LeaveRepositoryMock) ListLeavesForEmployee(ctx context.Context, empID string) ([]models.LeaveRequest, error) {
	args := m.Called(ctx, empID)
	var leaves []models.LeaveRequest
	if val := args.Get(0); val != nil {
		leaves = val.([]models.LeaveRequest)
	}
	return leaves, args.Error(1)
}

type NotificationRepositoryMock struct {
	mock.Mock
}

func (m *NotificationRepositoryMock) ListForEmployee(ctx context.Context, empID string) ([]models.Notification, error) {
	args := m.Called(ctx, empID)
	var notifications []models.Notification
	if val := args.Get(0); val != nil {
		notifications = val.([]models.Notification)
	}
	return notifications, args.Error(1)
}

func (m *NotificationRepositoryMock) MarkRead(ctx context.Context, id int, empID string) (models.Notification, error) {
	args := m.Called(ctx, id, empID)
	var n models.Notification
	if val := args.Get(0); val != nil {
		n = val.(models.Notification)
	}
	return n, args.Error(1)
}

func (m *NotificationRepositoryMock) MarkAllRead(ctx context.Context, empID string) ([]models.Notification, error) {
	args := m.Called(ctx, empID)
	var notifications []models.Notification
	if val := args.Get(0); val != nil {
		notifications = val.([]models.Notification)
	}
	return notifications, args.Error(1)
}

func (m *NotificationRepositoryMock) Delete(ctx context.Context, id int, empID string) error {
	args := m.Called(ctx, id, empID)
	return args.Error(0)
}

type ChatMessageRepositoryMock struct {
	mock.Mock
}

func (m *ChatMessageRepositoryMock) CreateChatMessage(ctx context.Context, empID, empName, message string) (models.ChatMessage, error) {
	args := m.Called(ctx, empID, empName, message)
	var msg models.ChatMessage
	if val := args.Get(0); val != nil {
		msg = val.(models.ChatMessage)
	}
	return msg, args.Error(1)
}

func (m *ChatMessageRepositoryMock) History(ctx context.Context, limit, beforeID int) ([]models.ChatMessage, error) {
	args := m.Called(ctx, limit, beforeID)
	var msgs []models.ChatMessage
	if val := args.Get(0); val != nil {
		msgs = val.([]models.ChatMessage)
	}
	return msgs, args.Error(1)
}

func (m *ChatMessageRepositoryMock) UpdateChatMessage(ctx context.Context, messageID int, empID, message string) (models.ChatMessage, error) {
	args := m.Called(ctx, messageID, empID, message)
	var msg models.ChatMessage
	if val := args.Get(0); val != nil {
		msg = val.(models.ChatMessage)
	}
	return msg, args.Error(1)
}

func (m *ChatMessageRepositoryMock) SoftDeleteMessage(ctx context.Context, messageID int, empID string) error {
	args := m.Called(ctx, messageID, empID)
	return args.Error(0)
}

var _ repositories.EmployeeRepository = (*EmployeeRepositoryMock)(nil)
var _ repositories.DepartmentRepository = (*DepartmentRepositoryMock)(nil)
var _ repositories.AttendanceRepository = (*AttendanceRepositoryMock)(nil)
var _ repositories.LeaveRepository = (*LeaveRepositoryMock)(nil)
var _ repositories.NotificationRepository = (*NotificationRepositoryMock)(nil)
var _ repositories.ChatMessageRepository = (*ChatMessageRepositoryMock)(nil)
