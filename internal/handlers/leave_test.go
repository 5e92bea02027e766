package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"employee-service/internal/mocks"
	"employee-service/internal/models"
	"employee-service/internal/repositories"
	"employee-service/internal/ws"
)

func setupLeaveRouter(handler *LeaveHandler, empID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("empID", empID)
		c.Next()
	})
	r.POST("/employee/leave", handler.SubmitLeave)
	r.GET("/employee/leaves", handler.ListOwnLeaves)
	r.PATCH("/admin/leave/:leave_id", handler.DecideLeave)
	r.GET("/admin/leaves", handler.ListAllLeaves)
	return r
}

func newLeaveHandlerForTest(leaveRepo repositories.LeaveRepository) *LeaveHandler {
	return NewLeaveHandler(leaveRepo, ws.NewDispatcher(ws.NewHub()), nil)
}

func TestSubmitLeaveSuccess(t *testing.T) {
	leaveRepo := new(mocks.LeaveRepositoryMock)
	handler := newLeaveHandlerForTest(leaveRepo)
	router := setupLeaveRouter(handler, "ALICE001")

	leaveRepo.On("SubmitLeave", mock.Anything, "ALICE001", mock.Anything, "vacation").
		Return(models.LeaveRequest{ID: 7, EmpID: "ALICE001", Status: models.LeaveStatusPending},
			[]models.Notification{{ID: 1, EmpID: "ADMINBOB001", Message: "New leave application from ALICE for 2099-01-02"}}, nil).Once()

	body := bytes.NewBufferString(`{"date":"2099-01-02","reason":"vacation"}`)
	req := httptest.NewRequest(http.MethodPost, "/employee/leave", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.LeaveRequest
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 7, resp.ID)
	assert.Equal(t, models.LeaveStatusPending, resp.Status)
	leaveRepo.AssertExpectations(t)
}

func TestSubmitLeaveRejectsMalformedDate(t *testing.T) {
	leaveRepo := new(mocks.LeaveRepositoryMock)
	handler := newLeaveHandlerForTest(leaveRepo)
	router := setupLeaveRouter(handler, "ALICE001")

	req := httptest.NewRequest(http.MethodPost, "/employee/leave", bytes.NewBufferString(`{"date":"02-01-2099"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	leaveRepo.AssertNotCalled(t, "SubmitLeave", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitLeaveRejectsPastDate(t *testing.T) {
	leaveRepo := new(mocks.LeaveRepositoryMock)
	handler := newLeaveHandlerForTest(leaveRepo)
	router := setupLeaveRouter(handler, "ALICE001")

	req := httptest.NewRequest(http.MethodPost, "/employee/leave", bytes.NewBufferString(`{"date":"2020-01-01"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	leaveRepo.AssertNotCalled(t, "SubmitLeave", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitLeaveDuplicatePending(t *testing.T) {
	leaveRepo := new(mocks.LeaveRepositoryMock)
	handler := newLeaveHandlerForTest(leaveRepo)
	router := setupLeaveRouter(handler, "ALICE001")

	leaveRepo.On("SubmitLeave", mock.Anything, "ALICE001", mock.Anything, "").
		Return(models.LeaveRequest{}, ([]models.Notification)(nil), repositories.ErrDuplicatePendingLeave).Once()

	req := httptest.NewRequest(http.MethodPost, "/employee/leave", bytes.NewBufferString(`{"date":"2099-01-02"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	leaveRepo.AssertExpectations(t)
}

type recordingConn struct {
	events []models.NotificationEvent
}

func (c *recordingConn) SendJSON(v any) error {
	if evt, ok := v.(models.NotificationEvent); ok {
		c.events = append(c.events, evt)
	}
	return nil
}

func (c *recordingConn) Close() error { return nil }

func TestSubmitLeaveNotifiesEachConnectedAdminOnce(t *testing.T) {
	hub := ws.NewHub()
	adminA := &recordingConn{}
	adminB := &recordingConn{}
	hub.AddNotifyClient("ADMINBOB001", adminA, ws.ConnInfo{EmpID: "ADMINBOB001"})
	hub.AddNotifyClient("ADMINEVE002", adminB, ws.ConnInfo{EmpID: "ADMINEVE002"})

	leaveRepo := new(mocks.LeaveRepositoryMock)
	handler := NewLeaveHandler(leaveRepo, ws.NewDispatcher(hub), nil)
	router := setupLeaveRouter(handler, "ALICE001")

	leaveRepo.On("SubmitLeave", mock.Anything, "ALICE001", mock.Anything, "vacation").
		Return(models.LeaveRequest{ID: 7, EmpID: "ALICE001", Status: models.LeaveStatusPending},
			[]models.Notification{
				{ID: 1, EmpID: "ADMINBOB001", Message: "New leave application from ALICE for 2099-01-02"},
				{ID: 2, EmpID: "ADMINEVE002", Message: "New leave application from ALICE for 2099-01-02"},
			}, nil).Once()

	body := bytes.NewBufferString(`{"date":"2099-01-02","reason":"vacation"}`)
	req := httptest.NewRequest(http.MethodPost, "/employee/leave", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, adminA.events, 1)
	require.Len(t, adminB.events, 1)
	assert.Equal(t, models.ActionNewLeaveApplication, adminA.events[0].Action)
	assert.Equal(t, models.ActionNewLeaveApplication, adminB.events[0].Action)
	assert.Equal(t, 7, adminA.events[0].LeaveID)
	assert.Equal(t, 7, adminB.events[0].LeaveID)
	assert.Equal(t, 1, adminA.events[0].ID)
	assert.Equal(t, 2, adminB.events[0].ID)
	leaveRepo.AssertExpectations(t)
}

func TestDecideLeaveSuccess(t *testing.T) {
	leaveRepo := new(mocks.LeaveRepositoryMock)
	handler := newLeaveHandlerForTest(leaveRepo)
	router := setupLeaveRouter(handler, "ADMINBOB001")

	leaveRepo.On("DecideLeave", mock.Anything, 7, models.LeaveStatusAccepted, "ADMINBOB001").
		Return(models.LeaveRequest{ID: 7, EmpID: "ALICE001", Status: models.LeaveStatusAccepted},
			models.Notification{ID: 9, EmpID: "ALICE001", Message: "Your leave request for 2099-01-02 was ACCEPTED"}, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/admin/leave/7", bytes.NewBufferString(`{"decision":"accepted"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.LeaveRequest
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, models.LeaveStatusAccepted, resp.Status)
	leaveRepo.AssertExpectations(t)
}

func TestDecideLeaveRejectsUnknownDecision(t *testing.T) {
	leaveRepo := new(mocks.LeaveRepositoryMock)
	handler := newLeaveHandlerForTest(leaveRepo)
	router := setupLeaveRouter(handler, "ADMINBOB001")

	req := httptest.NewRequest(http.MethodPatch, "/admin/leave/7", bytes.NewBufferString(`{"decision":"MAYBE"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	leaveRepo.AssertNotCalled(t, "DecideLeave", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDecideLeaveNotFound(t *testing.T) {
	leaveRepo := new(mocks.LeaveRepositoryMock)
	handler := newLeaveHandlerForTest(leaveRepo)
	router := setupLeaveRouter(handler, "ADMINBOB001")

	leaveRepo.On("DecideLeave", mock.Anything, 404, models.LeaveStatusRejected, "ADMINBOB001").
		Return(models.LeaveRequest{}, models.Notification{}, repositories.ErrLeaveNotFound).Once()

	req := httptest.NewRequest(http.MethodPatch, "/admin/leave/404", bytes.NewBufferString(`{"decision":"REJECTED"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	leaveRepo.AssertExpectations(t)
}

func TestDecideLeaveAlreadyDecided(t *testing.T) {
	leaveRepo := new(mocks.LeaveRepositoryMock)
	handler := newLeaveHandlerForTest(leaveRepo)
	router := setupLeaveRouter(handler, "ADMINBOB001")

	leaveRepo.On("DecideLeave", mock.Anything, 7, models.LeaveStatusAccepted, "ADMINBOB001").
		Return(models.LeaveRequest{}, models.Notification{}, repositories.ErrLeaveNotPending).Once()

	req := httptest.NewRequest(http.MethodPatch, "/admin/leave/7", bytes.NewBufferString(`{"decision":"ACCEPTED"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	leaveRepo.AssertExpectations(t)
}

func TestListOwnLeaves(t *testing.T) {
	leaveRepo := new(mocks.LeaveRepositoryMock)
	handler := newLeaveHandlerForTest(leaveRepo)
	router := setupLeaveRouter(handler, "ALICE001")

	leaveRepo.On("ListLeavesForEmployee", mock.Anything, "ALICE001").
		Return([]models.LeaveRequest{{ID: 1, EmpID: "ALICE001"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/employee/leaves", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	leaveRepo.AssertExpectations(t)
}

func TestListAllLeavesRepoError(t *testing.T) {
	leaveRepo := new(mocks.LeaveRepositoryMock)
	handler := newLeaveHandlerForTest(leaveRepo)
	router := setupLeaveRouter(handler, "ADMINBOB001")

	leaveRepo.On("ListAllLeaves", mock.Anything).
		Return(([]models.LeaveRequest)(nil), assert.AnError).Once()

	req := httptest.NewRequest(http.MethodGet, "/admin/leaves", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	leaveRepo.AssertExpectations(t)
}
