package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"employee-service/internal/mocks"
	"employee-service/internal/models"
	"employee-service/internal/repositories"
)

func setupNotificationRouter(handler *NotificationHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("empID", "ALICE001")
		c.Next()
	})
	r.GET("/notifications", handler.List)
	r.PATCH("/notifications", handler.MarkAllRead)
	r.PATCH("/notifications/:notification_id/read", handler.MarkRead)
	r.DELETE("/notifications/:notification_id", handler.Delete)
	return r
}

func TestListNotifications(t *testing.T) {
	repo := new(mocks.NotificationRepositoryMock)
	router := setupNotificationRouter(NewNotificationHandler(repo))

	repo.On("ListForEmployee", mock.Anything, "ALICE001").
		Return([]models.Notification{{ID: 1, EmpID: "ALICE001", Message: "hi"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestMarkNotificationRead(t *testing.T) {
	repo := new(mocks.NotificationRepositoryMock)
	router := setupNotificationRouter(NewNotificationHandler(repo))

	repo.On("MarkRead", mock.Anything, 3, "ALICE001").
		Return(models.Notification{ID: 3, EmpID: "ALICE001", Read: true}, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/notifications/3/read", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestMarkNotificationReadForeignID(t *testing.T) {
	repo := new(mocks.NotificationRepositoryMock)
	router := setupNotificationRouter(NewNotificationHandler(repo))

	repo.On("MarkRead", mock.Anything, 3, "ALICE001").
		Return(models.Notification{}, repositories.ErrNotificationNotFound).Once()

	req := httptest.NewRequest(http.MethodPatch, "/notifications/3/read", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	repo.AssertExpectations(t)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	repo := new(mocks.NotificationRepositoryMock)
	router := setupNotificationRouter(NewNotificationHandler(repo))

	repo.On("MarkAllRead", mock.Anything, "ALICE001").
		Return([]models.Notification{{ID: 1, Read: true}, {ID: 2, Read: true}}, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/notifications", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestDeleteNotification(t *testing.T) {
	repo := new(mocks.NotificationRepositoryMock)
	router := setupNotificationRouter(NewNotificationHandler(repo))

	repo.On("Delete", mock.Anything, 4, "ALICE001").Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/notifications/4", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	repo.AssertExpectations(t)
}

func TestDeleteNotificationInvalidID(t *testing.T) {
	repo := new(mocks.NotificationRepositoryMock)
	router := setupNotificationRouter(NewNotificationHandler(repo))

	req := httptest.NewRequest(http.MethodDelete, "/notifications/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
