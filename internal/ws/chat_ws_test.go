package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"employee-service/internal/auth"
	"employee-service/internal/mocks"
	"employee-service/internal/models"
	"employee-service/internal/repositories"
)

const wsTestSecret = "ws-test-secret"

func signedWSToken(t *testing.T, empID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		EmpID: empID,
		Role:  models.RoleEmployee,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(wsTestSecret))
	require.NoError(t, err)
	return signed
}

func newChatWSRouter(employeeRepo repositories.EmployeeRepository, chatRepo repositories.ChatMessageRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	handler := NewChatWebSocketHandler(hub, NewDispatcher(hub), employeeRepo, chatRepo, wsTestSecret)
	r := gin.New()
	r.GET("/ws/chat/global", handler.Handle)
	return r
}

func TestChatInboundPersistsWithLiveContext(t *testing.T) {
	employeeRepo := new(mocks.EmployeeRepositoryMock)
	chatRepo := new(mocks.ChatMessageRepositoryMock)

	employeeRepo.On("GetEmployee", mock.Anything, "ALICE001").
		Return(models.Employee{EmpID: "ALICE001", Name: "ALICE"}, nil).Once()

	ctxState := make(chan error, 1)
	chatRepo.On("CreateChatMessage", mock.Anything, "ALICE001", "ALICE", "hello").
		Run(func(args mock.Arguments) {
			ctxState <- args.Get(0).(context.Context).Err()
		}).
		Return(models.ChatMessage{ID: 1, EmpID: "ALICE001", EmpName: "ALICE", Message: "hello"}, nil).Once()

	srv := httptest.NewServer(newChatWSRouter(employeeRepo, chatRepo))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat/global?token=" + signedWSToken(t, "ALICE001")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// Let the handshake handler return first; the request context it ran
	// under is canceled by then, and the frame must still be persisted.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"message":"hello"}`)))

	select {
	case ctxErr := <-ctxState:
		require.NoError(t, ctxErr, "message store saw a dead context")
	case <-time.After(2 * time.Second):
		t.Fatal("inbound frame was never persisted")
	}
	chatRepo.AssertExpectations(t)
	employeeRepo.AssertExpectations(t)
}

func TestChatHandleUnknownEmployee(t *testing.T) {
	employeeRepo := new(mocks.EmployeeRepositoryMock)
	chatRepo := new(mocks.ChatMessageRepositoryMock)

	employeeRepo.On("GetEmployee", mock.Anything, "GHOST001").
		Return(models.Employee{}, repositories.ErrEmployeeNotFound).Once()

	router := newChatWSRouter(employeeRepo, chatRepo)
	req := httptest.NewRequest(http.MethodGet, "/ws/chat/global?token="+signedWSToken(t, "GHOST001"), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	employeeRepo.AssertExpectations(t)
}

func TestChatHandleEmployeeLookupError(t *testing.T) {
	employeeRepo := new(mocks.EmployeeRepositoryMock)
	chatRepo := new(mocks.ChatMessageRepositoryMock)

	employeeRepo.On("GetEmployee", mock.Anything, "ALICE001").
		Return(models.Employee{}, context.DeadlineExceeded).Once()

	router := newChatWSRouter(employeeRepo, chatRepo)
	req := httptest.NewRequest(http.MethodGet, "/ws/chat/global?token="+signedWSToken(t, "ALICE001"), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	employeeRepo.AssertExpectations(t)
}
