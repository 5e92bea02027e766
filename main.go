package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"employee-service/internal/config"
	"employee-service/internal/db"
	"employee-service/internal/handlers"
	"employee-service/internal/middleware"
	"employee-service/internal/observability"
	"employee-service/internal/rabbitmq"
	"employee-service/internal/repositories"
	"employee-service/internal/telemetry"
	"employee-service/internal/ws"
)

const serviceName = "employee-service"

func main() {
	cfg := config.Load()

	database, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	shutdownTracing, err := observability.SetupTracing(context.Background(), serviceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	if cfg.AMQPURL != "" {
		eventPublisher, err := observability.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Printf("event publisher disabled: %v", err)
		} else {
			observability.SetPublisher(eventPublisher)
			defer eventPublisher.Close()
		}
	}

	auditPublisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer auditPublisher.Close()
	auditEmitter := telemetry.NewAuditEmitter(auditPublisher, cfg.AuditRoutingKey, serviceName, cfg.Environment)

	employeeRepo := repositories.NewEmployeeRepo(database)
	departmentRepo := repositories.NewDepartmentRepo(database)
	attendanceRepo := repositories.NewAttendanceRepo(database)
	leaveRepo := repositories.NewLeaveRepo(database)
	notificationRepo := repositories.NewNotificationRepo(database)
	chatRepo := repositories.NewChatMessageRepo(database)

	hub := ws.NewHub()
	dispatcher := ws.NewDispatcher(hub)

	employeeHandler := handlers.NewEmployeeHandler(employeeRepo, auditEmitter)
	departmentHandler := handlers.NewDepartmentHandler(departmentRepo)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceRepo)
	leaveHandler := handlers.NewLeaveHandler(leaveRepo, dispatcher, auditEmitter)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	chatHandler := handlers.NewChatHandler(chatRepo, employeeRepo, dispatcher)

	notifyWS := ws.NewNotifyWebSocketHandler(hub, cfg.JWTSecret)
	chatWS := ws.NewChatWebSocketHandler(hub, dispatcher, employeeRepo, chatRepo, cfg.JWTSecret)

	router := gin.Default()

	// middlewares
	router.Use(gin.Recovery())
	router.Use(observability.HTTPMetricsMiddleware())
	router.Use(otelgin.Middleware(serviceName))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterDebugRoutes(router, auditEmitter, cfg.EnableDebugRoutes)

	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)

	admin := router.Group("/admin", authMiddleware, middleware.RequireAdmin())
	admin.POST("/employees", employeeHandler.Create)
	admin.GET("/employees", employeeHandler.List)
	admin.GET("/employees/:emp_id", employeeHandler.Get)
	admin.PATCH("/employees/:emp_id", employeeHandler.Update)
	admin.DELETE("/employees/:emp_id", employeeHandler.Delete)

	admin.GET("/departments", departmentHandler.Stats)
	admin.POST("/departments", departmentHandler.Create)
	admin.DELETE("/departments/:name", departmentHandler.Delete)

	admin.GET("/attendance", attendanceHandler.ListAll)
	admin.PUT("/attendance/:emp_id", attendanceHandler.SetStatus)

	admin.GET("/leaves", leaveHandler.ListAllLeaves)
	admin.PATCH("/leave/:leave_id", leaveHandler.DecideLeave)

	employee := router.Group("/employee", authMiddleware)
	employee.GET("/profile", employeeHandler.Profile)
	employee.GET("/attendance", attendanceHandler.Own)
	employee.POST("/leave", leaveHandler.SubmitLeave)
	employee.GET("/leaves", leaveHandler.ListOwnLeaves)

	notifications := router.Group("/notifications", authMiddleware)
	notifications.GET("", notificationHandler.List)
	notifications.PATCH("", notificationHandler.MarkAllRead)
	notifications.PATCH("/:notification_id/read", notificationHandler.MarkRead)
	notifications.DELETE("/:notification_id", notificationHandler.Delete)

	chat := router.Group("/chat", authMiddleware)
	chat.GET("/history", chatHandler.History)
	chat.POST("/message", chatHandler.PostMessage)
	chat.PUT("/message/:message_id", chatHandler.EditMessage)
	chat.DELETE("/message/:message_id", chatHandler.DeleteMessage)

	// websocket endpoints authorize themselves from the token
	router.GET("/ws/notify", notifyWS.Handle)
	router.GET("/ws/chat/global", chatWS.Handle)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
