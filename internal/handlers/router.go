package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AP-CSE-2025/proctor-service/internal/auth"
	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/services"
	"github.com/AP-CSE-2025/proctor-service/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	profileHandler   *ProfileHandler
	studentHandler   *StudentHandler
	visitLogHandler  *VisitLogHandler
	todoHandler      *TodoHandler
	dashboardHandler *DashboardHandler
	authMiddleware   *JWTAuthMiddleware

	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Auth(), logger),
		profileHandler:   NewProfileHandler(serviceManager.Availability(), logger),
		studentHandler:   NewStudentHandler(serviceManager.Student(), serviceManager.Export(), logger),
		visitLogHandler:  NewVisitLogHandler(serviceManager.VisitLog(), logger),
		todoHandler:      NewTodoHandler(serviceManager.Todo(), logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Dashboard(), logger),
		authMiddleware:   NewJWTAuthMiddleware(tokens, NewBaseHandler(logger)),
		serviceManager:   serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	// Public auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", hm.authHandler.Signup)
		authGroup.POST("/login", hm.authHandler.Login)
	}

	// Everything else requires a valid token
	protected := api.Group("")
	protected.Use(hm.authMiddleware.AuthMiddleware())
	{
		// HOD routes
		hod := protected.Group("/hod", hm.authMiddleware.RequireRole(models.RoleHOD))
		{
			hod.GET("/availability", hm.profileHandler.GetAvailability)
			hod.PUT("/availability", hm.profileHandler.UpdateAvailability)
			hod.GET("/profile", hm.profileHandler.GetHODProfile)
			hod.PUT("/profile", hm.profileHandler.UpdateHODProfile)
			hod.GET("/dashboard", hm.dashboardHandler.GetDashboard)
			hod.GET("/students", hm.studentHandler.ListStudents)
			hod.GET("/students/export", hm.studentHandler.ExportStudents)
			hod.GET("/students/:id", hm.studentHandler.GetStudent)
		}

		// Proctor routes
		proctor := protected.Group("/proctor", hm.authMiddleware.RequireRole(models.RoleProctor))
		{
			proctor.GET("/profile", hm.profileHandler.GetProctorProfile)
			proctor.PUT("/settings/update", hm.profileHandler.UpdateProctorSettings)
			proctor.GET("/students", hm.studentHandler.ListAssignedStudents)
			proctor.GET("/students/:id", hm.studentHandler.GetAssignedStudent)
			proctor.POST("/addstudent", hm.studentHandler.AddStudent)
		}

		// Personal tasks for both roles
		todo := protected.Group("/todo")
		{
			todo.GET("", hm.todoHandler.ListTasks)
			todo.POST("", hm.todoHandler.CreateTask)
			todo.PUT("/:id", hm.todoHandler.UpdateTask)
			todo.DELETE("/:id", hm.todoHandler.DeleteTask)
		}

		// Visitor log: intake and listing for both roles, disposition
		// changes restricted to HODs
		visits := protected.Group("/visit_logs")
		{
			visits.GET("", hm.visitLogHandler.ListVisits)
			visits.GET("/pending", hm.visitLogHandler.ListPendingVisits)
			visits.GET("/:id", hm.visitLogHandler.GetVisit)
			visits.POST("", hm.visitLogHandler.CreateVisit)
			visits.PUT("/:id/update-status", hm.authMiddleware.RequireRole(models.RoleHOD), hm.visitLogHandler.UpdateVisitStatus)
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	status := http.StatusOK
	health := gin.H{
		"status":    "healthy",
		"service":   "proctor-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		health["status"] = "unhealthy"
		health["error"] = err.Error()
	}

	c.JSON(status, health)
}
