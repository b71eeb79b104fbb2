package router

import (
	"time"

	"github.com/casetrack-dev/casetrack/internal/handlers"
	"github.com/casetrack-dev/casetrack/internal/middleware"
	"github.com/casetrack-dev/casetrack/internal/types"
	"github.com/casetrack-dev/casetrack/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func NewRouter(logger zerolog.Logger) *gin.Engine {
	utils.RegisterTagNames()

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)

		protected := api.Group("", middleware.AuthMiddleware())
		{
			protected.POST("/logout", handlers.Logout)
			protected.GET("/me", handlers.Me)

			projects := protected.Group("/projects")
			{
				projects.GET("", handlers.ListProjects)
				projects.POST("", handlers.CreateProject)
				projects.GET("/:project_id", handlers.GetProject)
				projects.PUT("/:project_id", handlers.UpdateProject)
				projects.DELETE("/:project_id", handlers.DeleteProject)

				// Task endpoints, reachable only through the owning project
				projects.GET("/:project_id/tasks", handlers.ListTasks)
				projects.POST("/:project_id/tasks", handlers.CreateTask)
				projects.GET("/:project_id/tasks/:task_id", handlers.GetTask)
				projects.PUT("/:project_id/tasks/:task_id", handlers.UpdateTask)
				projects.DELETE("/:project_id/tasks/:task_id", handlers.DeleteTask)
			}

			testCases := protected.Group("/test-cases")
			{
				testCases.GET("", handlers.ListTestCases)
				testCases.POST("", handlers.CreateTestCase)
				testCases.GET("/:test_case_id", handlers.GetTestCase)
				testCases.PUT("/:test_case_id", handlers.UpdateTestCase)
				testCases.DELETE("/:test_case_id", handlers.DeleteTestCase)
				testCases.POST("/:test_case_id/execute", handlers.ExecuteTestCase)
			}
		}
	}

	return r
}
