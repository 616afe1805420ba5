package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/openedu/conductor-api/internal/handlers"
	"github.com/openedu/conductor-api/internal/logging"
	"github.com/openedu/conductor-api/internal/middleware"
	"github.com/openedu/conductor-api/internal/repository"
	"github.com/openedu/conductor-api/internal/services"
)

// NewRouter wires repositories, services and handlers onto a gin engine
func NewRouter(db *gorm.DB, verifier middleware.TokenVerifier, logger *slog.Logger) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	taskService := services.NewAdminTaskService(repository.NewAdminTaskRepository(db), userRepo)
	projectService := services.NewAdminProjectService(
		repository.NewAdminProjectRepository(db),
		repository.NewAdminProjectUpdateRepository(db),
		userRepo,
	)

	taskHandler := handlers.NewAdminTaskHandler(taskService)
	projectHandler := handlers.NewAdminProjectHandler(projectService)

	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(logger))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Conductor API is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RequireAuth(verifier))
	{
		projects := api.Group("/adminprojects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.POST("/fromtask", projectHandler.CreateProjectFromTask)
			projects.GET("/current", projectHandler.ListCurrentProjects)
			projects.GET("/completed", projectHandler.ListAllCompleted)
			projects.GET("/completed/recent", projectHandler.ListRecentlyCompleted)
			projects.GET("/project", projectHandler.GetProject)
			projects.PUT("/project", projectHandler.UpdateProject)
			projects.DELETE("/project", projectHandler.DeleteProject)
			projects.POST("/project/assignee", projectHandler.AddAssignee)
			projects.PUT("/project/complete", projectHandler.MarkProjectCompleted)
			projects.POST("/updates", projectHandler.AddProgressUpdate)
			projects.GET("/updates", projectHandler.ListProgressUpdates)
			projects.DELETE("/updates", projectHandler.DeleteProgressUpdate)
			projects.GET("/feed", projectHandler.GetFeed)
		}

		tasks := api.Group("/admintasks")
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/task", taskHandler.GetTask)
			tasks.PUT("/task", taskHandler.UpdateTask)
			tasks.DELETE("/task", taskHandler.DeleteTask)
		}
	}

	return r
}
