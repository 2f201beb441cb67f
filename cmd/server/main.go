package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"boardapi/internal/config"
	"boardapi/internal/database"
	"boardapi/internal/handlers"
	"boardapi/internal/middleware"
	"boardapi/internal/models"
	"boardapi/internal/repository"
	"boardapi/internal/services"
)

func main() {
	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	if err := database.Migrate(); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			logrus.WithError(err).Fatal("failed to create indexes")
		}
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	projectService := services.NewProjectService(projectRepo)
	invitationService := services.NewInvitationService(invitationRepo, projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo)

	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.RequireAuth(cfg.JWTSecret), authHandler.GetCurrentUser)
		}

		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)

			scoped := projects.Group("/:id")
			scoped.Use(middleware.RequireProjectMembership())
			{
				scoped.GET("", projectHandler.GetProject)
				scoped.PATCH("", middleware.RequireRole(models.RoleAdmin), projectHandler.UpdateProject)
				scoped.DELETE("", middleware.RequireRole(models.RoleAdmin), projectHandler.DeleteProject)

				scoped.GET("/members", projectHandler.ListMembers)
				scoped.PATCH("/members/:userId", middleware.RequireRole(models.RoleAdmin), projectHandler.ChangeMemberRole)
				scoped.DELETE("/members/:userId", middleware.RequireRole(models.RoleAdmin), projectHandler.RemoveMember)

				scoped.POST("/invitations", middleware.RequireRole(models.RoleAdmin), invitationHandler.Invite)

				scoped.GET("/tasks", middleware.RequireRole(models.RoleViewer), taskHandler.ListTasks)
				scoped.POST("/tasks", middleware.RequireRole(models.RoleMember), taskHandler.CreateTask)
			}
		}

		invitations := api.Group("/invitations")
		invitations.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			invitations.GET("", invitationHandler.ListMyInvitations)
			invitations.POST("/:id/accept", invitationHandler.Accept)
			invitations.POST("/:id/decline", invitationHandler.Decline)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(cfg.JWTSecret), middleware.RequireTaskMembership())
		{
			tasks.PATCH("/:taskId", middleware.RequireRole(models.RoleMember), taskHandler.UpdateTask)
			tasks.DELETE("/:taskId", middleware.RequireRole(models.RoleMember), taskHandler.DeleteTask)
			tasks.PATCH("/:taskId/move", middleware.RequireRole(models.RoleMember), taskHandler.MoveTask)
		}
	}

	logrus.WithField("addr", cfg.ServerAddr).Info("server starting")
	if err := r.Run(cfg.ServerAddr); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}
