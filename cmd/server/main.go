package main

import (
	"log"

	"github.com/4Clarity/Better-sub003/internal/config"
	"github.com/4Clarity/Better-sub003/internal/constants"
	"github.com/4Clarity/Better-sub003/internal/database"
	"github.com/4Clarity/Better-sub003/internal/handlers"
	"github.com/4Clarity/Better-sub003/internal/middleware"
	"github.com/4Clarity/Better-sub003/internal/models"
	"github.com/4Clarity/Better-sub003/internal/repository"
	"github.com/4Clarity/Better-sub003/internal/services"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database; the handle is owned here and injected downward
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(db); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	transitionRepo := repository.NewTransitionRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo)
	transitionService := services.NewTransitionService(transitionRepo)
	milestoneService := services.NewMilestoneService(milestoneRepo, transitionRepo, auditRepo)
	taskService := services.NewTaskService(taskRepo, transitionRepo, milestoneRepo, auditRepo, aiService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	transitionHandler := handlers.NewTransitionHandler(transitionService)
	milestoneHandler := handlers.NewMilestoneHandler(milestoneService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Transition Tracker API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Transition routes (protected), with nested task and milestone routes
		transitions := api.Group("/transitions")
		transitions.Use(middleware.RequireAuth())
		{
			transitions.POST("", transitionHandler.CreateTransition)
			transitions.GET("", transitionHandler.ListTransitions)
			transitions.GET("/:id", transitionHandler.GetTransition)
			transitions.PUT("/:id", transitionHandler.UpdateTransition)
			transitions.DELETE("/:id", transitionHandler.DeleteTransition)

			transitions.GET("/:id/tasks", taskHandler.ListTasks)
			transitions.POST("/:id/tasks", taskHandler.CreateTask)
			transitions.GET("/:id/tasks/tree", taskHandler.GetTaskTree)
			transitions.PUT("/:id/tasks/:taskId/move", taskHandler.MoveTask)

			transitions.GET("/:id/milestones", milestoneHandler.ListMilestones)
			transitions.POST("/:id/milestones",
				middleware.RequireRole(models.RoleProgramManager, models.RoleGovernmentPM),
				milestoneHandler.CreateMilestone)
			transitions.POST("/:id/milestones/bulk-delete", milestoneHandler.BulkDeleteMilestones)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.POST("/generate", taskHandler.DraftTasks)
			tasks.POST("/sweep-overdue", taskHandler.SweepOverdueTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.GET("/:id/history", taskHandler.GetTaskHistory)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Milestone routes (protected)
		milestones := api.Group("/milestones")
		milestones.Use(middleware.RequireAuth())
		{
			milestones.POST("/sweep-overdue", milestoneHandler.SweepOverdueMilestones)
			milestones.GET("/:id", milestoneHandler.GetMilestone)
			milestones.PATCH("/:id", milestoneHandler.UpdateMilestone)
			milestones.DELETE("/:id", milestoneHandler.DeleteMilestone)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
