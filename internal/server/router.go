package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kanishka132/StudyBuddy-AI/internal/handlers"
	"github.com/kanishka132/StudyBuddy-AI/internal/middleware"
)

type RouterConfig struct {
	AuthHandler      *handlers.AuthHandler
	AuthMiddleware   *middleware.AuthMiddleware
	UserHandler      *handlers.UserHandler
	MaterialHandler  *handlers.MaterialHandler
	ProjectHandler   *handlers.ProjectHandler
	QuizHandler      *handlers.QuizHandler
	FlashcardHandler *handlers.FlashcardHandler
	PlannerHandler   *handlers.PlannerHandler
	ProgressHandler  *handlers.ProgressHandler
	AllowOrigins     []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	protected.PUT("/user/profile", cfg.UserHandler.SaveProfile)
	// Materials
	protected.POST("/materials", cfg.MaterialHandler.Upload)
	protected.GET("/materials", cfg.MaterialHandler.List)
	protected.PATCH("/materials/:id/name", cfg.MaterialHandler.Rename)
	protected.PATCH("/materials/:id/subject", cfg.MaterialHandler.Tag)
	protected.DELETE("/materials/:id", cfg.MaterialHandler.Delete)
	protected.GET("/materials/:id/download", cfg.MaterialHandler.Download)
	// Projects
	protected.POST("/projects/generate", cfg.ProjectHandler.Generate)
	protected.GET("/projects", cfg.ProjectHandler.List)
	protected.GET("/projects/:id", cfg.ProjectHandler.Get)
	protected.GET("/projects/:id/materials", cfg.ProjectHandler.Materials)
	protected.DELETE("/projects/:id", cfg.ProjectHandler.Delete)
	protected.GET("/projects/:id/summary", cfg.ProjectHandler.Summary)
	// Quiz sessions
	protected.POST("/projects/:id/quiz/start", cfg.QuizHandler.Start)
	protected.GET("/quiz/session", cfg.QuizHandler.State)
	protected.POST("/quiz/session/select", cfg.QuizHandler.Select)
	protected.POST("/quiz/session/submit", cfg.QuizHandler.Submit)
	protected.POST("/quiz/session/previous", cfg.QuizHandler.Previous)
	protected.POST("/quiz/session/restart", cfg.QuizHandler.Restart)
	protected.POST("/quiz/session/close", cfg.QuizHandler.Close)
	// Flashcard sessions
	protected.POST("/projects/:id/flashcards/start", cfg.FlashcardHandler.Start)
	protected.GET("/flashcards/session", cfg.FlashcardHandler.State)
	protected.POST("/flashcards/session/flip", cfg.FlashcardHandler.Flip)
	protected.POST("/flashcards/session/next", cfg.FlashcardHandler.Next)
	protected.POST("/flashcards/session/previous", cfg.FlashcardHandler.Previous)
	protected.POST("/flashcards/session/close", cfg.FlashcardHandler.Close)
	// Planner
	protected.GET("/planner/overview", cfg.PlannerHandler.Overview)
	protected.POST("/planner/events", cfg.PlannerHandler.CreateEvent)
	protected.GET("/planner/events", cfg.PlannerHandler.ListEvents)
	protected.PUT("/planner/events/:id", cfg.PlannerHandler.UpdateEvent)
	protected.DELETE("/planner/events/:id", cfg.PlannerHandler.DeleteEvent)
	protected.POST("/planner/todos", cfg.PlannerHandler.CreateTodo)
	protected.GET("/planner/todos", cfg.PlannerHandler.ListTodos)
	protected.PUT("/planner/todos/:id", cfg.PlannerHandler.UpdateTodo)
	protected.PATCH("/planner/todos/:id/completed", cfg.PlannerHandler.SetTodoCompleted)
	protected.DELETE("/planner/todos/:id", cfg.PlannerHandler.DeleteTodo)
	// Progress
	protected.POST("/progress", cfg.ProgressHandler.StartAttempt)
	protected.PATCH("/progress/:id", cfg.ProgressHandler.CompleteAttempt)
	protected.GET("/progress", cfg.ProgressHandler.ListAttempts)

	return router
}
