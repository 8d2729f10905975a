package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kanishka132/StudyBuddy-AI/internal/content"
	"github.com/kanishka132/StudyBuddy-AI/internal/db"
	"github.com/kanishka132/StudyBuddy-AI/internal/handlers"
	"github.com/kanishka132/StudyBuddy-AI/internal/logger"
	"github.com/kanishka132/StudyBuddy-AI/internal/middleware"
	"github.com/kanishka132/StudyBuddy-AI/internal/repos"
	"github.com/kanishka132/StudyBuddy-AI/internal/server"
	"github.com/kanishka132/StudyBuddy-AI/internal/services"
	"github.com/kanishka132/StudyBuddy-AI/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	userProfileRepo := repos.NewUserProfileRepo(thePG, log)
	materialRepo := repos.NewMaterialRepo(thePG, log)
	projectRepo := repos.NewProjectRepo(thePG, log)
	quizRepo := repos.NewQuizRepo(thePG, log)
	quizAttemptRepo := repos.NewQuizAttemptRepo(thePG, log)
	calendarEventRepo := repos.NewCalendarEventRepo(thePG, log)
	todoRepo := repos.NewTodoRepo(thePG, log)

	// Subject taxonomy
	taxonomy := content.NewSubjectTaxonomy()
	if path := os.Getenv("SUBJECT_TAXONOMY_PATH"); path != "" {
		loaded, err := content.LoadSubjectTaxonomy(path)
		if err != nil {
			log.Warn("Could not load subject taxonomy, using defaults", "path", path, "error", err)
		} else {
			taxonomy = loaded
		}
	}

	// Services
	log.Info("Setting up Services from main...")
	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Error("Could not init BucketService", "error", err)
		os.Exit(1)
	}
	var blobCache services.BlobCache
	if os.Getenv("REDIS_ADDR") != "" {
		blobCache, err = services.NewRedisBlobCache(log)
		if err != nil {
			log.Warn("Could not init Redis blob cache, falling back to memory", "error", err)
			blobCache = services.NewMemoryBlobCache(utils.GetEnvAsInt("BLOB_CACHE_CAPACITY", 64, log))
		}
	} else {
		blobCache = services.NewMemoryBlobCache(utils.GetEnvAsInt("BLOB_CACHE_CAPACITY", 64, log))
	}
	generationClient, err := services.NewGenerationClient(log)
	if err != nil {
		log.Error("Could not init GenerationClient", "error", err)
		os.Exit(1)
	}
	avatarService, err := services.NewAvatarService(log, bucketService)
	if err != nil {
		log.Error("Could not init AvatarService", "error", err)
		os.Exit(1)
	}
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, avatarService, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(thePG, log, userRepo, userProfileRepo)
	materialService := services.NewMaterialService(thePG, log, materialRepo, bucketService, blobCache, taxonomy)
	projectService := services.NewProjectService(thePG, log, projectRepo, quizRepo, materialRepo, generationClient)
	quizSessionService := services.NewQuizSessionService(log, projectService)
	flashcardSessionService := services.NewFlashcardSessionService(log, projectService)
	plannerService := services.NewPlannerService(thePG, log, calendarEventRepo, todoRepo)
	progressService := services.NewProgressService(thePG, log, quizAttemptRepo)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	materialHandler := handlers.NewMaterialHandler(materialService)
	projectHandler := handlers.NewProjectHandler(projectService)
	quizHandler := handlers.NewQuizHandler(quizSessionService)
	flashcardHandler := handlers.NewFlashcardHandler(flashcardSessionService)
	plannerHandler := handlers.NewPlannerHandler(plannerService)
	progressHandler := handlers.NewProgressHandler(progressService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	var allowOrigins []string
	if raw := os.Getenv("CORS_ALLOW_ORIGINS"); raw != "" {
		allowOrigins = strings.Split(raw, ",")
	}
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:      authHandler,
		AuthMiddleware:   authMiddleware,
		UserHandler:      userHandler,
		MaterialHandler:  materialHandler,
		ProjectHandler:   projectHandler,
		QuizHandler:      quizHandler,
		FlashcardHandler: flashcardHandler,
		PlannerHandler:   plannerHandler,
		ProgressHandler:  progressHandler,
		AllowOrigins:     allowOrigins,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
