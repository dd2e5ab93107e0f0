package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/advanced-insight/advisory-backoffice/internal/adapter/handler"
	"github.com/advanced-insight/advisory-backoffice/internal/adapter/repository"
	"github.com/advanced-insight/advisory-backoffice/internal/infrastructure/cache"
	"github.com/advanced-insight/advisory-backoffice/internal/infrastructure/database"
	"github.com/advanced-insight/advisory-backoffice/internal/infrastructure/storage"
	"github.com/advanced-insight/advisory-backoffice/internal/usecase/auth"
	"github.com/advanced-insight/advisory-backoffice/internal/usecase/clientsvc"
	"github.com/advanced-insight/advisory-backoffice/internal/usecase/insight"
	"github.com/advanced-insight/advisory-backoffice/internal/usecase/meetingsvc"
	"github.com/advanced-insight/advisory-backoffice/internal/usecase/pipeline"
	"github.com/advanced-insight/advisory-backoffice/internal/usecase/settingssvc"
	pkgai "github.com/advanced-insight/advisory-backoffice/pkg/ai"
	"github.com/advanced-insight/advisory-backoffice/pkg/config"
	"github.com/advanced-insight/advisory-backoffice/pkg/jwt"
	"github.com/advanced-insight/advisory-backoffice/pkg/logger"
	pkgvalidator "github.com/advanced-insight/advisory-backoffice/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Apply migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate in CI/CD.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	userSettingRepo := repository.NewUserSettingRepository(db)
	clientRepo := repository.NewClientRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	transcriptRepo := repository.NewTranscriptRepository(db)

	// Initialize audio storage
	log.Println("📼 Initializing audio storage...")
	var audioStore storage.AudioStore
	switch cfg.Storage.Type {
	case "minio":
		audioStore, err = storage.NewMinIOStore(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO storage: %v", err)
		}
	default:
		audioStore, err = storage.NewLocalStore(cfg.Storage.LocalDir)
		if err != nil {
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
	}

	// Initialize AI provider clients
	log.Println("🤖 Initializing AI components...")
	asmClient := pkgai.NewAssemblyAIClient(&cfg.AssemblyAI)
	openaiClient := pkgai.NewOpenAIClient(&cfg.OpenAI)

	// Initialize pipeline service and watchdog
	pipelineService := pipeline.NewService(meetingRepo, audioStore, asmClient, openaiClient, redisClient, &cfg.Pipeline, zapLogger)
	pipelineService.StartWatchdog()
	defer pipelineService.StopWatchdog()

	// Initialize insight service
	insightService := insight.NewService(transcriptRepo, openaiClient, &cfg.Pipeline, zapLogger)

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize services
	authService := auth.NewService(userRepo, jwtManager, zapLogger)
	clientService := clientsvc.NewService(clientRepo, zapLogger)
	meetingService := meetingsvc.NewService(meetingRepo, transcriptRepo, clientRepo, audioStore, pipelineService, &cfg.Upload, zapLogger)
	settingsService := settingssvc.NewService(userRepo, userSettingRepo, zapLogger)

	// Initialize handlers
	authHandler := handler.NewAuth(authService, zapLogger)
	clientHandler := handler.NewClient(clientService, zapLogger)
	meetingHandler := handler.NewMeeting(meetingService, zapLogger)
	settingsHandler := handler.NewSettings(settingsService, zapLogger)
	transcriptHandler := handler.NewTranscript(transcriptRepo, meetingRepo, clientRepo, insightService, zapLogger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, jwtManager, redisClient, authHandler, clientHandler, meetingHandler, settingsHandler, transcriptHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	// Let in-flight pipeline runs record their outcome before exit.
	pipelineService.Wait()

	log.Println("✅ Server stopped gracefully")
}
