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

	"github.com/inkwellvn/blog-generator-services-backend/docs"
	"github.com/inkwellvn/blog-generator-services-backend/internal/config"
	"github.com/inkwellvn/blog-generator-services-backend/internal/database"
	"github.com/inkwellvn/blog-generator-services-backend/internal/database/repository"
	"github.com/inkwellvn/blog-generator-services-backend/internal/router"
	"github.com/inkwellvn/blog-generator-services-backend/internal/services"
	"github.com/inkwellvn/blog-generator-services-backend/internal/services/auth"
	"github.com/inkwellvn/blog-generator-services-backend/internal/services/llm"
	"github.com/inkwellvn/blog-generator-services-backend/internal/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// @title Blog Generator API
// @version 1.0
// @description Prompt-chaining blog generation backend
// @termsOfService http://swagger.io/terms/

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter `Bearer ` followed by your JWT token (e.g. "Bearer <token>")

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Set Swagger base path dynamically
	basePath := getEnv("BASE_PATH", "/")
	docs.SwaggerInfo.BasePath = basePath

	// Configure logging
	configureLogging()

	// Initialize Sentry
	utils.InitSentry()

	// Initialize database connection
	db, err := database.InitDB()
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize auth service
	authService := auth.NewAuthService(db)

	// Create admin user if not exists
	if err := authService.CreateAdminUser(); err != nil {
		logrus.Warnf("Failed to create admin user: %v", err)
	} else {
		logrus.Info("Admin user check completed")
	}

	// Initialize token cleanup service
	tokenCleanupService := auth.NewTokenCleanupService(db)
	tokenCleanupService.Start()
	defer tokenCleanupService.Stop()

	// Build the LLM client for the prompt chain
	llmConfig := config.GetLLMConfig()
	var llmClient llm.Client
	if llmConfig.APIKey == "" {
		logrus.Warn("OPEN_AI_API_KEY not set, using mock LLM client")
		llmClient = llm.MockClient{}
	} else {
		llmClient, err = llm.NewOpenAIClient(llmConfig)
		if err != nil {
			logrus.Fatalf("Failed to create LLM client: %v", err)
		}
		logrus.Infof("LLM client initialized (model: %s)", llmConfig.Model)
	}
	chainService := services.NewPromptChainService(llmClient)

	// Create SSE Hub (shared by the blog service and handlers)
	sseHub := services.NewSSEHub()

	// Initialize RabbitMQ service (optional, async generation only)
	rabbitMQService, err := services.NewRabbitMQService()
	if err != nil {
		logrus.Warnf("Failed to initialize RabbitMQ, async generation disabled: %v", err)
		rabbitMQService = nil
	} else {
		defer rabbitMQService.Close()
	}

	// Initialize blog service
	postRepo := repository.NewBlogPostRepository(db)
	blogService := services.NewBlogService(postRepo, chainService, sseHub, rabbitMQService)

	// Start async job consumer
	if rabbitMQService != nil {
		if err := blogService.StartConsumer(); err != nil {
			logrus.Warnf("Failed to start generation job consumer: %v", err)
		} else {
			logrus.Info("Generation job consumer started")
			defer blogService.StopConsumer()
		}
	}

	// Initialize router
	r := router.SetupRouter(db, authService, blogService, sseHub)

	// Configure HTTP server
	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Server starting on port %s", port)
		logrus.Infof("API Health Check: http://localhost:%s/api/v1/health", port)
		logrus.Infof("Swagger UI: http://localhost:%s/swagger/index.html", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown the server
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited properly")
}

func configureLogging() {
	logLevel := getEnv("LOG_LEVEL", "info")
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
