package router

import (
	"os"
	"time"

	"github.com/inkwellvn/blog-generator-services-backend/internal/handlers"
	"github.com/inkwellvn/blog-generator-services-backend/internal/middleware"
	"github.com/inkwellvn/blog-generator-services-backend/internal/services"
	"github.com/inkwellvn/blog-generator-services-backend/internal/services/auth"
	"github.com/inkwellvn/blog-generator-services-backend/internal/services/excel"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin router with blog generation and auth routes
func SetupRouter(db *gorm.DB, authService *auth.AuthService, blogService *services.BlogService, sseHub *services.SSEHub) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Create a new router
	r := gin.New()

	// Use middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Create middleware with services
	bearerTokenMiddleware := middleware.NewBearerTokenMiddleware(authService, db)

	// Create excel export service
	exportsDir := os.Getenv("EXPORTS_DIR")
	if exportsDir == "" {
		exportsDir = "./exports"
	}
	excelService := excel.NewExcelService(exportsDir)

	// Create handlers with services
	authHandler := handlers.NewAuthHandler(authService)
	blogHandler := handlers.NewBlogHandler(blogService, excelService, sseHub)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logrus.Info("Swagger UI endpoint registered at /swagger/index.html")

	// Frontend page
	r.StaticFile("/", "./web/index.html")
	r.StaticFile("/index.html", "./web/index.html")

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		// Auth routes (public)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh", authHandler.RefreshToken)
		}

		// Blog generation routes (public, user attributed when a token is sent)
		blog := api.Group("/blog")
		blog.Use(bearerTokenMiddleware.OptionalBearerTokenMiddleware())
		{
			blog.POST("/generate", blogHandler.GenerateBlog)
			blog.GET("/generate/stream", blogHandler.GenerateBlogStream)
			blog.POST("/generate/async", blogHandler.EnqueueBlog)
			blog.GET("/posts/:id", blogHandler.GetBlogPost)
			blog.GET("/posts/:id/stream", blogHandler.StreamBlogPost)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(bearerTokenMiddleware.BearerTokenAuthMiddleware())
		{
			// Auth protected routes
			authProtected := protected.Group("/auth")
			{
				authProtected.POST("/register", authHandler.Register)
				authProtected.POST("/logout", authHandler.Logout)
				authProtected.GET("/profile", authHandler.GetProfile)
				authProtected.POST("/change-password", authHandler.ChangePassword)
			}

			// Blog history routes
			blogProtected := protected.Group("/blog")
			{
				blogProtected.GET("/posts", blogHandler.ListBlogPosts)
				blogProtected.GET("/posts/export", blogHandler.ExportBlogPosts)
				blogProtected.DELETE("/posts/:id", blogHandler.DeleteBlogPost)
			}
		}
	}

	return r
}
