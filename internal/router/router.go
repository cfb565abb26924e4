package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/qubitgyan/qubitgyan-backend/internal/config"
	"github.com/qubitgyan/qubitgyan-backend/internal/handler"
	"github.com/qubitgyan/qubitgyan-backend/internal/middleware"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/qubitgyan/qubitgyan-backend/internal/repository"
	"github.com/qubitgyan/qubitgyan-backend/internal/response"
	"github.com/qubitgyan/qubitgyan-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Node      *handler.NodeHandler
	Resource  *handler.ResourceHandler
	Quiz      *handler.QuizHandler
	Student   *handler.StudentHandler
	Admission *handler.AdmissionHandler
	User      *handler.UserHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	users *repository.UserRepository,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for the public admission funnel (5 requests per minute per IP).
	admissionLimiter := middleware.NewRateLimiter(5, time.Minute)

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		// Knowledge tree changes rarely; let clients and proxies hold it.
		publicAPI.GET("/nodes", middleware.CacheControl(300), handlers.Node.GetPublicTree)
		publicAPI.GET("/contexts", middleware.CacheControl(300), handlers.Resource.ListContexts)
		publicAPI.POST("/admissions", admissionLimiter.Middleware(), handlers.Admission.Submit)
	}

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Student Group (JWT) ────────────────────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(middleware.RequireJWT(authService))
	{
		studentAPI.GET("/nodes/:id/resources", handlers.Node.GetNodeResources)
		studentAPI.GET("/resources/:id", handlers.Resource.GetResource)
		studentAPI.POST("/resources/:id/progress", handlers.Student.TouchProgress)

		studentAPI.GET("/quizzes/:quiz_id", handlers.Student.GetQuiz)
		studentAPI.POST("/quizzes/:quiz_id/attempts", handlers.Student.SubmitAttempt)
		studentAPI.GET("/attempts", handlers.Student.GetMyAttempts)
		studentAPI.GET("/progress", handlers.Student.GetMyProgress)
	}

	// ─── 3. Manager Group (Staff JWT + Capabilities) ───────────────────
	managerAPI := router.Group("/api/v1/manager")
	managerAPI.Use(
		middleware.RequireStaffJWT(authService),
		middleware.ResolveCapabilities(users),
	)
	{
		// Content management
		content := middleware.RequireCapability(model.CapabilityManageContent)

		managerAPI.GET("/nodes", content, handlers.Node.GetFullTree)
		managerAPI.POST("/nodes", content, handlers.Node.CreateNode)
		managerAPI.PATCH("/nodes/:id", content, handlers.Node.UpdateNode)
		managerAPI.DELETE("/nodes/:id", content, handlers.Node.DeleteNode)

		managerAPI.POST("/resources", content, handlers.Resource.CreateResource)
		managerAPI.PATCH("/resources/:id", content, handlers.Resource.UpdateResource)
		managerAPI.DELETE("/resources/:id", content, handlers.Resource.DeleteResource)

		managerAPI.POST("/contexts", content, handlers.Resource.CreateContext)
		managerAPI.PUT("/contexts/:id", content, handlers.Resource.UpdateContext)
		managerAPI.DELETE("/contexts/:id", content, handlers.Resource.DeleteContext)

		managerAPI.POST("/quizzes", content, handlers.Quiz.CreateQuiz)
		managerAPI.GET("/quizzes/:quiz_id", content, handlers.Quiz.GetQuiz)
		managerAPI.PUT("/quizzes/:quiz_id/questions", content, handlers.Quiz.ReplaceQuestions)
		managerAPI.POST("/quizzes/:quiz_id/refresh-cache", content, handlers.Quiz.RefreshCache)

		// User management
		usersCap := middleware.RequireCapability(model.CapabilityManageUsers)

		managerAPI.GET("/users", usersCap, handlers.User.List)
		managerAPI.POST("/users", usersCap, handlers.User.Create)
		managerAPI.PATCH("/users/:id", usersCap, handlers.User.Update)
		managerAPI.PUT("/users/:id/capabilities", usersCap, handlers.User.UpdateCapabilities)
		managerAPI.DELETE("/users/:id", usersCap, handlers.User.Delete)

		managerAPI.GET("/admissions", usersCap, handlers.Admission.List)
		managerAPI.PATCH("/admissions/:id", usersCap, handlers.Admission.Review)
	}

	return router
}
