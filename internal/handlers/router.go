package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/promptforge/prompt-service/internal/auth"
	"github.com/promptforge/prompt-service/internal/repositories"
	"github.com/promptforge/prompt-service/internal/services"
	"github.com/promptforge/prompt-service/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	promptHandler    *PromptHandler
	dashboardHandler *DashboardHandler
	authMiddleware   *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenManager,
	userRepo repositories.UserRepository,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Auth(), logger),
		promptHandler:    NewPromptHandler(serviceManager.Prompt(), serviceManager.Export(), logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Dashboard(), logger),
		authMiddleware:   NewJWTAuthMiddleware(tokens, userRepo),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			// Public endpoints
			authRoutes.POST("/register/", hm.authHandler.Register)
			authRoutes.POST("/login/", hm.authHandler.Login)
			authRoutes.POST("/logout/", hm.authHandler.Logout)
			authRoutes.POST("/token/refresh/", hm.authHandler.RefreshToken)
			authRoutes.POST("/google/", hm.authHandler.GoogleAuth)
			authRoutes.POST("/google/code/", hm.authHandler.GoogleAuthCode)

			// Profile - authenticated users only
			profile := authRoutes.Group("/profile")
			profile.Use(hm.authMiddleware.AuthMiddleware())
			{
				profile.GET("/", hm.authHandler.GetProfile)
				profile.PUT("/", hm.authHandler.UpdateProfile)
				profile.PATCH("/", hm.authHandler.UpdateProfile)
			}
		}

		// Prompt routes - authenticated users only
		prompts := api.Group("/prompts")
		prompts.Use(hm.authMiddleware.AuthMiddleware())
		{
			prompts.GET("/", hm.promptHandler.ListPrompts)
			prompts.POST("/", hm.promptHandler.CreatePrompt)
			prompts.POST("/execute/", hm.promptHandler.ExecutePrompt)
			prompts.GET("/dashboard-stats/", hm.dashboardHandler.GetDashboardStats)
			prompts.GET("/export/", hm.promptHandler.ExportPrompts)

			prompts.GET("/:id/", hm.promptHandler.GetPrompt)
			prompts.PUT("/:id/", hm.promptHandler.UpdatePrompt)
			prompts.PATCH("/:id/", hm.promptHandler.UpdatePrompt)
			prompts.DELETE("/:id/", hm.promptHandler.DeletePrompt)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "prompt-service",
		})
	})
}
