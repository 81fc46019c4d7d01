package api

import (
	"net/http"

	"edukit/lesson-planner/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	plannerService service.PlannerService,
) {
	authHandler := NewAuthHandler(authService)
	planHandler := NewPlanHandler(plannerService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr})
		})

		planGroup := protected.Group("/plans")
		{
			// POST /api/v1/plans/generate - run one generation, returns the docx
			planGroup.POST("/generate", planHandler.GeneratePlan)
			// GET /api/v1/plans - archived plans for the caller
			planGroup.GET("", planHandler.ListPlans)
			// GET /api/v1/plans/{id}/download - presigned URL for an archived copy
			planGroup.GET("/:id/download", planHandler.GetDownloadURL)
			// DELETE /api/v1/plans/{id}
			planGroup.DELETE("/:id", planHandler.DeletePlan)
		}
	}
}
