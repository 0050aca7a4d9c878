package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"resetd/internal/handlers"
)

func SetupRoutes(
	r *gin.Engine,
	userHandler *handlers.UserHandler,
	resetHandler *handlers.PasswordResetHandler,
	frontendHandler *handlers.FrontendHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {
	// ---- frontend
	r.GET("/", frontendHandler.Index)
	r.GET("/password-reset/:token", resetHandler.ResetPage)
	r.NoRoute(frontendHandler.Static)

	// ---- ops
	r.GET("/healthz", healthHandler.Healthz)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ---- api
	api := r.Group("/api")
	{
		api.POST("/request-reset", resetHandler.RequestReset)
		api.GET("/check-user/:email", userHandler.CheckUser)
		api.PUT("/update-password/:token", resetHandler.UpdatePassword)
		api.GET("/all-users", userHandler.ListUsers)
		api.POST("/add-user", userHandler.AddUser)
	}

	return r
}
