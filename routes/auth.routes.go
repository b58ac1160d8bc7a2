package routes

import (
	"diarisk/internal/controllers"
	"diarisk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(router *gin.Engine, authController *controllers.AuthController) {
	router.POST("/register", authController.Register)
	router.POST("/token", authController.Token)

	authRoutes := router.Group("/")
	authRoutes.Use(middleware.AuthMiddleware())
	{
		authRoutes.GET("/me", authController.Me)
	}
}
