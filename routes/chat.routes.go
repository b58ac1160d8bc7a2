package routes

import (
	"diarisk/internal/controllers"
	"diarisk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterChatRoutes(router *gin.Engine, chatController *controllers.ChatController) {
	chatRoutes := router.Group("/")
	chatRoutes.Use(middleware.AuthMiddleware())
	{
		chatRoutes.POST("/chat", chatController.Chat)
	}
}
