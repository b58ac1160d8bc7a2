package routes

import (
	"diarisk/internal/controllers"
	"diarisk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterPredictionRoutes(router *gin.Engine, predictionController *controllers.PredictionController) {
	predictionRoutes := router.Group("/")
	predictionRoutes.Use(middleware.AuthMiddleware())
	{
		predictionRoutes.POST("/predict", predictionController.MakePrediction)
		predictionRoutes.GET("/predictions", predictionController.ListPredictions)
		predictionRoutes.GET("/predictions/:id", predictionController.GetPrediction)
	}
}
