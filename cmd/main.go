package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"diarisk/database"
	"diarisk/docs"
	"diarisk/internal/controllers"
	"diarisk/internal/genai"
	"diarisk/internal/ml"
	"diarisk/internal/repository"
	"diarisk/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Swagger Documentation
	docs.SwaggerInfo.Title = "Diabetes Risk Prediction API"
	docs.SwaggerInfo.Description = "Authenticated diabetes risk predictions with feature attributions and generated recommendations."
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	// Connect to database
	db, err := database.ConnectDatabase()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.MigrateDatabase(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Load the pre-trained model artifact once; read-only afterwards
	modelPath := os.Getenv("MODEL_PATH")
	if modelPath == "" {
		modelPath = "model/artifact.json"
	}
	artifact, err := ml.LoadArtifact(modelPath)
	if err != nil {
		log.Fatalf("Failed to load model artifact: %v", err)
	}
	engine, err := ml.NewEngine(artifact)
	if err != nil {
		log.Fatalf("Failed to build prediction engine: %v", err)
	}
	log.Printf("Loaded %s from %s", engine, modelPath)

	// Generative text client
	generator, err := genai.NewClient()
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	predictionRepo := repository.NewPredictionRepository(db)

	// Initialize controllers
	authController := controllers.NewAuthController(userRepo)
	chatController := controllers.NewChatController(generator)
	predictionController := controllers.NewPredictionController(predictionRepo, engine, generator)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.Use(cors.New(corsConfig()))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Diabetes Risk Prediction API - Please authenticate to use the services",
		})
	})

	routes.RegisterAuthRoutes(router, authController)
	routes.RegisterChatRoutes(router, chatController)
	routes.RegisterPredictionRoutes(router, predictionController)
	routes.RegisterSwaggerRoutes(router)

	router.GET("/debug/database", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"database_health": false,
				"error":           err.Error(),
			})
			return
		}

		var result int
		row := sqlDB.QueryRowContext(c.Request.Context(), "SELECT 1")
		err = row.Scan(&result)
		c.JSON(http.StatusOK, gin.H{
			"database_health": err == nil && result == 1,
		})
	})

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("API Documentation: http://localhost:%s/swagger/index.html", port)

	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func corsConfig() cors.Config {
	config := cors.DefaultConfig()
	config.AllowCredentials = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")

	origins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if origins == "" {
		config.AllowAllOrigins = true
		config.AllowCredentials = false
	} else {
		config.AllowOrigins = strings.Split(origins, ",")
	}
	return config
}
