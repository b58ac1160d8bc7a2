package main

import (
	"flag"
	"log"

	"diarisk/database"
	"diarisk/internal/models"
	"diarisk/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	// Load .env file from project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found: %v", err)
		}
	}
}

func main() {
	username := flag.String("username", "demo", "Username for the seeded account")
	email := flag.String("email", "demo@example.com", "Email for the seeded account")
	password := flag.String("password", "demo1234", "Password for the seeded account")
	flag.Parse()

	db, err := database.ConnectDatabase()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.MigrateDatabase(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)

	exists, err := userRepo.UsernameExists(*username)
	if err != nil {
		log.Fatalf("Failed to check username: %v", err)
	}
	if exists {
		log.Printf("User %q already exists, nothing to do", *username)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Username:       *username,
		Email:          *email,
		HashedPassword: string(hash),
		IsActive:       true,
	}
	if err := userRepo.CreateUser(user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	log.Printf("Seeded user %q (id=%d)", user.Username, user.ID)
}
