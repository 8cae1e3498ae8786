package main

import (
	"log"
	"os"

	database "github.com/ImpulsoLocal2024/impulso-local-back/src/db"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/models"
	"golang.org/x/crypto/bcrypt"
)

// Creates the initial admin user when the database is empty. Run once after
// provisioning: DB_DSN=... ADMIN_USER=... ADMIN_PASSWORD=... go run ./utils/user
func main() {
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&models.UserModel{}); err != nil {
		log.Fatalf("failed to migrate user model: %v", err)
	}

	username := os.Getenv("ADMIN_USER")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD must be set")
	}

	var user models.UserModel
	if err := db.Where("username = ?", username).First(&user).Error; err == nil {
		log.Printf("User %q already exists", username)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	newUser := models.UserModel{
		Username: username,
		Password: string(hashedPassword),
	}
	if err := db.Create(&newUser).Error; err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	log.Printf("User %q created", username)
}
