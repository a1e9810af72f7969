// Command seed-admin creates (or resets the password of) the initial
// administrator account. Run once after provisioning the database:
//
//	SEED_ADMIN_EMAIL=admin@orbitjatim.id SEED_ADMIN_PASSWORD=... go run ./cmd/seed-admin
package main

import (
	"log"
	"os"
	"time"

	"orbit-api/config"
	"orbit-api/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	config.InitDB()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	now := time.Now()
	var user models.User
	err = config.DB.Where("email = ?", email).First(&user).Error
	if err == nil {
		user.Password = string(hash)
		user.RoleID = models.RoleAdmin
		user.AccountStatus = models.AccountActive
		user.UpdateAt = &now
		if err := config.DB.Save(&user).Error; err != nil {
			log.Fatal("Failed to update admin account:", err)
		}
		log.Printf("Reset existing admin account %s (user_id=%d)", email, user.UserID)
		return
	}

	user = models.User{
		FullName:      "Administrator",
		Email:         email,
		Password:      string(hash),
		RoleID:        models.RoleAdmin,
		AccountStatus: models.AccountActive,
		CreateAt:      &now,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		log.Fatal("Failed to create admin account:", err)
	}
	log.Printf("Created admin account %s (user_id=%d)", email, user.UserID)
}
