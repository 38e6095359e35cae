package main

import (
	"fmt"
	"log"
	"strings"

	"socialnet/backend/internal/config"
	"socialnet/backend/internal/database"
	"socialnet/backend/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"
)

const demoUserCount = 20

// Seeds the admin account and a small set of demo users with posts and
// friendships. Safe to run repeatedly: the admin is upserted by email and demo
// data is only created when the users table is otherwise empty.
func main() {
	config.LoadConfig()
	database.Connect(config.AppConfig.DatabaseURL)

	if err := seedAdmin(); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	var userCount int64
	database.DB.Model(&models.User{}).Where("role = ?", models.RoleUser).Count(&userCount)
	if userCount > 0 {
		log.Println("Demo data already present, skipping")
		return
	}

	if err := seedDemoData(); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Println("Seeding complete")
}

func seedAdmin() error {
	if config.AppConfig.AdminPassword == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(config.AppConfig.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var admin models.User
	err = database.DB.Where("email = ?", config.AppConfig.AdminEmail).First(&admin).Error
	if err == nil {
		return database.DB.Model(&admin).Updates(map[string]interface{}{
			"role":          models.RoleAdmin,
			"password_hash": string(hash),
		}).Error
	}

	admin = models.User{
		FullName:     "Administrator",
		Email:        config.AppConfig.AdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	return database.DB.Create(&admin).Error
}

func seedDemoData() error {
	users := make([]models.User, 0, demoUserCount)
	for i := 0; i < demoUserCount; i++ {
		name := gofakeit.Name()
		email := fmt.Sprintf("%s%s@example.com",
			strings.ToLower(strings.ReplaceAll(name, " ", ".")),
			gofakeit.Numerify("###"))

		hash, err := bcrypt.GenerateFromPassword([]byte(gofakeit.Password(true, true, true, false, false, 12)), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := models.User{
			FullName:     name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         models.RoleUser,
			Bio:          gofakeit.Sentence(8),
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return err
		}
		users = append(users, user)
	}

	for _, user := range users {
		for i := 0; i < gofakeit.Number(1, 4); i++ {
			post := models.Post{
				UserID:  user.ID,
				Content: gofakeit.Paragraph(1, 2, 10, " "),
			}
			if err := database.DB.Create(&post).Error; err != nil {
				return err
			}
		}
	}

	// A handful of accepted friendships between neighbouring demo users.
	for i := 0; i+1 < len(users); i += 2 {
		friendship := models.Friendship{
			User1ID: users[i].ID,
			User2ID: users[i+1].ID,
			Status:  models.StatusAccepted,
		}
		if err := database.DB.Create(&friendship).Error; err != nil {
			return err
		}
	}

	return nil
}
