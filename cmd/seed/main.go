package main

import (
	"errors"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/config"
	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/internal/app/repository"
	"github.com/hartondavid/delivery-backend/internal/db"
	"github.com/hartondavid/delivery-backend/pkg/util"
)

// Bootstraps the rights table and an initial admin account so a fresh
// deployment has someone who can log in and create couriers.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	database, err := db.Connect(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	if err := db.SeedRights(database); err != nil {
		log.Fatal("Failed to seed rights:", err)
	}

	email := getenv("ADMIN_EMAIL", "admin@example.com")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}

	userRepo := repository.NewUserRepository(database)
	rightRepo := repository.NewRightRepository(database)

	if _, err := userRepo.FindByEmail(email); err == nil {
		log.Printf("Admin %s already exists, nothing to do", email)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal("Failed to look up admin:", err)
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := &model.User{
		Name:         getenv("ADMIN_NAME", "Administrator"),
		Email:        email,
		Phone:        getenv("ADMIN_PHONE", "0700000000"),
		PasswordHash: hash,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	adminRight, err := rightRepo.FindByCode(model.RightAdmin)
	if err != nil {
		log.Fatal("Admin right missing from rights table:", err)
	}
	if err := rightRepo.Grant(admin.ID, adminRight.ID); err != nil {
		log.Fatal("Failed to grant admin right:", err)
	}

	log.Printf("Admin %s created with id %d", email, admin.ID)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
