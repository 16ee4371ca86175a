package main

import (
	"log"
	"os"
	"time"

	"rentspot/internal/database"
	"rentspot/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = "rentspot.db"
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.RefreshToken{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		FirstName:    "Anna",
		Surname:      "Nowak",
		Email:        "admin@rentspot.local",
		PasswordHash: string(adminHash),
		IsAdmin:      true,
		IsVerified:   true,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@rentspot.local / admin123")

	userHash, _ := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
	verified := domain.User{
		FirstName:    "Jan",
		Surname:      "Kowalski",
		Email:        "jan@rentspot.local",
		PasswordHash: string(userHash),
		IsVerified:   true,
	}
	db.Create(&verified)
	log.Println("Verified user created: jan@rentspot.local / user123")

	otpExpiry := time.Now().Add(10 * time.Minute)
	pending := domain.User{
		FirstName:    "Piotr",
		Surname:      "Wisniewski",
		Email:        "piotr@rentspot.local",
		PasswordHash: string(userHash),
		OTP:          "123456",
		OTPExpiresAt: &otpExpiry,
	}
	db.Create(&pending)
	log.Println("Unverified user created: piotr@rentspot.local / user123 (code 123456)")

	log.Println("Seed completed")
}
