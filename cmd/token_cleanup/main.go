package main

import (
	"log"
	"os"
	"time"

	"rentspot/internal/database"
	"rentspot/internal/domain"
)

// Sweeps rows whose expiry has already passed. Meant to run on an external
// schedule (cron); interactive request handling never prunes.
func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	now := time.Now().UTC()

	res1 := db.Where("expires_at < ?", now).Delete(&domain.RefreshToken{})
	if res1.Error != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", res1.Error)
	}

	res2 := db.Table("users").
		Where("otp_expires_at < ?", now).
		Updates(map[string]any{"otp": nil, "otp_expires_at": nil})
	if res2.Error != nil {
		log.Fatalf("cleanup expired otp codes failed: %v", res2.Error)
	}

	log.Printf("cleanup completed: refresh_tokens=%d expired_otps=%d", res1.RowsAffected, res2.RowsAffected)
}
