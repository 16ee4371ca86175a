package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rentspot/internal/config"
	"rentspot/internal/database"
	"rentspot/internal/middleware"
	"rentspot/internal/modules/admin"
	"rentspot/internal/modules/auth"
	"rentspot/internal/modules/profile"
	jwtsvc "rentspot/internal/pkg/jwt"
	"rentspot/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)

	signer := jwtsvc.New(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	var mailer auth.Mailer
	if cfg.SMTPHost != "" {
		mailer = auth.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)
	} else {
		log.Println("SMTP_HOST is empty, verification codes go to the log")
		mailer = auth.NewDevConsoleMailer(true)
	}

	authService := auth.NewService(userRepo, refreshRepo, signer, mailer, cfg.OTPTTL, cfg.MaxActiveSessions)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Secure:   cfg.CookieSecure,
		SameSite: cfg.SameSiteMode(),
		Path:     cfg.CookiePath,
	}, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	adminService := admin.NewService(userRepo)
	adminHandler := admin.NewHandler(adminService)

	profileService := profile.NewService(userRepo)
	profileHandler := profile.NewHandler(profileService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	api := r.Group("/api")
	{
		authHandler.RegisterPublicRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(signer))
		{
			authHandler.RegisterProtectedRoutes(protected)
			profileHandler.RegisterRoutes(protected)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.RequireAdmin())
			{
				adminHandler.RegisterRoutes(adminGroup)
			}
		}
	}

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
