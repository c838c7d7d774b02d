package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/astrahealth/astra/internal/api"
	"github.com/astrahealth/astra/internal/db"
	"github.com/astrahealth/astra/internal/services"
	"github.com/astrahealth/astra/internal/verification"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const sweeperInterval = time.Minute

func main() {
	port := getEnv("PORT", "8080")
	dbPath := getEnv("DB_PATH", filepath.Join("data", "astra.db"))
	secretKey := getEnv("JWT_SECRET", "change_me_in_production")
	verifierURL := getEnv("VERIFIER_URL", "http://localhost:3001/verify")
	verifierScope := getEnv("VERIFIER_SCOPE", "astra-health")

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	repos := db.NewRepositories(database)
	verifier := verification.NewClient(verifierURL, verifierScope)

	migration := services.NewMigrationService(repos.MigrationCodes, repos.Users)
	handler := api.NewHandler(api.HandlerDeps{
		Repos:     repos,
		SecretKey: []byte(secretKey),
		Auth:      services.NewAuthService(repos.Users),
		Users:     services.NewUserService(repos.Users, repos.HealthData, repos.Notifications, verifier),
		CheckIns:  services.NewCheckInService(repos.CheckIns, repos.Users),
		Migration: migration,
		Invites:   services.NewResearchInviteService(repos.ResearchInvites),
		DataUnion: services.NewDataUnionService(repos.DataUnions),
		Feedback:  services.NewFeedbackService(repos.Feedback),
		Docs:      services.NewDocService(repos.Docs),
	})

	app := fiber.New(fiber.Config{
		AppName:               "Astra",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	go migration.RunSweeper(lifecycleCtx, sweeperInterval)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Astra listening on http://0.0.0.0:%s (db: %s)", port, dbPath)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
