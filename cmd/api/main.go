package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/velora-hq/careers/internal/config"
	"github.com/velora-hq/careers/internal/handlers"
	"github.com/velora-hq/careers/internal/mailer"
	"github.com/velora-hq/careers/internal/store"
	"github.com/velora-hq/careers/internal/upload"
	"github.com/velora-hq/careers/pkg/logging"
)

func main() {
	// .env is optional; the process environment wins either way.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	defer logger.Sync()

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		logger.Warn("admin credentials not configured, admin login is disabled")
	}

	for _, dir := range []string{cfg.DataDir, cfg.UploadDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("could not create directory", "dir", dir, "err", err)
			os.Exit(1)
		}
	}

	jobs := store.NewJobStore(cfg.DataDir, logger)
	applications := store.NewApplicationStore(cfg.DataDir, cfg.UploadDir, logger)
	resumes := upload.NewSaver(cfg.UploadDir, logger)

	mailLog := mailer.NewLog(filepath.Join(cfg.DataDir, "email-log.jsonl"), logger)
	mail := mailer.New(cfg.Mail, mailLog, logger)
	if !mail.Configured() {
		logger.Warn("mail service not configured, notifications will only be logged")
	}

	gin.SetMode(gin.ReleaseMode)
	router := handlers.NewRouter(handlers.Deps{
		Config:       cfg,
		Jobs:         jobs,
		Applications: applications,
		Resumes:      resumes,
		Mailer:       mail,
		Log:          logger,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown incomplete", "err", err)
	}
}
