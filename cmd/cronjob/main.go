package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"smartasset-backend/internal/config"
	"smartasset-backend/internal/jobs"
	"smartasset-backend/internal/logger"
	"smartasset-backend/internal/repository/firestore"
	"smartasset-backend/internal/scheduler"
	"smartasset-backend/internal/service"
	"smartasset-backend/internal/track"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'sweep-presence', 'mark-overdue-loans', 'all')")
	flag.Parse()

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting SmartAsset Cronjob Runner...", "log_level", cfg.Log.Level)

	ctx := context.Background()

	// Initialize Firebase
	var opts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		logger.Error("Failed to initialize Firebase app", "error", err)
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}
	fsClient, err := app.Firestore(ctx)
	if err != nil {
		logger.Error("Failed to connect to Firestore", "error", err)
		log.Fatalf("Failed to connect to Firestore: %v", err)
	}
	defer fsClient.Close()
	logger.Info("Firestore connection established")

	// Initialize Repositories
	store := firestore.NewStore(fsClient)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	liveWindow := time.Duration(cfg.Presence.LiveWindowSeconds) * time.Second
	fence := track.Geofence{
		CenterLat:    cfg.Geofence.CenterLat,
		CenterLng:    cfg.Geofence.CenterLng,
		RadiusMeters: cfg.Geofence.RadiusMeters,
	}
	presenceSvc := service.NewPresenceService(store.Devices, liveWindow, fence, nil)
	borrowSvc := service.NewBorrowService(store.Requests, store.Assets, store.History, emailSvc, cfg.Auth.AdminEmail)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store, &jobs.Services{
		Email:    emailSvc,
		Presence: presenceSvc,
		Borrow:   borrowSvc,
	}, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "sweep-presence":
		jobRunner.SweepDevicePresence()
	case "mark-overdue-loans":
		jobRunner.MarkOverdueLoans()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - sweep-presence\n")
		fmt.Printf("  - mark-overdue-loans\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
