package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	httpapi "smartasset-backend/internal/api/http"
	"smartasset-backend/internal/api/ws"
	"smartasset-backend/internal/config"
	"smartasset-backend/internal/identity"
	"smartasset-backend/internal/jobs"
	"smartasset-backend/internal/logger"
	"smartasset-backend/internal/metrics"
	"smartasset-backend/internal/repository/firestore"
	"smartasset-backend/internal/scheduler"
	"smartasset-backend/internal/security"
	"smartasset-backend/internal/service"
	"smartasset-backend/internal/track"
	"smartasset-backend/internal/watch"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting SmartAsset Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Firebase configuration", "project_id", cfg.Firebase.ProjectID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	identityProvider, err := identity.NewFirebaseProvider(ctx, app)
	if err != nil {
		logger.Error("Failed to initialize Firebase Auth", "error", err)
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	// Initialize Repositories
	store := firestore.NewStore(fsClient)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	authSvc := service.NewAuthService(
		identityProvider,
		store.Sessions,
		tokenManager,
		cfg.Auth.AdminEmail,
		cfg.Auth.BaseUser,
		cfg.Auth.EmailDomain,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)
	liveWindow := time.Duration(cfg.Presence.LiveWindowSeconds) * time.Second
	fence := track.Geofence{
		CenterLat:    cfg.Geofence.CenterLat,
		CenterLng:    cfg.Geofence.CenterLng,
		RadiusMeters: cfg.Geofence.RadiusMeters,
	}
	assetSvc := service.NewAssetService(store.Assets, store.Devices, store.History, liveWindow, nil)
	borrowSvc := service.NewBorrowService(store.Requests, store.Assets, store.History, emailSvc, cfg.Auth.AdminEmail)
	historySvc := service.NewHistoryService(store.History, store.Requests)
	presenceSvc := service.NewPresenceService(store.Devices, liveWindow, fence, nil)

	// Initialize Metrics and WebSocket Hub
	m := metrics.New()
	hub := ws.NewHub(m.WSClients())
	go hub.Run(ctx)

	// Start Firestore snapshot watchers feeding the hub
	watcher := watch.NewManager(fsClient, hub)
	watcher.WatchAll(ctx)
	defer watcher.Stop()

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(store, &jobs.Services{
		Email:    emailSvc,
		Presence: presenceSvc,
		Borrow:   borrowSvc,
	}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:     authSvc,
		Assets:   assetSvc,
		History:  historySvc,
		Borrow:   borrowSvc,
		Presence: presenceSvc,
		Tokens:   tokenManager,
		Hub:      hub,
		Metrics:  m,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // websocket connections stay open
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
