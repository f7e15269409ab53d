package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gridironlabs/gridiron-system/config"
	"github.com/gridironlabs/gridiron-system/db"
	"github.com/gridironlabs/gridiron-system/handlers"
	"github.com/gridironlabs/gridiron-system/live"
	"github.com/gridironlabs/gridiron-system/middleware"
	"github.com/gridironlabs/gridiron-system/oddsapi"
	"github.com/gridironlabs/gridiron-system/repositories"
	"github.com/gridironlabs/gridiron-system/routes"
	"github.com/gridironlabs/gridiron-system/services"
	"github.com/gridironlabs/gridiron-system/sportsdata"
	"github.com/gridironlabs/gridiron-system/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	database, err := db.Connect(cfg.DatabaseURL, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.HasR2() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to configure object storage: %w", err)
		}
		logger.Info("object storage configured", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Warn("object storage not configured, image uploads disabled")
	}

	var oddsFeed *oddsapi.Client
	if cfg.OddsAPIKey != "" {
		oddsFeed = oddsapi.NewClient(cfg.OddsAPIKey, logger)
	} else {
		logger.Warn("ODDS_API_KEY not set, odds syncing disabled")
	}

	var rosterFeed *sportsdata.Client
	if cfg.SportsDataAPIKey != "" {
		rosterFeed = sportsdata.NewClient(cfg.SportsDataAPIKey)
	} else {
		logger.Warn("SPORTSDATA_API_KEY not set, roster syncing disabled")
	}

	hub := live.NewHub(logger)
	go hub.Run()

	userRepo := repositories.NewPostgresUserRepository(database)
	teamRepo := repositories.NewPostgresTeamRepository(database)
	playerRepo := repositories.NewPostgresPlayerRepository(database)
	rosterRepo := repositories.NewPostgresRosterRepository(database)
	gameRepo := repositories.NewPostgresGameRepository(database)
	bookmakerRepo := repositories.NewPostgresBookmakerRepository(database)
	oddsRepo := repositories.NewPostgresGameOddsRepository(database)
	historyRepo := repositories.NewPostgresOddsHistoryRepository(database)
	propRepo := repositories.NewPostgresPropRepository(database)
	injuryRepo := repositories.NewPostgresInjuryRepository(database)

	authService := services.NewAuthService(userRepo, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	playerService := services.NewPlayerService(playerRepo, uploader)
	teamService := services.NewTeamService(teamRepo, playerRepo, uploader)
	rosterService := services.NewRosterService(rosterRepo, playerRepo)
	oddsService := services.NewOddsService(database, oddsFeed, gameRepo, bookmakerRepo, oddsRepo, historyRepo, hub, logger)
	propService := services.NewPropService(oddsFeed, propRepo, gameRepo, playerRepo, bookmakerRepo, logger)
	injuryService := services.NewInjuryService(injuryRepo, playerRepo, rosterFeed, logger)
	contentService := services.NewContentService()

	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey)

	router := routes.SetupRoutes(routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Player:    handlers.NewPlayerHandler(playerService, rosterService, propService),
		Team:      handlers.NewTeamHandler(teamService, rosterService),
		Odds:      handlers.NewOddsHandler(oddsService, propService),
		Injury:    handlers.NewInjuryHandler(injuryService),
		Content:   handlers.NewContentHandler(contentService),
		WebSocket: handlers.NewWebSocketHandler(hub, oddsService, logger),
	}, authenticator)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if oddsFeed != nil {
		go pollOdds(ctx, oddsService, cfg.OddsPollInterval, logger)
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.Int("port", cfg.ServerPort))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

// pollOdds refreshes the odds board on a fixed interval until the
// context is cancelled. The first sync runs immediately.
func pollOdds(ctx context.Context, oddsService services.OddsService, interval time.Duration, logger *slog.Logger) {
	sync := func() {
		syncCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()
		if _, err := oddsService.SyncOdds(syncCtx); err != nil {
			logger.Error("scheduled odds sync failed", slog.Any("error", err))
		}
	}

	sync()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sync()
		}
	}
}
