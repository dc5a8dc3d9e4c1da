package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"deck-tracker/config"
	"deck-tracker/docstore"
	"deck-tracker/handlers"
	"deck-tracker/logging"
	"deck-tracker/middleware"
	"deck-tracker/services"
	"deck-tracker/utils"
	"deck-tracker/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	envErr := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	if envErr != nil {
		sugar.Warn("⚠️  No .env file found, reading environment variables directly")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := docstore.Open(ctx, cfg.Docstore)
	if err != nil {
		sugar.Fatalf("failed to open %s document store: %v", cfg.Docstore.Driver, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			sugar.Errorf("failed to close document store: %v", err)
		}
	}()
	sugar.Infof("✅ Document store ready (driver=%s)", cfg.Docstore.Driver)

	var avatars utils.AvatarStore
	if cfg.R2.Enabled() {
		avatars, err = utils.NewR2Uploader(ctx, utils.R2Options{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			AccessKeySecret: cfg.R2.AccessKeySecret,
			Bucket:          cfg.R2.Bucket,
			CDNBaseURL:      cfg.R2.CDNBaseURL,
		})
		if err != nil {
			sugar.Fatalf("failed to initialize R2 client: %v", err)
		}
	} else {
		avatars, err = utils.NewLocalAvatarStore(cfg.UploadDir, "/uploads")
		if err != nil {
			sugar.Fatal(err)
		}
	}

	matchService := services.NewMatchService(store)
	deckService := services.NewDeckService(store)
	profileService := services.NewProfileService(store, deckService)
	statsService := services.NewStatsService(deckService, matchService, cfg.StatsConcurrency)
	catalog := services.NewCatalogClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.Catalog.Timeout, cfg.Catalog.Concurrency)

	app := fiber.New(fiber.Config{
		BodyLimit:    10 * 1024 * 1024, // avatars
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders: "Origin, Content-Type, Accept, X-Requested-With, X-Request-ID",
		MaxAge:       86400,
	}))
	app.Use(middleware.RequestLogger())

	handlers.SetupRoutes(app, handlers.Services{
		Profiles: profileService,
		Decks:    deckService,
		Matches:  matchService,
		Stats:    statsService,
		Catalog:  catalog,
		Avatars:  avatars,
	})

	if !cfg.R2.Enabled() {
		app.Static("/uploads", cfg.UploadDir)
	}
	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		app.Static("/", cfg.StaticDir, fiber.Static{Index: "index.html"})
		sugar.Infof("✅ Serving UI from %s", cfg.StaticDir)
	}

	var sweeper *workers.OrphanSweeper
	if cfg.SweepInterval > 0 {
		sweeper = workers.NewOrphanSweeper(store, cfg.SweepInterval)
		if err := sweeper.Start(ctx); err != nil {
			sugar.Fatalf("failed to start orphan sweeper: %v", err)
		}
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			sugar.Errorf("Server error: %v", err)
			stop()
		}
	}()

	sugar.Infof("✅ Server running on http://localhost:%s", cfg.Port)
	sugar.Infof("✅ CORS configured for origins: %s", strings.Join(cfg.AllowedOrigins, ","))

	<-ctx.Done()
	sugar.Info("Shutting down server...")

	if sweeper != nil {
		if err := sweeper.Stop(); err != nil {
			sugar.Errorf("failed to stop orphan sweeper: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		sugar.Errorf("server shutdown: %v", err)
	}
	zap.L().Info("server stopped")
}
