package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/keepstockhq/keepstock-backend/api/routes"
	"github.com/keepstockhq/keepstock-backend/internal/auth"
	"github.com/keepstockhq/keepstock-backend/internal/inventory"
	"github.com/keepstockhq/keepstock-backend/internal/reports"
	"github.com/keepstockhq/keepstock-backend/internal/seed"
	"github.com/keepstockhq/keepstock-backend/pkg/config"
	"github.com/keepstockhq/keepstock-backend/pkg/db"
	"github.com/keepstockhq/keepstock-backend/pkg/logger"
	"github.com/keepstockhq/keepstock-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx := context.Background()
	seedData := inventory.SeedData{
		Products:    seed.Products(),
		Stores:      seed.Stores(),
		StockItems:  seed.StockItems(),
		RefillItems: seed.RefillItems(),
	}

	var (
		repo  inventory.Repository
		creds auth.CredentialRepository
	)
	if cfg.Store.IsFile() {
		fileStore, err := inventory.NewFileStore(cfg.Store.DataDir, seedData, logg)
		if err != nil {
			logg.Error(ctx, "failed to open file store", err)
			os.Exit(1)
		}
		repo = fileStore

		seedCreds, err := auth.NewSeedCredentials(seed.Users(), cfg.Password)
		if err != nil {
			logg.Error(ctx, "failed to load credentials", err)
			os.Exit(1)
		}
		creds = seedCreds
	} else {
		dbClient, err := db.New(ctx, cfg.Store, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(ctx, "error closing database", err)
			}
		}()

		if cfg.DB.AutoMigrate {
			if err := migrate.AutoRun(ctx, dbClient, logg); err != nil {
				logg.Error(ctx, "failed to migrate database", err)
				os.Exit(1)
			}
		}

		gormStore, err := inventory.NewGormStore(dbClient.DB())
		if err != nil {
			logg.Error(ctx, "failed to open record store", err)
			os.Exit(1)
		}
		if err := gormStore.SeedIfEmpty(ctx, seedData); err != nil {
			logg.Error(ctx, "failed to seed record store", err)
			os.Exit(1)
		}
		repo = gormStore

		gormCreds, err := auth.NewGormCredentials(dbClient.DB())
		if err != nil {
			logg.Error(ctx, "failed to open credential store", err)
			os.Exit(1)
		}
		if err := gormCreds.SeedIfEmpty(ctx, seed.Users(), cfg.Password); err != nil {
			logg.Error(ctx, "failed to seed credentials", err)
			os.Exit(1)
		}
		creds = gormCreds
	}

	sessions, err := auth.NewFileSessionStore(cfg.Store.DataDir)
	if err != nil {
		logg.Error(ctx, "failed to open session store", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(creds, sessions, cfg.JWT)
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(repo)
	if err != nil {
		logg.Error(ctx, "failed to create inventory service", err)
		os.Exit(1)
	}

	reportsService, err := reports.NewService(inventoryService)
	if err != nil {
		logg.Error(ctx, "failed to create reports service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx = logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Store.Backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, authService, inventoryService, reportsService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
