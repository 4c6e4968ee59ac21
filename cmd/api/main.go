package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/stockroom/internal/auth"
	"github.com/MrJamesThe3rd/stockroom/internal/config"
	"github.com/MrJamesThe3rd/stockroom/internal/database"
	"github.com/MrJamesThe3rd/stockroom/internal/export"
	stockroomHttp "github.com/MrJamesThe3rd/stockroom/internal/http"
	dashboardHandler "github.com/MrJamesThe3rd/stockroom/internal/http/dashboard"
	exportHandler "github.com/MrJamesThe3rd/stockroom/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/stockroom/internal/http/importcsv"
	itemsHandler "github.com/MrJamesThe3rd/stockroom/internal/http/inventory"
	loginHandler "github.com/MrJamesThe3rd/stockroom/internal/http/login"
	reportsHandler "github.com/MrJamesThe3rd/stockroom/internal/http/report"
	"github.com/MrJamesThe3rd/stockroom/internal/importer"
	"github.com/MrJamesThe3rd/stockroom/internal/inventory"
	invStore "github.com/MrJamesThe3rd/stockroom/internal/inventory/store"
	"github.com/MrJamesThe3rd/stockroom/internal/live"
	reportStore "github.com/MrJamesThe3rd/stockroom/internal/report/store"
	"github.com/MrJamesThe3rd/stockroom/internal/summary"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	creds, err := cfg.Credentials()
	if err != nil {
		slog.Error("failed to parse credentials", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	hub := live.NewHub()

	var (
		store            = invStore.New(db)
		authService      = auth.NewService(creds, cfg.Auth.SigningKey, cfg.Auth.SessionTTL)
		inventoryService = inventory.NewService(store, hub)
		summaryService   = summary.NewService(store)
		exportService    = export.NewService(reportStore.New(db))
		importService    = importer.NewService()
	)

	var (
		loginH     = loginHandler.NewHandler(authService)
		itemsH     = itemsHandler.NewHandler(inventoryService)
		reportsH   = reportsHandler.NewHandler(reportStore.New(db))
		dashboardH = dashboardHandler.NewHandler(summaryService)
		exportH    = exportHandler.NewHandler(exportService)
		importH    = importHandler.NewHandler(importService, inventoryService)
	)

	router := stockroomHttp.New(authService, loginH, itemsH, reportsH, dashboardH, exportH, importH, hub)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
