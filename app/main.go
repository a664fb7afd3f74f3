package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shiftcal/app/api"
	"shiftcal/app/bot"
	"shiftcal/app/calendar"
	"shiftcal/app/cfg"
	"shiftcal/app/database"
	"shiftcal/app/ocr"
	"shiftcal/app/processor"
	"shiftcal/app/schedule"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting shiftcal", "version", appCfg.Version, "timezone", appCfg.Timezone)

	// Database connection
	db, err := database.NewConnection(appCfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	slog.Info("Database ready", "path", appCfg.DatabasePath, "migration_version", version, "dirty", dirty)

	// Parsing rules
	rules, err := schedule.LoadRules(appCfg.RulesFile)
	if err != nil {
		log.Fatal("Failed to load parsing rules:", err)
	}
	slog.Info("Parsing rules loaded",
		"noise_terms", len(rules.NoiseTerms),
		"title_markers", len(rules.TitleMarkers),
		"window", fmt.Sprintf("-%dd/+%dd", rules.LookBehindDays, rules.LookAheadDays))

	// Google Calendar client. Missing or unreadable credentials are
	// fatal at startup, not recoverable at runtime.
	ctx := context.Background()
	calendarClient, err := calendar.NewGoogleClient(ctx, appCfg.CredentialsFile, appCfg.Timezone)
	if err != nil {
		log.Fatal("Failed to create calendar client:", err)
	}
	reconciler := calendar.NewReconciler(calendarClient, appCfg.CalendarID)

	// Core pipeline
	engine := ocr.NewTesseract(appCfg.TesseractBinary, appCfg.OCRLanguage)
	importRepo := database.NewImportRepository(db)
	proc := processor.New(engine, rules, reconciler, importRepo, time.Local)

	// Discord listener
	scheduleBot, err := bot.New(appCfg.DiscordToken, appCfg.DiscordChannel, proc)
	if err != nil {
		log.Fatal("Failed to create discord bot:", err)
	}
	if err := scheduleBot.Start(); err != nil {
		log.Fatal("Failed to connect to discord:", err)
	}
	defer scheduleBot.Stop()

	// HTTP server
	apiHandler := api.NewHandler(importRepo, proc, appCfg.Version)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("shiftcal started", "channel", appCfg.DiscordChannel, "calendar", appCfg.CalendarID)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
