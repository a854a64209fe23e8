package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/AMCF-2026/jidhr/internal/api"
	"github.com/AMCF-2026/jidhr/internal/config"
	"github.com/AMCF-2026/jidhr/internal/csuite"
	"github.com/AMCF-2026/jidhr/internal/hubspot"
	"github.com/AMCF-2026/jidhr/internal/pkg/logger"
	"github.com/AMCF-2026/jidhr/internal/sync"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *debug {
		logger.SetLevel(logger.DEBUG)
	}

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if missing := cfg.Validate(); len(missing) > 0 {
		// Syncs report the missing credentials per run; the server still
		// starts so health checks and dry planning keep working.
		logger.Warn("missing credentials", "vars", strings.Join(missing, ","))
	}

	csuiteClient := csuite.NewClient(csuite.Config{
		APIKey:    cfg.CSuite.APIKey,
		APISecret: cfg.CSuite.APISecret,
		BaseURL:   cfg.CSuite.BaseURL,
		Env:       cfg.CSuite.Env,
		Timeout:   cfg.CSuite.Timeout(),
	})
	hubspotClient := hubspot.NewClient(hubspot.Config{
		AccessToken: cfg.HubSpot.AccessToken,
		BaseURL:     cfg.HubSpot.BaseURL,
		Timeout:     cfg.HubSpot.Timeout(),
	})

	handlers := api.NewHandlers(
		sync.NewDonationSync(csuiteClient, hubspotClient),
		sync.NewEventSync(csuiteClient, hubspotClient, cfg.Sync.EventOwnerID),
		sync.NewNewsletterSync(csuiteClient, hubspotClient, cfg.Sync.SubscriptionID),
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.SetupRoutes(handlers),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // a full live sync can run for minutes
	}

	go func() {
		logger.Info("sync server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
