package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"slack-archiver/internal/adapters/web"
	"slack-archiver/internal/app"
	"slack-archiver/internal/config"
	"slack-archiver/internal/domain"
	"slack-archiver/internal/metrics"
	"slack-archiver/pkg/log"
	"slack-archiver/pkg/log/transporters"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal("failed to load config", err)
	}

	logger := log.New(cfg.LogLevel, transporters.NewJSON())
	log.SetDefault(logger)
	defer logger.Close()

	profile, err := config.LoadFeatureProfile(cfg.FeaturesFile)
	if err != nil {
		log.GlobalWarn("feature profile not loaded, using built-in defaults", "path", cfg.FeaturesFile, "error", err)
		profile = config.StaticFeatureProfile(domain.FeatureFlags{FetchUsers: true, FetchChannel: true})
	}
	defer profile.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := app.New(context.Background(), cfg, reg)
	if err != nil {
		fatal("failed to initialize application", err)
	}
	defer a.Close()

	defaults := domain.Credentials{Token: cfg.SlackToken, Cookie: cfg.SlackCookie}
	handlers := web.NewHandlers(a.Archive, a.VerifyCredentials, defaults, profile, cfg.RequestTimeout)

	server := fiber.New(fiber.Config{
		AppName:               "slack-archiver",
		ErrorHandler:          web.ErrorHandler,
		DisableStartupMessage: true,
	})

	server.Use(recover.New())
	server.Use(requestid.New(web.RequestIDConfig()))
	server.Use(web.ContextMiddleware())
	server.Use(web.AccessLogMiddleware())

	web.SetupRoutes(server, handlers, metrics.Handler(reg))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.GlobalInfo("shutting down")
		if err := server.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.GlobalError("shutdown failed", "error", err)
		}
	}()

	addr := ":" + strconv.Itoa(cfg.Port)
	log.GlobalInfo("starting slack-archiver", "addr", addr, "storage", string(cfg.Storage.Type), "log_level", cfg.LogLevel.String())
	if err := server.Listen(addr); err != nil {
		log.GlobalError("server stopped", "error", err)
	}
}

// fatal reports a startup error before or after the logger exists and exits.
func fatal(msg string, err error) {
	log.GlobalError(msg, "error", err)
	log.Default().Close()
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
