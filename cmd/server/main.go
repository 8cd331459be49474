package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"github.com/cleantube/cleantube-go/internal/analyzer"
	"github.com/cleantube/cleantube-go/internal/config"
	"github.com/cleantube/cleantube-go/internal/db"
	"github.com/cleantube/cleantube-go/internal/handler"
	"github.com/cleantube/cleantube-go/internal/middleware"
	"github.com/cleantube/cleantube-go/internal/repository"
	"github.com/cleantube/cleantube-go/internal/router"
	"github.com/cleantube/cleantube-go/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "cleantube-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	api := analyzer.New(cfg.AnalyzerURL, time.Duration(cfg.HTTPTimeoutSecs)*time.Second, logger.With().Str("component", "analyzer").Logger())
	selections := service.NewSelectionManager()
	analysis := service.NewAnalysisService(api, cache)
	audit := repository.NewAuditRepo(pool)

	refresh := service.NewRefreshWorker(analysis)
	go refresh.Start(ctx)

	mod := service.NewModerationService(
		api,
		selections,
		analysis,
		audit,
		refresh,
		&service.LogNotifier{Log: logger.With().Str("component", "notifier").Logger()},
		logger.With().Str("component", "moderation").Logger(),
	)

	handler.InitMetrics(pool)

	app := fiber.New(fiber.Config{
		AppName:      "CleanTube API",
		ServerHeader: "CleanTube",
	})

	h := &router.Handlers{
		Analysis:   handler.NewAnalysisHandler(analysis, mod),
		Selection:  handler.NewSelectionHandler(selections, analysis, mod),
		Moderation: handler.NewModerationHandler(mod),
		Audit:      handler.NewAuditHandler(audit),
		Health:     handler.NewHealthHandler(pool, cache.Client()),
	}
	router.Setup(app, h, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("CleanTube Go backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
