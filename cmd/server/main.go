package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	apporder "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/infrastructure/bot"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/media"
	"github.com/storefront/backend/internal/infrastructure/ordersink"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database ready", zap.String("path", cfg.Database.Path))

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	settingRepo := persistence.NewGormSettingRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Event bus; admin notifications ride on the order placed event
	bus := event.NewInMemoryEventBus(log)
	notifier := ordersink.NewTelegramNotifier(
		cfg.Bot.Token,
		cfg.Bot.APIBaseURL,
		cfg.Store.AdminChatIDs,
		log,
	)
	bus.Subscribe(apporder.NewOrderPlacedHandler(orderRepo, notifier, log))

	intake := apporder.NewIntakeService(productRepo, orderRepo, bus, log)

	// Second intake channel: orders arriving as web_app_data through the bot
	botCtx, stopBot := context.WithCancel(context.Background())
	defer stopBot()
	if cfg.Bot.Token != "" {
		poller := bot.NewPoller(cfg.Bot.Token, cfg.Bot.APIBaseURL, cfg.Bot.WebAppURL, cfg.Store.Title, intake, log)
		go poller.Run(botCtx)
	}

	// Media proxy
	resolver := media.NewResolver(media.Options{
		GalleryEnabled: cfg.Media.GalleryEnabled,
		VideoEnabled:   cfg.Media.VideoEnabled,
	})

	engine := router.New(cfg, router.Handlers{
		Catalog: handler.NewCatalogHandler(cfg.Store.Title, cfg.Store.ManagerContactURL(), productRepo, categoryRepo, settingRepo, log),
		Order:   handler.NewOrderHandler(intake, log),
		Media:   handler.NewMediaHandler(resolver, log),
	}, log)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	stopBot()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
