// Command smoke walks a running storefront backend through the full
// customer journey: fetch config and categories, open a category,
// put a product into the cart and submit a checkout. It exercises the
// same session and checkout code the mini-app host embeds, so a green
// run means the deployed API and the client state machine agree.
//
// Pass -submit to place a real order; without it the run stops after
// form validation.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/application/storefront"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/catalogsource"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/media"
	"github.com/storefront/backend/internal/infrastructure/ordersink"
)

func main() {
	var (
		baseURL   = flag.String("base-url", "http://localhost:8080", "storefront backend base URL")
		category  = flag.String("category", "", "category to open (default: first one returned)")
		submit    = flag.Bool("submit", false, "actually submit a test order")
		redisHost = flag.String("redis-host", "", "redis host for the catalog cache (empty disables caching)")
		redisPort = flag.Int("redis-port", 6379, "redis port")
		timeout   = flag.Duration("timeout", 30*time.Second, "overall run timeout")
		env       = flag.String("env", "development", "logger environment (development, production)")
	)
	flag.Parse()

	log, err := logger.NewForEnvironment(*env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init failed:", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, log, *baseURL, *category, *redisHost, *redisPort, *submit); err != nil {
		log.Error("smoke run failed", zap.Error(err))
		os.Exit(1)
	}
	log.Info("smoke run passed")
}

func run(ctx context.Context, log *zap.Logger, baseURL, category, redisHost string, redisPort int, submit bool) error {
	var source storefront.CatalogSource = catalogsource.NewHTTPSource(baseURL, log)
	if redisHost != "" {
		cached, err := cache.WrapCatalogSource(&config.RedisConfig{
			Enabled: true,
			Host:    redisHost,
			Port:    redisPort,
			TTL:     time.Minute,
		}, source, log)
		if err != nil {
			return fmt.Errorf("cache setup: %w", err)
		}
		source = cached
	}

	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(&stateLogger{log: log}, storefront.EventStateChanged)

	session := storefront.NewSession(source, bus, log)
	resolver := media.NewResolver(media.Options{GalleryEnabled: true, VideoEnabled: true})

	cfg, err := source.Config(ctx)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log.Info("shop config",
		zap.String("title", cfg.Title),
		zap.String("hero_type", cfg.HeroType),
		zap.String("hero_url", resolver.Resolve(cfg.HeroURL)),
	)

	categories, err := source.Categories(ctx)
	if err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	if len(categories) == 0 {
		return fmt.Errorf("backend returned no categories")
	}
	for _, c := range categories {
		log.Info("category", zap.String("title", c.Title), zap.String("image", resolver.Resolve(c.ImageURL)))
	}

	if category == "" {
		category = categories[0].Title
	}
	if err := session.OpenCategory(ctx, category, ""); err != nil {
		return fmt.Errorf("open category %q: %w", category, err)
	}
	products := session.VisibleProducts()
	if len(products) == 0 {
		return fmt.Errorf("category %q has no products", category)
	}
	log.Info("category opened",
		zap.String("category", category),
		zap.Int("products", len(products)),
	)

	// Drive the same mutations the mini-app UI would.
	session.SetSort(storefront.SortPriceAsc)
	cheapest := session.VisibleProducts()[0]
	session.ToggleFavorite(cheapest)
	sizes := cheapest.SizeSet()
	size := ""
	if len(sizes) > 0 {
		size = sizes[0]
	}
	session.AddToCart(cheapest, size)
	if _, err := session.IncrementItem(0); err != nil {
		return fmt.Errorf("increment cart item: %w", err)
	}
	log.Info("cart assembled",
		zap.String("product", cheapest.Title),
		zap.String("size", size),
		zap.Int64("badge", session.BadgeCount()),
		zap.String("total", session.CartTotal().String()),
	)

	form := order.CheckoutForm{
		FullName: "Smoke Test",
		Phone:    "+79990000000",
		Address:  "Moscow, smoke run",
		Comment:  "automated smoke order, safe to cancel",
	}
	flow := storefront.NewCheckoutFlow(ordersink.NewDualSink(nil, baseURL, log), log)
	if errs := flow.Validate(form.Trimmed()); !errs.Valid() {
		return fmt.Errorf("checkout form rejected: %v", errs)
	}
	if !submit {
		log.Info("dry run, skipping order submission")
		return nil
	}

	fieldErrs, err := flow.Submit(ctx, session.Cart(), form.Trimmed())
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if !fieldErrs.Valid() {
		return fmt.Errorf("submit validation: %v", fieldErrs)
	}
	session.ClearCart()
	log.Info("order submitted", zap.String("state", string(flow.State())))
	return nil
}

// stateLogger mirrors the UI layer's re-render subscription
type stateLogger struct {
	log *zap.Logger
}

func (s *stateLogger) Handle(_ context.Context, e shared.DomainEvent) error {
	if ev, ok := e.(*storefront.StateChangedEvent); ok {
		s.log.Debug("session state changed", zap.String("cause", ev.Cause))
	}
	return nil
}

func (s *stateLogger) EventTypes() []string {
	return []string{storefront.EventStateChanged}
}
