package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-backend/config"
	"storefront-backend/internal/delivery/http/middleware"
	v1 "storefront-backend/internal/delivery/http/v1"
	"storefront-backend/internal/domain"
	"storefront-backend/internal/infrastructure/cache"
	"storefront-backend/internal/repository/memory"
	"storefront-backend/internal/repository/pgxrepo"
	"storefront-backend/internal/session"
	"storefront-backend/internal/usecase"
	"storefront-backend/pkg/logger"
	"storefront-backend/pkg/metrics"
	"storefront-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const serviceName = "storefront-backend"

var version = "dev"

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Catalog: Postgres when DB_DSN is set, otherwise the built-in mock catalog
	var (
		productRepo domain.ProductRepository
		catalogName = "memory"
		dbPing      func(ctx context.Context) error
	)
	if cfg.UsesDatabase() {
		pool, err := pgxrepo.NewPgxPool(context.Background(), cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer pool.Close()
		log.Info().Msg("Successfully connected to PostgreSQL via pgx")
		productRepo = pgxrepo.NewCatalogRepository(pool)
		catalogName = "postgres"
		dbPing = pool.Ping
	} else {
		productRepo = memory.NewCatalogRepository()
		log.Info().Msg("DB_DSN not set, serving the mock catalog")
	}

	// Catalog responses and session carts live in separate caches so a
	// catalog flush never ends a shopper's session.
	catalogCache := cache.NewMemoryCache(cfg.CacheProductTTL, cfg.SessionCleanupInterval)
	sessionCache := cache.NewMemoryCache(cfg.SessionTTL, cfg.SessionCleanupInterval)

	sessions := session.NewRegistry(sessionCache, cfg.SessionTTL, m)
	signer := utils.NewSessionSigner(cfg.SessionSecret, cfg.SessionTTL)

	catalogUC := usecase.NewCatalogUsecase(productRepo, catalogCache, cfg)
	cartUC := usecase.NewCartUsecase(catalogUC, sessions, m, cfg)

	mux := http.NewServeMux()
	v1.Routes{
		Catalog: v1.NewCatalogHandler(catalogUC),
		Cart:    v1.NewCartHandler(cartUC),
		Health:  v1.NewHealthHandler(catalogName, dbPing),
		Metrics: m.Handler(),
		Session: middleware.NewSessionMiddleware(signer, cfg.SessionTTL, cfg.Env == "production"),
	}.Register(mux)

	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		cfg.RateLimitRPS,
		cfg.RateLimitBurst,
		time.Minute,   // sweep period
		3*time.Minute, // idle visitor TTL
	)

	// The event stream is left uncompressed so each event reaches the client
	// as soon as it is flushed.
	gzip, err := gziphandler.GzipHandlerWithOpts(gziphandler.ContentTypes([]string{"application/json", "text/plain"}))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build gzip handler")
	}

	// Apply CORS, Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.NewRequestLogger(m)(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gzip(handler)

	// Cancelling baseCtx ends open event streams, which otherwise only end
	// when their session does.
	baseCtx, cancelRequests := context.WithCancel(context.Background())
	defer cancelRequests()

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelRequests)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart(serviceName, version, cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop(serviceName)
}
