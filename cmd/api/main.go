package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"redis-shopping-api/internal/cache"
	"redis-shopping-api/internal/cart"
	"redis-shopping-api/internal/catalog"
	"redis-shopping-api/internal/handlers"
	"redis-shopping-api/internal/httpserver"
	"redis-shopping-api/internal/metrics"
	"redis-shopping-api/internal/ratelimit"
	"redis-shopping-api/internal/session"
	"redis-shopping-api/internal/store"
	"redis-shopping-api/pkg/logging"
)

type Config struct {
	Port         string
	StoreBackend string // "memory" or "redis"
	RedisAddr    string
	CacheDB      int
	SessionDB    int
	RateLimitDB  int
	CartDB       int

	RateLimit         int64
	RateWindow        time.Duration
	RateLimitFailOpen bool

	ProductCacheTTL time.Duration
	HomepageTTL     time.Duration
	SessionTTL      time.Duration
	LoginCacheTTL   time.Duration
	CartTTL         time.Duration

	MissDelay       time.Duration
	ProductFetchLag time.Duration
	HomepageGenLag  time.Duration
}

func LoadConfig() Config {
	return Config{
		Port:         getenv("PORT", "8080"),
		StoreBackend: getenv("STORE_BACKEND", "redis"),
		RedisAddr:    getenv("REDIS_ADDR", "127.0.0.1:6379"),
		CacheDB:      getenvInt("REDIS_CACHE_DB", 0),
		SessionDB:    getenvInt("REDIS_SESSION_DB", 1),
		RateLimitDB:  getenvInt("REDIS_RATELIMIT_DB", 2),
		CartDB:       getenvInt("REDIS_CART_DB", 3),

		RateLimit:         int64(getenvInt("RATE_LIMIT", 10)),
		RateWindow:        getenvSeconds("RATE_WINDOW_SECONDS", 60),
		RateLimitFailOpen: getenv("RATE_LIMIT_FAIL_OPEN", "false") == "true",

		ProductCacheTTL: getenvSeconds("PRODUCT_CACHE_TTL_SECONDS", 120),
		HomepageTTL:     getenvSeconds("HOMEPAGE_CACHE_TTL_SECONDS", 30),
		SessionTTL:      getenvSeconds("SESSION_TTL_SECONDS", 3600),
		LoginCacheTTL:   getenvSeconds("LOGIN_CACHE_TTL_SECONDS", 300),
		CartTTL:         getenvSeconds("CART_TTL_SECONDS", 3600),

		MissDelay:       time.Duration(getenvInt("MISS_DELAY_MS", 2000)) * time.Millisecond,
		ProductFetchLag: time.Duration(getenvInt("PRODUCT_FETCH_DELAY_MS", 100)) * time.Millisecond,
		HomepageGenLag:  time.Duration(getenvInt("HOMEPAGE_GEN_DELAY_MS", 200)) * time.Millisecond,
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("api exited with error: %v", err)
	}
}

func run() error {
	// ----- Logger -----
	logger := logging.DefaultLogger()
	defer logger.Sync()

	// ----- Metrics -----
	metrics.Register()

	// ----- Config -----
	cfg := LoadConfig()

	logger.Info("loaded config",
		zap.String("port", cfg.Port),
		zap.String("store_backend", cfg.StoreBackend),
		zap.String("redis_addr", cfg.RedisAddr),
		zap.Int64("rate_limit", cfg.RateLimit),
		zap.Duration("rate_window", cfg.RateWindow),
		zap.Duration("session_ttl", cfg.SessionTTL),
		zap.Duration("miss_delay", cfg.MissDelay),
	)

	// ----- Store namespaces (fail fast on unreachable Redis) -----
	stores, err := store.NewStores(context.Background(), store.Config{
		Backend:     cfg.StoreBackend,
		Addr:        cfg.RedisAddr,
		CacheDB:     cfg.CacheDB,
		SessionDB:   cfg.SessionDB,
		RateLimitDB: cfg.RateLimitDB,
		CartDB:      cfg.CartDB,
	})
	if err != nil {
		logger.Error("store connection failed", zap.Error(err))
		return err
	}
	logger.Info("store connection established", zap.String("backend", cfg.StoreBackend))

	// Logging + metrics around the namespaces the handlers read hot.
	cacheNS := store.NewLoggingStore(stores.Cache, "cache")
	sessionNS := store.NewLoggingStore(stores.Sessions, "sessions")
	cartNS := store.NewLoggingStore(stores.Carts, "carts")

	// ----- Domain components -----
	missDelay := cache.FixedDelay(cfg.MissDelay)
	resolver := cache.NewResolver(cacheNS, missDelay)
	shopCatalog := catalog.NewDemo(
		cache.FixedDelay(cfg.ProductFetchLag),
		cache.FixedDelay(cfg.HomepageGenLag),
	)
	sessions := session.NewManager(sessionNS, cfg.SessionTTL, cfg.LoginCacheTTL)
	carts := cart.NewStore(cartNS, cfg.CartTTL, missDelay)
	limiter := ratelimit.New(stores.RateLimit, cfg.RateLimit, cfg.RateWindow, cfg.RateLimitFailOpen)

	// ----- Handlers -----
	api := handlers.New(
		resolver,
		shopCatalog,
		sessions,
		carts,
		cfg.ProductCacheTTL,
		cfg.HomepageTTL,
		missDelay,
	)

	// ----- Router + middleware -----
	r := chi.NewRouter()
	httpserver.SetupRouter(r, logger, api, limiter, sessions)

	// ----- HTTP server -----
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("starting api",
		zap.String("addr", srv.Addr),
		zap.String("store_backend", cfg.StoreBackend),
	)

	// Start server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	// ----- Graceful shutdown -----
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return err
	}

	logger.Info("server shutdown complete")
	return nil
}

// getenv returns the value of the environment variable key or def if not set.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvSeconds(key string, def int) time.Duration {
	return time.Duration(getenvInt(key, def)) * time.Second
}
