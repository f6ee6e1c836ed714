package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"laraibcreative.com/store-web/internal/blog"
	"laraibcreative.com/store-web/internal/cart"
	"laraibcreative.com/store-web/internal/catalog"
	"laraibcreative.com/store-web/internal/config"
	"laraibcreative.com/store-web/internal/grid"
	"laraibcreative.com/store-web/internal/handlers"
	"laraibcreative.com/store-web/internal/middleware"
	"laraibcreative.com/store-web/internal/status"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Fatal("config", zap.Error(err))
	}

	log := newLogger(cfg.DevMode)
	defer func() { _ = log.Sync() }()

	checker := status.NewChecker(0, 0)

	svc, err := buildCatalog(cfg, log, checker)
	if err != nil {
		log.Fatal("catalog", zap.Error(err))
	}
	checker.Register("catalog", func(ctx context.Context) error {
		probe := catalog.DefaultFilterState()
		probe.Limit = 1
		_, err := svc.List(ctx, probe)
		return err
	})

	render, err := handlers.NewRenderer(cfg.TemplatesDir, cfg.DevMode, log)
	if err != nil {
		log.Fatal("templates", zap.Error(err))
	}

	sessions, err := middleware.NewSessionManager([]byte(cfg.SessionHashKey), blockKey(cfg.SessionBlockKey), cfg.SecureCookies)
	if err != nil {
		log.Fatal("sessions", zap.Error(err))
	}

	server := handlers.NewServer(
		log,
		render,
		svc,
		grid.NewRegistry(svc),
		cart.NewClient(cfg.CartAPIURL),
		blog.NewStore(cfg.BlogDir, 0),
	)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.HTMX)
	r.Use(sessions.Middleware)
	r.Use(middleware.CSRF)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		summary := checker.Check(req.Context())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if summary.Status != status.StateOK {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(summary)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Handle("/assets/*", http.StripPrefix("/assets/", middleware.AssetsWithCache(cfg.AssetsDir)))

	server.Routes(r)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.Bool("dev", cfg.DevMode), zap.String("catalog", cfg.CatalogBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

func newLogger(dev bool) *zap.Logger {
	if dev {
		log, _ := zap.NewDevelopment()
		return log
	}
	log, _ := zap.NewProduction()
	return log
}

// buildCatalog selects the configured catalog backend and, when Redis is
// configured, wraps it in the read-through cache.
func buildCatalog(cfg config.Config, log *zap.Logger, checker *status.Checker) (catalog.Service, error) {
	var svc catalog.Service
	switch cfg.CatalogBackend {
	case "static":
		svc = catalog.NewStaticCatalog()
	case "sqlite":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err := catalog.OpenSQLiteCatalog(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if empty, err := db.Empty(ctx); err == nil && empty {
			if err := db.Seed(ctx, catalog.NewStaticCatalog().Products()); err != nil {
				log.Warn("sqlite seed", zap.Error(err))
			}
		}
		svc = db
	case "api":
		remote, err := catalog.NewHTTPCatalog(cfg.CatalogAPIURL, nil)
		if err != nil {
			return nil, err
		}
		svc = remote
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		checker.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		svc = catalog.NewCachedCatalog(svc, rdb, cfg.CacheTTL)
	}
	return svc, nil
}

func blockKey(key string) []byte {
	if key == "" {
		return nil
	}
	return []byte(key)
}
