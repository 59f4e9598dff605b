package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/gabrielnatan/petinova-2-sub000/internal/adapter/api"
	"github.com/gabrielnatan/petinova-2-sub000/internal/adapter/handler"
	"github.com/gabrielnatan/petinova-2-sub000/internal/adapter/storage"
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/registry"
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/service"
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/store"
	"github.com/gabrielnatan/petinova-2-sub000/internal/logger"
	"github.com/gabrielnatan/petinova-2-sub000/internal/port"
)

type config struct {
	httpAddr     string
	upstreamURL  string
	stateBackend string
	redisAddr    string
	mysqlDSN     string
	saveDebounce time.Duration
}

func configFromEnv() config {
	cfg := config{
		httpAddr:     envOr("HTTP_ADDR", ":8080"),
		upstreamURL:  envOr("UPSTREAM_URL", "http://localhost:3000"),
		stateBackend: envOr("STATE_BACKEND", "redis"),
		redisAddr:    envOr("REDIS_ADDR", "localhost:6379"),
		mysqlDSN:     envOr("MYSQL_DSN", "root:root@tcp(localhost:3306)/petinova?parseTime=true"),
	}
	if v := os.Getenv("SAVE_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.saveDebounce = d
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	lg, err := logger.Init(logger.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()
	sugar := lg.Sugar()

	cfg := configFromEnv()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// State repository for the persisted store subset
	var states port.StateRepository
	var rdb *redis.Client
	var db *sql.DB

	switch cfg.stateBackend {
	case "redis":
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.redisAddr,
			PoolSize: 100,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			sugar.Fatalf("failed to connect redis: %v", err)
		}
		states = storage.NewRedisStateRepository(rdb)
		sugar.Infow("connected to redis", "addr", cfg.redisAddr)
	case "mysql":
		db, err = sql.Open("mysql", cfg.mysqlDSN)
		if err != nil {
			sugar.Fatalf("failed to connect mysql: %v", err)
		}
		db.SetMaxOpenConns(50)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.PingContext(ctx); err != nil {
			sugar.Fatalf("failed to ping mysql: %v", err)
		}
		states = storage.NewMySQLStateRepository(db)
		sugar.Info("connected to mysql")
	case "memory":
		states = storage.NewMemoryStateRepository()
		sugar.Warn("using in-memory state; persisted subset will not survive restarts")
	default:
		sugar.Fatalf("unknown STATE_BACKEND %q", cfg.stateBackend)
	}

	// Each session key doubles as that session's upstream bearer token.
	factory := func(key string) (*service.DashboardService, port.AuthAPI, port.CatalogAPI) {
		client := api.NewClient(cfg.upstreamURL, api.StaticToken(key), nil)
		dash := service.NewDashboardService(api.NewDashboardAPI(client), sugar)
		return dash, api.NewAuthAPI(client), api.NewCatalogAPI(client)
	}

	manager := store.NewManager(states, factory, sugar)
	h := handler.NewHTTPHandler(manager, registry.New(), cfg.saveDebounce, sugar)

	httpServer := &http.Server{
		Addr:    cfg.httpAddr,
		Handler: h.Routes(),
	}

	go func() {
		sugar.Infow("HTTP server listening", "addr", cfg.httpAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			sugar.Errorf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sugar.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	sugar.Info("HTTP server stopped")

	if rdb != nil {
		rdb.Close()
	}
	if db != nil {
		db.Close()
	}
	sugar.Info("connections closed")
}
