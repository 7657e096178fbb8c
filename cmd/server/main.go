package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/felixgeelhaar/fortify/ratelimit"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/costs/internal/account"
	"github.com/mmynk/costs/internal/auth"
	"github.com/mmynk/costs/internal/config"
	"github.com/mmynk/costs/internal/middleware"
	"github.com/mmynk/costs/internal/project"
	"github.com/mmynk/costs/internal/service"
	"github.com/mmynk/costs/internal/session"
	"github.com/mmynk/costs/internal/storage/sqlite"
	"github.com/mmynk/costs/pkg/api/apiconnect"
	"github.com/mmynk/costs/pkg/logging"
)

func main() {
	configPath := flag.String("config", os.Getenv("COSTS_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath, ".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	logging.SetupWithLevel(level)

	if err := cfg.RequireSecret(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.Storage.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	keys, err := store.Keys(context.Background())
	if err != nil {
		slog.Error("Failed to read storage", "error", err)
		os.Exit(1)
	}
	slog.Info("Storage initialized", "database", cfg.Storage.Path, "keys", keys)

	logger := slog.Default()
	sessions := session.NewStore(store)
	accounts := account.NewStore(store, sessions, auth.NewBcryptHasher(cfg.Auth.BcryptCost), account.WithLogger(logger))
	projects := project.NewStore(store, project.WithLogger(logger))
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	loginLimiter := ratelimit.New(&ratelimit.Config{
		Rate:     cfg.Auth.LoginRate,
		Burst:    cfg.Auth.LoginRate,
		Interval: time.Minute,
	})
	defer loginLimiter.Close()

	mux := http.NewServeMux()

	// Register Connect services. Register and Login are public, so the auth
	// service only attaches the user when one is present.
	authPath, authHandler := apiconnect.NewAuthServiceHandler(
		service.NewAuthService(accounts, jwtManager, logger),
		connect.WithInterceptors(
			middleware.RateLimit(loginLimiter, apiconnect.AuthServiceLoginProcedure, apiconnect.AuthServiceRegisterProcedure),
			middleware.OptionalAuth(jwtManager, accounts),
			middleware.LoggingInterceptor(),
		),
	)
	mux.Handle(authPath, authHandler)

	projectPath, projectHandler := apiconnect.NewProjectServiceHandler(
		service.NewProjectService(projects, logger),
		connect.WithInterceptors(middleware.RequireAuth(jwtManager, accounts), middleware.LoggingInterceptor()),
	)
	mux.Handle(projectPath, projectHandler)

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	handler := h2c.NewHandler(corsMiddleware(mux), &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
