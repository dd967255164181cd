// Package main is the entry point for the WanderList API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"wanderlist/internal/config"
	"wanderlist/internal/engine"
	"wanderlist/internal/gateway"
	"wanderlist/internal/handler"
	"wanderlist/internal/middleware"
	"wanderlist/internal/store"
	"wanderlist/pkg/nominatim"
	"wanderlist/pkg/openmeteo"
)

// userAgent identifies this application to the public geocoding service,
// which requires a meaningful User-Agent from API clients.
const userAgent = "wanderlist/0.1"

// maxBodyBytes caps request bodies; the largest legitimate payload is a
// place name.
const maxBodyBytes = 1 << 16

func main() {
	// --- Config -----------------------------------------------------------
	// A .env file is optional and never overrides the real environment.
	envLoaded := godotenv.Load() == nil

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if envLoaded {
		slog.Info("loaded environment from .env")
	}

	// --- State and gateways -----------------------------------------------
	st, err := store.NewFileStore(cfg.StateDir)
	if err != nil {
		slog.Error("failed to prepare state directory", "error", err)
		os.Exit(1)
	}

	// One shared HTTP client; the config timeout bounds every outbound
	// geocoding and weather call.
	gatewayHTTP := &http.Client{Timeout: cfg.GatewayTimeout}
	geocoder := gateway.NewGeocoder(nominatim.NewClient(cfg.GeocoderURL, userAgent, gatewayHTTP), cfg.GeocoderLimit)
	weather := gateway.NewWeather(openmeteo.NewClient(cfg.WeatherURL, gatewayHTTP))

	list := engine.New(st, geocoder, weather)
	slog.Info("wish list restored", "entries", len(list.Snapshot()))

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body size cap.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	api := handler.NewServer(list, handler.NewUpdatesHub(cfg.CORSOrigins))
	r.Mount("/", api.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// The write timeout leaves room for a weather refresh that waits out the
	// full gateway timeout before responding. Websocket connections are
	// hijacked and not subject to these timeouts.
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.BindAddr, cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
