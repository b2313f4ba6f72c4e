package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gatherly/gatherly/internal/config"
	"github.com/gatherly/gatherly/internal/db"
	httpx "github.com/gatherly/gatherly/internal/http"
	"github.com/gatherly/gatherly/internal/observability"
	mongorepo "github.com/gatherly/gatherly/internal/repo/mongo"
	"github.com/gatherly/gatherly/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)

	if cfg.TracingEnabled {
		ctx, cancel := config.WithTimeout(5 * time.Second)

		shutdownTracer, err := observability.InitTracer(ctx, "gatherly-api", cfg.OTLPEndpoint)

		cancel()

		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(ctx)
		}()
	}

	// document store
	client, err := db.Connect(cfg.MongoURI)

	if err != nil {
		log.Error("mongo connect failed", "err", err)
		os.Exit(1)
	}

	defer func() {
		ctx, cancel := config.WithTimeout(5 * time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	database := client.Database(cfg.MongoDB)
	eventsCol := database.Collection("events")
	usersCol := database.Collection("users")

	seedCtx, cancelSeed := config.WithTimeout(5 * time.Second)

	err = db.EnsureSeedOrganizer(seedCtx, usersCol, cfg)

	cancelSeed()

	if err != nil {
		log.Error("seed organizer failed", "err", err)
		os.Exit(1)
	}

	// metrics
	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	// wire up store -> use-cases -> router
	store := mongorepo.NewEventsRepo(eventsCol, usersCol, prom)
	events := usecase.NewEvents(store)

	ping := func() error {
		ctx, cancel := config.WithTimeout(1 * time.Second)
		defer cancel()

		return client.Ping(ctx, readpref.Primary())
	}

	router := httpx.NewRouter(log, events, httpx.RouterOptions{
		Env:            cfg.Env,
		AllowedOrigins: cfg.AllowedOrigins,
		Tracing:        cfg.TracingEnabled,
		Prom:           prom,
		Metrics:        promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Ping:           ping,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
