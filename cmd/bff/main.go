package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gatherly/gatherly/internal/bff"
	"github.com/gatherly/gatherly/internal/bff/restclient"
	"github.com/gatherly/gatherly/internal/bff/session"
	"github.com/gatherly/gatherly/internal/config"
	"github.com/gatherly/gatherly/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	if cfg.SessionSecret == "" {
		log.Warn("SESSION_SECRET not set; every request will resolve as unauthenticated")
	}

	if cfg.TracingEnabled {
		ctx, cancel := config.WithTimeout(5 * time.Second)

		shutdownTracer, err := observability.InitTracer(ctx, "gatherly-bff", cfg.OTLPEndpoint)

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

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	client := restclient.New(cfg.APIBaseURL, prom)
	resolvers := bff.NewResolvers(client, log)

	schema, err := bff.NewSchema(resolvers)

	if err != nil {
		log.Error("schema build failed", "err", err)
		os.Exit(1)
	}

	verifier := session.NewVerifier(cfg.SessionSecret)

	router := bff.NewRouter(log, schema, verifier, bff.RouterOptions{
		Env:            cfg.Env,
		AllowedOrigins: cfg.AllowedOrigins,
		Tracing:        cfg.TracingEnabled,
		Prom:           prom,
		Metrics:        promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("BFF starting", "port", cfg.Port, "env", cfg.Env, "api", cfg.APIBaseURL)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

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
