package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/kakairsyad/Interior-market/internal/auth"
	storegrpc "github.com/kakairsyad/Interior-market/internal/grpc"
	h "github.com/kakairsyad/Interior-market/internal/http"
	"github.com/kakairsyad/Interior-market/internal/kv"
	"github.com/kakairsyad/Interior-market/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the gRPC health endpoint",
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			log.Warn("failed to close storage", zap.Error(err))
		}
	}()

	provider, closeCatalog, err := openCatalog(ctx, cfg.Catalog)
	if err != nil {
		return err
	}
	defer closeCatalog()

	pub, closePublisher := newPublisher(cfg.Kafka)
	defer closePublisher()

	// accounts outlive the sessions that created them
	authSvc := auth.NewService(kv.Durable(store),
		auth.WithDelay(cfg.Auth.Delay),
		auth.WithLogger(log.Named("auth")),
	)
	sessions := session.NewManager(store, authSvc, newProcessor(cfg.Checkout),
		session.WithTTL(cfg.Session.TTL),
		session.WithCleanupInterval(cfg.Session.CleanupInterval),
		session.WithPublisher(pub),
		session.WithLogger(log.Named("session")),
	)
	defer sessions.Close()

	api := h.NewServer(provider, sessions, log.Named("http"), h.Options{
		RequestTimeout:     cfg.HTTP.RequestTimeout,
		MaxRequestBodySize: cfg.HTTP.MaxRequestBodySize,
		SecureCookies:      cfg.HTTP.SecureCookies,
		HealthChecks:       map[string]h.Pinger{"storage": store, "catalog": provider},
	})
	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      otelhttp.NewHandler(api.Routes(), "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.HTTP.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lis, err := net.Listen("tcp", ":"+cfg.GRPC.Port)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	health := storegrpc.NewHealthServer(map[string]storegrpc.Pinger{
		storegrpc.ServiceStorage: store,
		storegrpc.ServiceCatalog: provider,
	}, cfg.GRPC.HealthInterval, log.Named("grpc"))

	errCh := make(chan error, 2)
	go func() {
		if err := health.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	go func() {
		log.Info("storefront starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	// Graceful shutdown
	select {
	case <-ctx.Done():
	case err = <-errCh:
		log.Error("server failed", zap.Error(err))
	}

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		log.Error("server forced to shutdown", zap.Error(serr))
	}
	health.GracefulStop()

	log.Info("server exited")
	return err
}
