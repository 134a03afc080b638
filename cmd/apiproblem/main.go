// Command apiproblem serves the info endpoints of the apiproblem packages
// behind the default router. Every error, including requests the OpenAPI
// validator rejects, is answered with an application/problem+json payload.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drblury/apiproblem/info"
	"github.com/drblury/apiproblem/probe"
	"github.com/drblury/apiproblem/responder"
	"github.com/drblury/apiproblem/router"
)

var version = "dev"

const infoPrefix = "/info"

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config, logger *slog.Logger) error {
	rsp := responder.NewResponder(
		responder.WithLogger(logger),
		responder.WithStackTraces(cfg.StackTraces),
		responder.WithTypeBaseURL(cfg.TypeBaseURL),
	)

	var readiness []probe.Func
	if cfg.MongoURI != "" {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return err
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				logger.Warn("mongo disconnect failed", "error", err)
			}
		}()
		readiness = append(readiness, probe.NewMongoPingProbe(client, nil))
	}

	doc := info.NewOpenAPIDocument("apiproblem", version, infoPrefix)
	ih := info.NewInfoHandler(
		info.WithInfoResponder(rsp),
		info.WithInfoProvider(func() any {
			return map[string]string{"version": version, "environment": string(cfg.Env)}
		}),
		info.WithOpenAPIDocument(doc),
		info.WithReadinessChecks(readiness...),
	)

	api := http.NewServeMux()
	ih.Mount(api, infoPrefix)

	srv := &http.Server{
		Addr: cfg.APIAddr,
		Handler: router.New(api,
			router.WithLogger(logger),
			router.WithResponder(rsp),
			router.WithSwagger(doc),
			router.WithConfig(router.Config{
				Timeout:         cfg.RequestTimeout,
				QuietdownRoutes: []string{infoPrefix + info.PathHealthz, infoPrefix + info.PathReadyz},
				HideHeaders:     []string{"Authorization", "Cookie"},
				CORS: router.CORSConfig{
					Origins: cfg.CORSOrigins,
					Methods: []string{http.MethodGet, http.MethodOptions},
					Headers: []string{"Content-Type", "Authorization"},
				},
			}),
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("listening", "addr", cfg.APIAddr, "environment", cfg.Env)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			_ = srv.Close()
		}

		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
