// entry point of the application
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"savestream/internal/config"
	"savestream/internal/depmanager"
	httprouter "savestream/internal/infrastructure/delivery/http"
	"savestream/internal/observability"
	"savestream/internal/service"
	"savestream/internal/source"
	"savestream/internal/status"
	httpserver "savestream/pkg/http/server"
	"savestream/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.New()
	if err != nil {
		slog.Error("config new", slog.Any("error", err))
		stop()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Options{
		AddSource: true,
		Level:     cfg.App.LogLevel,
	})
	if err != nil {
		slog.WarnContext(ctx, "logger level invalid; defaulting to info", slog.Any("error", err))
	}

	metrics := observability.New()

	depMgr := depmanager.New(log, cfg)
	depMgr.Start(ctx)

	store := status.New(log)
	src := source.NewYTdlp(log, cfg)

	svc := service.New(cfg, log, store, src, depMgr, metrics)
	svc.Start(ctx)

	router := httprouter.New(log, svc, metrics)

	httpSrv := httpserver.New(router, httpserver.Options{
		Addr:            cfg.HTTP.Port,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	})

	log.InfoContext(ctx, "savestream started", slog.String("port", cfg.HTTP.Port))

	select {
	case <-ctx.Done():
	case err := <-httpSrv.Notify():
		log.ErrorContext(ctx, "http server", slog.Any("error", err))
		stop()
	}

	svc.Stop()

	err = httpSrv.Shutdown()
	if err != nil {
		log.Error(err.Error())
	}

	log.InfoContext(ctx, "savestream shut down gracefully")
}
