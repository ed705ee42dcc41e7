package main

import (
	"context"
	"log/slog"
	"os"

	"example.com/storefront/internal/config"
	"example.com/storefront/internal/infra/persistence"
	apphttp "example.com/storefront/internal/interface/http"
	"example.com/storefront/internal/metrics"
	productuc "example.com/storefront/internal/usecase/product"
	"example.com/storefront/pkg/sigctx"
)

func main() {
	sigCtx, stop := sigctx.NotifyContext()
	defer stop()

	cfg, err := config.Load("api", os.Args[1:], ":5000")
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(2)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	slog.Info("loaded config", "config", cfg)

	store, err := persistence.Open(sigCtx, cfg.DB)
	if err != nil {
		slog.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("failed to close database", "err", err)
		}
	}()

	api := apphttp.NewAPI(apphttp.Dependencies{
		ProductService: productuc.NewService(store.Products),
		Metrics:        metrics.NewRegistry("api"),
	})
	server := apphttp.NewServer(cfg.HTTPAddr, api.Router())
	go server.Run(stop)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	server.Close(ctx)
}
