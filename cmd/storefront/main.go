package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"example.com/storefront/internal/config"
	"example.com/storefront/internal/infra/memory"
	"example.com/storefront/internal/infra/remote"
	apphttp "example.com/storefront/internal/interface/http"
	"example.com/storefront/internal/metrics"
	cartuc "example.com/storefront/internal/usecase/cart"
	cataloguc "example.com/storefront/internal/usecase/catalog"
	"example.com/storefront/internal/usecase/session"
	"example.com/storefront/pkg/retry"
	"example.com/storefront/pkg/sigctx"
)

func main() {
	sigCtx, stop := sigctx.NotifyContext()
	defer stop()

	cfg, err := config.Load("storefront", os.Args[1:], ":8080")
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(2)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	slog.Info("loaded config", "config", cfg)

	reg := metrics.NewRegistry("storefront")
	client, err := remote.NewClient(cfg.APIURL, remote.WithMetrics(reg))
	if err != nil {
		slog.Error("invalid api_url", "err", err)
		os.Exit(2)
	}

	catalog := cataloguc.NewStore(client)
	warmup := retry.Policy{MaxAttempts: 3, Backoff: retry.ConstantBackoff(time.Second)}
	err = retry.Do(sigCtx, warmup, func() error {
		_, err := catalog.Products(sigCtx)
		return err
	})
	if err != nil {
		// The first catalog request retries the load.
		slog.Warn("initial product load failed", "err", err)
	}

	carts := memory.NewCartRepository()
	go session.NewJanitor(cfg.SessionTTL, carts, catalog).Run(sigCtx)

	storefront := apphttp.NewStorefront(apphttp.StorefrontDependencies{
		Catalog:     catalog,
		CartService: cartuc.NewService(carts, client),
		Metrics:     reg,
	})
	server := apphttp.NewServer(cfg.HTTPAddr, storefront.Router())
	go server.Run(stop)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	server.Close(ctx)
}
