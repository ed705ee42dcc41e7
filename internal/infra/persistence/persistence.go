// Package persistence opens the product store selected by configuration.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"example.com/storefront/internal/config"
	domproduct "example.com/storefront/internal/domain/product"
	"example.com/storefront/internal/infra/persistence/mongo"
	"example.com/storefront/internal/infra/persistence/mysql"
	"example.com/storefront/internal/infra/persistence/postgres"
	"example.com/storefront/pkg/retry"
)

var connectBackoff = retry.ExponentialBackoff(500 * time.Millisecond)

// Store is an open product repository and the function releasing its
// connection.
type Store struct {
	Products domproduct.Repository
	Close    func() error
}

// Open connects to the configured driver, retrying up to
// cfg.ConnectAttempts times while the database is unreachable.
func Open(ctx context.Context, cfg config.DB) (Store, error) {
	const op = "persistence.Open"

	log := slog.With("op", op, "driver", cfg.Driver)

	connect, err := connector(cfg)
	if err != nil {
		return Store{}, fmt.Errorf("%s: %w", op, err)
	}

	attempt := 0
	store, err := retry.DoWithResult(ctx, retry.Policy{
		MaxAttempts: cfg.ConnectAttempts,
		Backoff:     connectBackoff,
		ShouldRetry: func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		},
	}, func() (Store, error) {
		attempt++
		s, err := connect(ctx)
		if err != nil {
			log.Warn("connect failed", "attempt", attempt, "err", err)
		}
		return s, err
	})
	if err != nil {
		return Store{}, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("connected", "attempts", attempt)
	return store, nil
}

func connector(cfg config.DB) (func(context.Context) (Store, error), error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		return func(ctx context.Context) (Store, error) {
			db, err := mysql.Open(ctx, cfg.DSN)
			if err != nil {
				return Store{}, err
			}
			return Store{Products: mysql.NewProductRepository(db), Close: db.Close}, nil
		}, nil
	case config.DriverPostgres:
		return func(ctx context.Context) (Store, error) {
			db, err := postgres.Open(ctx, cfg.DSN)
			if err != nil {
				return Store{}, err
			}
			return Store{Products: postgres.NewProductRepository(db), Close: db.Close}, nil
		}, nil
	case config.DriverMongo:
		return func(ctx context.Context) (Store, error) {
			client, coll, err := mongo.Open(ctx, cfg.DSN, cfg.Name)
			if err != nil {
				return Store{}, err
			}
			return Store{
				Products: mongo.NewProductRepository(coll),
				Close: func() error {
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					return client.Disconnect(ctx)
				},
			}, nil
		}, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}
