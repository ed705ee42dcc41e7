package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/storefront/internal/config"
	"example.com/storefront/pkg/retry"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DB{Driver: "sqlite", ConnectAttempts: 3})
	require.ErrorContains(t, err, `unsupported driver "sqlite"`)
}

func TestOpen_RetriesThenFails(t *testing.T) {
	prev := connectBackoff
	connectBackoff = retry.ConstantBackoff(time.Millisecond)
	t.Cleanup(func() { connectBackoff = prev })

	_, err := Open(context.Background(), config.DB{
		Driver:          config.DriverMySQL,
		DSN:             "not a dsn",
		ConnectAttempts: 2,
	})
	require.ErrorContains(t, err, "mysql.Open")
}

func TestOpen_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Open(ctx, config.DB{Driver: config.DriverPostgres, DSN: "postgres://localhost/store", ConnectAttempts: 3})
	require.ErrorIs(t, err, context.Canceled)
}
