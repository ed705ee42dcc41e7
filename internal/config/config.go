package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "CONFIG_FILE"

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type DB struct {
	Driver          string `mapstructure:"driver"`
	DSN             string `mapstructure:"dsn"`
	Name            string `mapstructure:"name"`
	ConnectAttempts int    `mapstructure:"connect_attempts"`
}

type Config struct {
	LogLevel        slog.Level    `mapstructure:"log_level"`
	HTTPAddr        string        `mapstructure:"http_addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	DB              DB            `mapstructure:"db"`
	APIURL          string        `mapstructure:"api_url"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
}

// Load reads configuration for the named binary. Values come from defaults,
// then the optional config file (--config or CONFIG_FILE), then environment
// variables such as HTTP_ADDR, DB_DSN or API_URL.
func Load(name string, args []string, httpAddr string) (Config, error) {
	const op = "config.Load"

	path, err := configFilepath(name, args)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("http_addr", httpAddr)
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("db.driver", DriverMongo)
	v.SetDefault("db.dsn", "mongodb://localhost:27017")
	v.SetDefault("db.name", "store")
	v.SetDefault("db.connect_attempts", 5)
	v.SetDefault("api_url", "http://localhost:5000")
	v.SetDefault("session_ttl", "30m")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%s: read %s: %w", op, path, err)
		}
	}

	var cfg Config
	err = v.UnmarshalExact(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.DB.Driver {
	case DriverMySQL, DriverPostgres, DriverMongo:
	default:
		errs = append(errs, fmt.Errorf("unknown db.driver %q", c.DB.Driver))
	}
	if c.DB.ConnectAttempts < 1 {
		errs = append(errs, errors.New("db.connect_attempts must be positive"))
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http_addr is empty"))
	}
	if c.APIURL == "" {
		errs = append(errs, errors.New("api_url is empty"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("session_ttl must be positive"))
	}
	return errors.Join(errs...)
}

func configFilepath(name string, args []string) (string, error) {
	cmdLine := pflag.NewFlagSet(name, pflag.ContinueOnError)
	arg := cmdLine.String("config", "", "config file")
	if err := cmdLine.Parse(args); err != nil {
		return "", err
	}
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env, nil
	}
	return *arg, nil
}

// LogValue keeps the DSN out of logs.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("log_level", c.LogLevel.String()),
		slog.String("http_addr", c.HTTPAddr),
		slog.Duration("shutdown_timeout", c.ShutdownTimeout),
		slog.String("db_driver", c.DB.Driver),
		slog.String("db_name", c.DB.Name),
		slog.Int("db_connect_attempts", c.DB.ConnectAttempts),
		slog.String("api_url", c.APIURL),
		slog.Duration("session_ttl", c.SessionTTL),
	)
}
