package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mekedron/yemek-cli/internal/cli"
	"github.com/mekedron/yemek-cli/internal/config"
	yemekgateway "github.com/mekedron/yemek-cli/internal/gateway/yemek"
	"github.com/mekedron/yemek-cli/internal/logging"
	"github.com/mekedron/yemek-cli/internal/service/profile"
)

var version = "dev"

const (
	baseURLEnv         = "YEMEK_BASE_URL"
	httpMinIntervalEnv = "YEMEK_HTTP_MIN_INTERVAL_MS"
	httpTimeoutEnv     = "YEMEK_HTTP_TIMEOUT_MS"
	logLevelEnv        = "YEMEK_LOG_LEVEL"
	logFormatEnv       = "YEMEK_LOG_FORMAT"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	logger := logging.FromEnv(os.Stderr, os.Getenv(logLevelEnv), os.Getenv(logFormatEnv))
	slog.SetDefault(logger)

	store, err := config.NewStore()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	minInterval := envMillis(httpMinIntervalEnv, 0)
	timeout := envMillis(httpTimeoutEnv, 0)
	deps := cli.Dependencies{
		NewAPI: func(baseURL string) yemekgateway.API {
			return yemekgateway.NewClient(
				yemekgateway.WithBaseURL(baseURL),
				yemekgateway.WithRequestMinInterval(minInterval),
				yemekgateway.WithTimeout(timeout),
			)
		},
		Profiles:   profile.NewResolver(store),
		Config:     store,
		Logger:     logger,
		EnvBaseURL: os.Getenv(baseURLEnv),
		Stdin:      os.Stdin,
		Version:    version,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	exitCode := cli.Execute(ctx, os.Args[1:], deps, os.Stdout, os.Stderr)
	stop()
	os.Exit(exitCode)
}

func envMillis(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
