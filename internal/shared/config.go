package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	MetricsAddr     string
	RequestTimeout  time.Duration
	PlayBase        string
	AppsBase        string
	AppleAPIBase    string
	UpstreamRPS     int
	UpstreamTimeout time.Duration
	CollectWorkers  int
}

// Load reads configuration from the environment, after merging optional
// dotenv files (".env" when none are given). Variables already set in the
// environment win.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("file", f).Msg("dotenv file present but unreadable")
		}
	}

	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		RequestTimeout:  time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 0)) * time.Second,
		PlayBase:        env("PLAY_BASE_URL", "https://play.google.com"),
		AppsBase:        env("APPS_BASE_URL", "https://apps.apple.com"),
		AppleAPIBase:    env("APPLE_API_BASE_URL", "https://amp-api.apps.apple.com"),
		UpstreamRPS:     atoi("UPSTREAM_RPS", 5),
		UpstreamTimeout: time.Duration(atoi("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second,
		CollectWorkers:  atoi("COLLECT_WORKERS", 4),
	}
	if c.UpstreamRPS <= 0 {
		log.Warn().Int("rps", c.UpstreamRPS).Msg("UPSTREAM_RPS must be positive, using 5")
		c.UpstreamRPS = 5
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}
