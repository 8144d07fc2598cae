package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr          string
	LogLevel          slog.Level
	AppEnv            string
	DefaultDeck       string
	WebhookURL        string
	WebhookTimeout    time.Duration
	AnimationSteps    int
	AnimationDuration time.Duration
	SessionTTL        time.Duration
	WSAllowedOrigins  []string
	TracesExporter    string
	TracesPretty      bool
	TracesSampler     string
	TracesSamplerArg  string
}

// Load reads the configuration from the environment. Variables in a .env
// file in the working directory (or ENV_FILE) fill in whatever is unset.
func Load() (Config, error) {
	if err := loadDotEnv(envOr("ENV_FILE", ".env")); err != nil {
		return Config{}, err
	}

	c := Config{
		HTTPAddr:          envOr("HTTP_ADDR", ":8080"),
		AppEnv:            envOr("APP_ENV", "development"),
		DefaultDeck:       envOr("DEFAULT_DECK", "tarot"),
		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		WebhookTimeout:    5 * time.Second,
		AnimationSteps:    7,
		AnimationDuration: time.Second,
		SessionTTL:        2 * time.Hour,
		WSAllowedOrigins:  parseList(os.Getenv("WS_ALLOWED_ORIGINS")),
		TracesExporter:    envOr("OTEL_TRACES_EXPORTER", "none"),
		TracesSampler:     os.Getenv("OTEL_TRACES_SAMPLER"),
		TracesSamplerArg:  os.Getenv("OTEL_TRACES_SAMPLER_ARG"),
	}

	var err error
	if c.WebhookTimeout, err = durationEnv("WEBHOOK_TIMEOUT", c.WebhookTimeout); err != nil {
		return Config{}, err
	}
	if c.AnimationDuration, err = durationEnv("ANIMATION_DURATION", c.AnimationDuration); err != nil {
		return Config{}, err
	}
	if c.SessionTTL, err = durationEnv("SESSION_TTL", c.SessionTTL); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("ANIMATION_STEPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("invalid ANIMATION_STEPS %q: must be a positive integer", v)
		}
		c.AnimationSteps = n
	}
	if c.AnimationDuration <= 0 {
		return Config{}, fmt.Errorf("invalid ANIMATION_DURATION %s: must be positive", c.AnimationDuration)
	}

	if v := os.Getenv("TRACING_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TRACING_PRETTY %q: %w", v, err)
		}
		c.TracesPretty = b
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	if c.WebhookURL != "" && !strings.HasPrefix(c.WebhookURL, "https://") && !strings.HasPrefix(c.WebhookURL, "http://") {
		return Config{}, fmt.Errorf("invalid WEBHOOK_URL %q: must be an http(s) URL", c.WebhookURL)
	}

	return c, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
