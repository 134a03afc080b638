package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	slogmulti "github.com/samber/slog-multi"
)

type env string

const (
	development env = "development"
	production  env = "production"
)

type config struct {
	Env             env
	APIAddr         string
	MongoURI        string
	StackTraces     bool
	TypeBaseURL     string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

func loadConfig() (*config, error) {
	_ = godotenv.Load(".env")

	cfg := &config{
		Env:         env(get("ENVIRONMENT", string(production))),
		APIAddr:     get("API_ADDR", ":8080"),
		MongoURI:    get("MONGO_URI", ""),
		TypeBaseURL: get("PROBLEM_TYPE_BASE_URL", ""),
		CORSOrigins: list(get("CORS_ORIGINS", "")),
	}

	var err error
	if cfg.StackTraces, err = parseBool("PROBLEM_STACK_TRACES", cfg.Env == development); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = parseDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	return cfg, nil
}

func get(name string, alt string) string {
	v, ok := os.LookupEnv(name)
	if !ok {
		return alt
	}
	return v
}

func parseBool(name string, alt bool) (bool, error) {
	raw := strings.TrimSpace(get(name, ""))
	if raw == "" {
		return alt, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("environment variable %s: %w", name, err)
	}
	return v, nil
}

func parseDuration(name string, alt time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(get(name, ""))
	if raw == "" {
		return alt, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s: %w", name, err)
	}
	return v, nil
}

func list(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

// newLogger writes JSON to stdout. Development builds also get readable
// debug output on stderr.
func newLogger(e env) *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})

	if e == development {
		handler = slogmulti.Fanout(handler, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
