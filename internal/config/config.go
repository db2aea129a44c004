package config

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process settings for the server and the terminal client.
// LLM settings live in llm.Config.
type Config struct {
	HTTPAddr       string
	CORSOrigins    []string
	RequestTimeout time.Duration

	// APIBase is the server URL the terminal client talks to.
	APIBase string

	// DBPath overrides the default SQLite location when set.
	DBPath string

	LogLevel  slog.Level
	LogFormat string // text|json
}

// LoadDotEnv loads KEY=VALUE pairs from files (default ".env") into the
// environment. Variables already set win. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// FromEnv reads the configuration from environment variables.
func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":" + envOr("PORT", "5000")
	}
	origins := csvOr("CORS_ORIGINS", envOr("CLIENT_URL", "*"))

	return Config{
		HTTPAddr:       addr,
		CORSOrigins:    origins,
		RequestTimeout: envDuration("QUIZZY_REQUEST_TIMEOUT", 3*time.Minute),
		APIBase:        strings.TrimSuffix(envOr("QUIZZY_API_BASE", "http://localhost:5000"), "/"),
		DBPath:         os.Getenv("QUIZZY_DB"),
		LogLevel:       envLevel("QUIZZY_LOG_LEVEL", slog.LevelInfo),
		LogFormat:      envOr("QUIZZY_LOG_FORMAT", "text"),
	}
}

// NewLogger builds the process logger writing to w.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

func envLevel(k string, def slog.Level) slog.Level {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		return def
	}
	return l
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
