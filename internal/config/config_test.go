package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "PORT", "CORS_ORIGINS", "CLIENT_URL", "QUIZZY_REQUEST_TIMEOUT",
		"QUIZZY_API_BASE", "QUIZZY_DB", "QUIZZY_LOG_LEVEL", "QUIZZY_LOG_FORMAT"} {
		t.Setenv(k, "")
	}

	c := FromEnv()
	if c.HTTPAddr != ":5000" {
		t.Errorf("HTTPAddr = %q, want :5000", c.HTTPAddr)
	}
	if len(c.CORSOrigins) != 1 || c.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", c.CORSOrigins)
	}
	if c.RequestTimeout != 3*time.Minute {
		t.Errorf("RequestTimeout = %s", c.RequestTimeout)
	}
	if c.APIBase != "http://localhost:5000" {
		t.Errorf("APIBase = %q", c.APIBase)
	}
	if c.LogLevel != slog.LevelInfo || c.LogFormat != "text" {
		t.Errorf("log settings = %v %q", c.LogLevel, c.LogFormat)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "8081")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("CLIENT_URL", "http://localhost:5173")
	t.Setenv("QUIZZY_REQUEST_TIMEOUT", "45")
	t.Setenv("QUIZZY_API_BASE", "http://quiz.local:9000/")
	t.Setenv("QUIZZY_LOG_LEVEL", "debug")
	t.Setenv("QUIZZY_LOG_FORMAT", "json")

	c := FromEnv()
	if c.HTTPAddr != ":8081" {
		t.Errorf("HTTPAddr = %q", c.HTTPAddr)
	}
	if len(c.CORSOrigins) != 1 || c.CORSOrigins[0] != "http://localhost:5173" {
		t.Errorf("CORSOrigins = %v", c.CORSOrigins)
	}
	if c.RequestTimeout != 45*time.Second {
		t.Errorf("RequestTimeout = %s", c.RequestTimeout)
	}
	if c.APIBase != "http://quiz.local:9000" {
		t.Errorf("APIBase = %q", c.APIBase)
	}
	if c.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", c.LogLevel)
	}

	t.Setenv("HTTP_ADDR", "127.0.0.1:7000")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	c = FromEnv()
	if c.HTTPAddr != "127.0.0.1:7000" {
		t.Errorf("HTTP_ADDR not preferred: %q", c.HTTPAddr)
	}
	if len(c.CORSOrigins) != 2 || c.CORSOrigins[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", c.CORSOrigins)
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	c := Config{LogLevel: slog.LevelWarn, LogFormat: "json"}
	l := c.NewLogger(&buf)

	l.Info("hidden")
	l.Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"k":"v"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("QUIZZY_TEST_FROM_FILE=file\nQUIZZY_TEST_PRESET=file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("QUIZZY_TEST_PRESET", "env")
	t.Setenv("QUIZZY_TEST_FROM_FILE", "")
	os.Unsetenv("QUIZZY_TEST_FROM_FILE")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("QUIZZY_TEST_FROM_FILE") })

	if got := os.Getenv("QUIZZY_TEST_FROM_FILE"); got != "file" {
		t.Errorf("QUIZZY_TEST_FROM_FILE = %q, want file", got)
	}
	if got := os.Getenv("QUIZZY_TEST_PRESET"); got != "env" {
		t.Errorf("QUIZZY_TEST_PRESET = %q, want env (existing value wins)", got)
	}
}
