package config

import (
	"os"
	"strings"
	"testing"
	"time"

	pkg_config "woyofal/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVICE_NAME", "MAXIT_API_URL", "MAXIT_TIMEOUT", "MAXIT_DB_HOST", "MAXIT_CACHE_TTL", "DATABASE_URL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	var cfg Config
	if err := pkg_config.LoadConfigs(&cfg); err != nil {
		t.Fatalf("LoadConfigs вернул ошибку: %v", err)
	}

	if cfg.ServiceName != "woyofal" {
		t.Errorf("ожидали ServiceName=woyofal, получили %s", cfg.ServiceName)
	}
	if cfg.MaxitConfig.Timeout != 30 {
		t.Errorf("ожидали Timeout=30, получили %d", cfg.MaxitConfig.Timeout)
	}
	if cfg.MaxitConfig.HTTPEnabled() || cfg.MaxitConfig.DatabaseEnabled() {
		t.Error("ни один транспорт Maxit не должен быть включён по умолчанию")
	}
	if cfg.MaxitConfig.CacheTTL != 0 {
		t.Errorf("ожидали CacheTTL=0, получили %s", cfg.MaxitConfig.CacheTTL)
	}
}

func TestLoadMaxit(t *testing.T) {
	t.Setenv("MAXIT_API_URL", "https://maxit.example.sn")
	t.Setenv("MAXIT_API_KEY", "secret")
	t.Setenv("MAXIT_TIMEOUT", "12")
	t.Setenv("MAXIT_DB_HOST", "db.maxit")
	t.Setenv("MAXIT_DB_USER", "reader")
	t.Setenv("MAXIT_DB_NAME", "maxit")
	t.Setenv("MAXIT_CACHE_TTL", "45s")

	var cfg Config
	if err := pkg_config.LoadConfigs(&cfg); err != nil {
		t.Fatalf("LoadConfigs вернул ошибку: %v", err)
	}

	m := cfg.MaxitConfig
	if !m.HTTPEnabled() || !m.DatabaseEnabled() {
		t.Fatal("ожидали оба транспорта включёнными")
	}
	if m.RequestTimeout() != 12*time.Second {
		t.Errorf("ожидали 12s, получили %s", m.RequestTimeout())
	}
	if m.CacheTTL != 45*time.Second {
		t.Errorf("ожидали 45s, получили %s", m.CacheTTL)
	}
}

func TestRequestTimeoutFallback(t *testing.T) {
	if got := (MaxitConfig{Timeout: 0}).RequestTimeout(); got != 30*time.Second {
		t.Errorf("ожидали 30s, получили %s", got)
	}
}

func TestDatabaseEnabledWithoutPassword(t *testing.T) {
	m := MaxitConfig{DBHost: "h", DBUser: "u", DBName: "n"}
	if !m.DatabaseEnabled() {
		t.Error("пароль не должен быть обязательным")
	}
	if (MaxitConfig{DBHost: "h", DBName: "n"}).DatabaseEnabled() {
		t.Error("без пользователя транспорт базы включаться не должен")
	}
}

func TestDatabaseDSN(t *testing.T) {
	m := MaxitConfig{DBHost: "db", DBPort: "5433", DBUser: "u", DBPassword: "p@ss", DBName: "maxit"}
	dsn := m.DatabaseDSN()
	if !strings.HasPrefix(dsn, "postgres://u:p%40ss@db:5433/maxit?") {
		t.Errorf("неожиданный DSN: %s", dsn)
	}
	if !strings.Contains(dsn, "connect_timeout=10") {
		t.Errorf("DSN без connect_timeout: %s", dsn)
	}
	if !strings.Contains(dsn, "sslmode=require") {
		t.Errorf("по умолчанию ожидали sslmode=require: %s", dsn)
	}
}

func TestDatabaseDSN_SSLMode(t *testing.T) {
	t.Setenv("MAXIT_DB_SSLMODE", "verify-full")

	var cfg Config
	if err := pkg_config.LoadConfigs(&cfg); err != nil {
		t.Fatalf("LoadConfigs вернул ошибку: %v", err)
	}
	if dsn := cfg.MaxitConfig.DatabaseDSN(); !strings.Contains(dsn, "sslmode=verify-full") {
		t.Errorf("ожидали sslmode=verify-full: %s", dsn)
	}
}

func TestDSNPrefersURL(t *testing.T) {
	c := DBConfig{URL: "postgres://x@y/z", Host: "ignored"}
	if c.DSN() != "postgres://x@y/z" {
		t.Errorf("DATABASE_URL должен иметь приоритет, получили %s", c.DSN())
	}
	c.URL = ""
	if !strings.Contains(c.DSN(), "host=ignored") {
		t.Errorf("ожидали host в DSN: %s", c.DSN())
	}
}
