package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	ServerConfig
	DBConfig
	MaxitConfig
}

type ServerConfig struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"woyofal"`
	Addr        string `envconfig:"HTTP_ADDR" default:":8080"`
	GinMode     string `envconfig:"GIN_MODE" default:"release"`
}

// DBConfig описывает локальную базу (счётчики и клиенты Woyofal).
type DBConfig struct {
	URL     string `envconfig:"DATABASE_URL" masked:"url"`
	User    string `envconfig:"DB_USER" default:"postgres" masked:"true"`
	Pass    string `envconfig:"DB_PASSWORD" masked:"true"`
	Host    string `envconfig:"DB_HOST" default:"localhost"`
	DBName  string `envconfig:"DB_NAME" default:"woyofal"`
	Port    string `envconfig:"DB_PORT" default:"5432"`
	SSLMode string `envconfig:"DB_SSLMODE" default:"disable"`
}

// DSN возвращает строку подключения; DATABASE_URL имеет приоритет над DB_*.
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"user=%s password=%s host=%s dbname=%s port=%s sslmode=%s",
		c.User, c.Pass, c.Host, c.DBName, c.Port, c.SSLMode,
	)
}

// MaxitConfig описывает партнёрскую систему Maxit: HTTP API и/или прямой доступ к её базе.
type MaxitConfig struct {
	APIURL     string        `envconfig:"MAXIT_API_URL"`
	APIKey     string        `envconfig:"MAXIT_API_KEY" masked:"true"`
	Timeout    int           `envconfig:"MAXIT_TIMEOUT" default:"30"`
	DBHost     string        `envconfig:"MAXIT_DB_HOST"`
	DBPort     string        `envconfig:"MAXIT_DB_PORT" default:"5432"`
	DBUser     string        `envconfig:"MAXIT_DB_USER" masked:"true"`
	DBPassword string        `envconfig:"MAXIT_DB_PASSWORD" masked:"true"`
	DBName     string        `envconfig:"MAXIT_DB_NAME"`
	DBSSLMode  string        `envconfig:"MAXIT_DB_SSLMODE" default:"require"`
	CacheTTL   time.Duration `envconfig:"MAXIT_CACHE_TTL" default:"0s"`
}

// HTTPEnabled сообщает, задан ли базовый URL API Maxit.
func (c MaxitConfig) HTTPEnabled() bool {
	return strings.TrimSpace(c.APIURL) != ""
}

// DatabaseEnabled сообщает, заданы ли реквизиты прямого доступа к базе Maxit.
// Пароль не обязателен.
func (c MaxitConfig) DatabaseEnabled() bool {
	return c.DBHost != "" && c.DBUser != "" && c.DBName != ""
}

// RequestTimeout возвращает общий таймаут запроса к API; неположительное значение даёт 30 секунд.
func (c MaxitConfig) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// DatabaseDSN собирает URL подключения к базе Maxit для lib/pq. Пустой sslmode даёт require.
func (c MaxitConfig) DatabaseDSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   c.DBHost,
		Path:   "/" + c.DBName,
	}
	if c.DBPort != "" {
		u.Host = c.DBHost + ":" + c.DBPort
	}
	if c.DBPassword != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	} else {
		u.User = url.User(c.DBUser)
	}
	q := url.Values{}
	q.Set("connect_timeout", "10")
	sslMode := c.DBSSLMode
	if sslMode == "" {
		sslMode = "require"
	}
	q.Set("sslmode", sslMode)
	u.RawQuery = q.Encode()
	return u.String()
}
