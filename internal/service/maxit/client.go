package maxit

import (
	"context"
	"time"

	"woyofal/internal/config"
	"woyofal/internal/domain"
	"woyofal/internal/model"

	"go.uber.org/zap"
)

// Transport - способ доступа к Maxit: HTTP API или прямое чтение её базы.
type Transport interface {
	Name() string
	FetchMeter(ctx context.Context, number string) (model.RawRecord, error)
	SearchMeters(ctx context.Context, criteria model.SearchCriteria) ([]model.RawRecord, error)
	// Ping возвращает версию API партнёра
	Ping(ctx context.Context) (string, error)
}

// Client выбирает транспорт по конфигурации: HTTP, если задан URL API, иначе база Maxit.
// Переключения с HTTP на базу при ошибке нет.
type Client struct {
	http   Transport
	db     Transport
	logger *zap.Logger
}

type Option func(*Client)

// WithHTTPTransport подменяет HTTP-транспорт.
func WithHTTPTransport(t Transport) Option {
	return func(c *Client) { c.http = t }
}

// WithDatabaseTransport подменяет транспорт базы Maxit.
func WithDatabaseTransport(t Transport) Option {
	return func(c *Client) { c.db = t }
}

func NewClient(cfg config.MaxitConfig, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{logger: logger.Named("maxit")}
	if cfg.HTTPEnabled() {
		c.http = NewHTTPTransport(cfg)
	}
	if cfg.DatabaseEnabled() {
		c.db = NewDatabaseTransport(cfg)
	}
	for _, opt := range opts {
		opt(c)
	}

	if t, err := c.transport(); err == nil {
		c.logger.Info("maxit transport selected", zap.String("transport", t.Name()))
	} else {
		c.logger.Warn("maxit is not configured, remote lookups will report not found")
	}
	return c
}

func (c *Client) transport() (Transport, error) {
	switch {
	case c.http != nil:
		return c.http, nil
	case c.db != nil:
		return c.db, nil
	default:
		return nil, domain.ErrUnavailable
	}
}

func (c *Client) FetchMeter(ctx context.Context, number string) (model.RawRecord, error) {
	t, err := c.transport()
	if err != nil {
		return nil, err
	}
	return t.FetchMeter(ctx, number)
}

func (c *Client) SearchMeters(ctx context.Context, criteria model.SearchCriteria) ([]model.RawRecord, error) {
	t, err := c.transport()
	if err != nil {
		return nil, err
	}
	return t.SearchMeters(ctx, criteria)
}

// CheckHealth никогда не возвращает ошибку: она попадает в поле Error статуса.
func (c *Client) CheckHealth(ctx context.Context) model.ConnectionStatus {
	t, err := c.transport()
	if err != nil {
		msg := err.Error()
		return model.ConnectionStatus{Error: &msg}
	}

	start := time.Now()
	version, err := t.Ping(ctx)
	if err != nil {
		c.logger.Warn("maxit health check failed", zap.String("transport", t.Name()), zap.Error(err))
		msg := err.Error()
		return model.ConnectionStatus{Transport: t.Name(), Error: &msg}
	}

	elapsed := float64(time.Since(start).Microseconds()) / 1000
	return model.ConnectionStatus{
		Connected:    true,
		ResponseTime: &elapsed,
		APIVersion:   version,
		Transport:    t.Name(),
	}
}
