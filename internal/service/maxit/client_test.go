package maxit

import (
	"context"
	"errors"
	"testing"

	"woyofal/internal/config"
	"woyofal/internal/domain"
	"woyofal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type spyTransport struct {
	name    string
	calls   int
	record  model.RawRecord
	err     error
	version string
}

func (s *spyTransport) Name() string { return s.name }

func (s *spyTransport) FetchMeter(context.Context, string) (model.RawRecord, error) {
	s.calls++
	return s.record, s.err
}

func (s *spyTransport) SearchMeters(context.Context, model.SearchCriteria) ([]model.RawRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []model.RawRecord{s.record}, nil
}

func (s *spyTransport) Ping(context.Context) (string, error) {
	s.calls++
	return s.version, s.err
}

func TestClient_PrefersHTTP(t *testing.T) {
	httpSpy := &spyTransport{name: "http", err: &UpstreamError{Status: 502}}
	dbSpy := &spyTransport{name: "database", record: model.RawRecord{"numero": "CPT1"}}
	c := NewClient(config.MaxitConfig{}, zaptest.NewLogger(t),
		WithHTTPTransport(httpSpy), WithDatabaseTransport(dbSpy))

	_, err := c.FetchMeter(context.Background(), "CPT1")

	var upstream *UpstreamError
	assert.ErrorAs(t, err, &upstream)
	assert.Equal(t, 1, httpSpy.calls)
	assert.Zero(t, dbSpy.calls, "no fallback from HTTP to database")
}

func TestClient_DatabaseWhenNoHTTP(t *testing.T) {
	dbSpy := &spyTransport{name: "database", record: model.RawRecord{"numero": "CPT1"}}
	c := NewClient(config.MaxitConfig{}, zaptest.NewLogger(t), WithDatabaseTransport(dbSpy))

	rec, err := c.FetchMeter(context.Background(), "CPT1")

	require.NoError(t, err)
	assert.Equal(t, "CPT1", rec["numero"])

	records, err := c.SearchMeters(context.Background(), model.SearchCriteria{Number: "CPT1"})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestClient_SelectsFromConfig(t *testing.T) {
	c := NewClient(config.MaxitConfig{
		APIURL: "http://maxit.local",
		DBHost: "db", DBUser: "u", DBName: "maxit",
	}, zaptest.NewLogger(t))

	tr, err := c.transport()
	require.NoError(t, err)
	assert.Equal(t, "http", tr.Name())

	c = NewClient(config.MaxitConfig{DBHost: "db", DBUser: "u", DBName: "maxit"}, zaptest.NewLogger(t))
	tr, err = c.transport()
	require.NoError(t, err)
	assert.Equal(t, "database", tr.Name())
}

func TestClient_Unconfigured(t *testing.T) {
	c := NewClient(config.MaxitConfig{DBHost: "db"}, zaptest.NewLogger(t))

	_, err := c.FetchMeter(context.Background(), "CPT1")
	assert.ErrorIs(t, err, domain.ErrUnavailable)

	_, err = c.SearchMeters(context.Background(), model.SearchCriteria{Number: "CPT1"})
	assert.ErrorIs(t, err, domain.ErrUnavailable)

	status := c.CheckHealth(context.Background())
	assert.False(t, status.Connected)
	assert.Nil(t, status.ResponseTime)
	require.NotNil(t, status.Error)
	assert.Equal(t, domain.ErrUnavailable.Error(), *status.Error)
}

func TestClient_CheckHealth(t *testing.T) {
	spy := &spyTransport{name: "http", version: "2.0"}
	c := NewClient(config.MaxitConfig{}, zaptest.NewLogger(t), WithHTTPTransport(spy))

	status := c.CheckHealth(context.Background())

	assert.True(t, status.Connected)
	require.NotNil(t, status.ResponseTime)
	assert.GreaterOrEqual(t, *status.ResponseTime, 0.0)
	assert.Equal(t, "2.0", status.APIVersion)
	assert.Equal(t, "http", status.Transport)
	assert.Nil(t, status.Error)
}

func TestClient_CheckHealthFailure(t *testing.T) {
	spy := &spyTransport{name: "database", err: errors.New("connection refused")}
	c := NewClient(config.MaxitConfig{}, zaptest.NewLogger(t), WithDatabaseTransport(spy))

	status := c.CheckHealth(context.Background())

	assert.False(t, status.Connected)
	assert.Nil(t, status.ResponseTime)
	require.NotNil(t, status.Error)
	assert.Contains(t, *status.Error, "connection refused")
}
