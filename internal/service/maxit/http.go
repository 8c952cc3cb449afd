package maxit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"woyofal/internal/config"
	"woyofal/internal/domain"
	"woyofal/internal/model"
)

const (
	userAgent       = "AppWoyofal/1.0"
	connectTimeout  = 10 * time.Second
	maxRedirects    = 3
	maxResponseSize = 10 * 1024 * 1024
)

// HTTPTransport ходит в REST API Maxit.
type HTTPTransport struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPTransport создает транспорт с таймаутом соединения 10 секунд, общим таймаутом
// из конфигурации и не более чем тремя редиректами.
func NewHTTPTransport(cfg config.MaxitConfig) *HTTPTransport {
	dialer := &net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.TLSHandshakeTimeout = connectTimeout

	return &HTTPTransport{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/"),
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout:   cfg.RequestTimeout(),
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
}

func (t *HTTPTransport) Name() string { return "http" }

// envelope - общий вид ответа Maxit
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Version any             `json:"version"`
}

func (t *HTTPTransport) FetchMeter(ctx context.Context, number string) (model.RawRecord, error) {
	env, err := t.do(ctx, http.MethodGet, "/api/compteurs/"+url.PathEscape(number), nil)
	if err != nil {
		return nil, err
	}
	if isNull(env.Data) {
		return nil, domain.ErrNotFound
	}

	var rec model.RawRecord
	if err := decodeJSON(env.Data, &rec); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("data is not an object: %w", err)}
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (t *HTTPTransport) SearchMeters(ctx context.Context, criteria model.SearchCriteria) ([]model.RawRecord, error) {
	env, err := t.do(ctx, http.MethodPost, "/api/compteurs/search", criteria.Payload())
	if err != nil {
		return nil, err
	}
	if isNull(env.Data) {
		return []model.RawRecord{}, nil
	}

	var items []json.RawMessage
	if err := decodeJSON(env.Data, &items); err != nil {
		// data не массив - партнёр ничего не нашёл
		return []model.RawRecord{}, nil
	}

	records := make([]model.RawRecord, 0, len(items))
	for _, item := range items {
		var rec model.RawRecord
		if err := decodeJSON(item, &rec); err != nil || rec == nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (t *HTTPTransport) Ping(ctx context.Context) (string, error) {
	env, err := t.do(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return "", err
	}
	switch v := env.Version.(type) {
	case string:
		if v != "" {
			return v, nil
		}
	case json.Number:
		return v.String(), nil
	}
	return "unknown", nil
}

func (t *HTTPTransport) do(ctx context.Context, method, path string, payload any) (*envelope, error) {
	target := t.baseURL + path

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("maxit: encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &TransportError{Op: method, Target: target, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: method, Target: target, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &TransportError{Op: method, Target: target, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode >= 400 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(raw)}
	}

	var env envelope
	if err := decodeJSON(raw, &env); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &env, nil
}

// decodeJSON разбирает ровно одно JSON-значение, числа остаются json.Number.
func decodeJSON(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	s := bytes.TrimSpace(raw)
	return len(s) == 0 || bytes.Equal(s, []byte("null"))
}
