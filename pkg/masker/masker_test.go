package masker

import (
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

type maxitSection struct {
	APIKey   string `masked:"true"`
	APIURL   string
	CacheTTL time.Duration
}

type gatewayConfig struct {
	ServiceName string
	DatabaseURL string `masked:"url"`
	Maxit       maxitSection
	hidden      string
}

func TestMaskSensitiveData(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"secret", "s****t"},
		{"ab", "****"},
		{"a", "****"},
		{"", "****"},
	}
	for _, tt := range tests {
		got := maskSensitiveData(tt.in)
		if got != tt.want {
			t.Errorf("maskSensitiveData(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMaskURLPassword(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"postgres://woyofal:pgpass@db:5432/woyofal?sslmode=disable", "postgres://woyofal:xxxxx@db:5432/woyofal?sslmode=disable"},
		{"postgres://woyofal@db/woyofal", "postgres://woyofal@db/woyofal"},
		{"", ""},
		{"not a url", "n****l"},
	}
	for _, tt := range tests {
		if got := maskURLPassword(tt.in); got != tt.want {
			t.Errorf("maskURLPassword(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMaskStructFields(t *testing.T) {
	cfg := gatewayConfig{
		ServiceName: "woyofal",
		DatabaseURL: "postgres://u:p@db/w",
		Maxit: maxitSection{
			APIKey:   "maxit-key",
			APIURL:   "https://maxit.sn",
			CacheTTL: 30 * time.Second,
		},
		hidden: "never",
	}
	got := maskStructFields(reflect.ValueOf(cfg), reflect.TypeOf(cfg))

	if got["ServiceName"] != "woyofal" {
		t.Errorf("ServiceName field incorrect: got %v", got["ServiceName"])
	}
	if got["DatabaseURL"] != "postgres://u:xxxxx@db/w" {
		t.Errorf("DatabaseURL masked incorrectly: got %v", got["DatabaseURL"])
	}
	if _, ok := got["hidden"]; ok {
		t.Error("unexported field must not be logged")
	}

	inner, ok := got["Maxit"].(map[string]interface{})
	if !ok {
		t.Fatal("Maxit field not mapped correctly")
	}
	if inner["APIKey"] != "m****y" {
		t.Errorf("APIKey masked incorrectly: got %v", inner["APIKey"])
	}
	if inner["APIURL"] != "https://maxit.sn" {
		t.Errorf("APIURL field incorrect: got %v", inner["APIURL"])
	}
	if inner["CacheTTL"] != "30s" {
		t.Errorf("CacheTTL should be rendered as string: got %v", inner["CacheTTL"])
	}
}

func TestLogConfigs_Success(t *testing.T) {
	logger := zaptest.NewLogger(t)
	cfg := &gatewayConfig{ServiceName: "woyofal"}
	if err := LogConfigs(logger, cfg); err != nil {
		t.Errorf("LogConfigs returned error: %v", err)
	}
}

func TestLogConfigs_NotPointer(t *testing.T) {
	logger := zaptest.NewLogger(t)
	if err := LogConfigs(logger, gatewayConfig{}); err != ErrConfigNotPointer {
		t.Errorf("expected ErrConfigNotPointer, got %v", err)
	}
	name := "woyofal"
	if err := LogConfigs(logger, &name); err != ErrConfigNotPointer {
		t.Errorf("expected ErrConfigNotPointer for pointer to non-struct, got %v", err)
	}
}
