package timeparser

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	want := time.Date(2025, 12, 29, 10, 30, 45, 0, time.UTC)
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"maxit format", "2025-12-29 10:30:45", want},
		{"rfc3339", "2025-12-29T10:30:45Z", want},
		{"rfc3339 with offset", "2025-12-29T11:30:45+01:00", want},
		{"postgres timestamptz", "2025-12-29 10:30:45+00", want},
		{"no zone", "2025-12-29T10:30:45", want},
		{"date only", "2025-12-29", time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Failed to parse timestamp: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
			if got.Location() != time.UTC {
				t.Errorf("Expected UTC location, got %v", got.Location())
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse("29/12/2025"); err == nil {
		t.Error("Expected error for invalid timestamp")
	}
}
