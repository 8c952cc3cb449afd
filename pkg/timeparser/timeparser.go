package timeparser

import (
	"fmt"
	"time"
)

// layouts в порядке проверки
var layouts = []string{
	"2006-01-02 15:04:05",           // формат date('Y-m-d H:i:s') у Maxit
	time.RFC3339Nano,                // RFC3339 с долями секунды
	"2006-01-02 15:04:05.999999-07", // timestamp with time zone из Postgres
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parse разбирает метку времени одного из известных форматов. Результат в UTC.
func Parse(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("failed to parse timestamp '%s': %w", value, lastErr)
}
