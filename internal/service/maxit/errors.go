package maxit

import "fmt"

// TransportError - сетевая ошибка: отказ в соединении, DNS, таймаут, недоступная база.
type TransportError struct {
	Op     string
	Target string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("maxit: %s %s: %v", e.Op, e.Target, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError - Maxit ответил статусом 4xx/5xx.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("maxit: HTTP %d: %s", e.Status, e.Body)
}

// DecodeError - тело ответа не является корректным JSON ожидаемой формы.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("maxit: decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
