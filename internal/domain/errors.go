package domain

import "errors"

var (
	// ErrNotFound - запись отсутствует (локально или у партнёра).
	ErrNotFound = errors.New("not found")
	// ErrUnavailable - не настроен ни HTTP API, ни база Maxit.
	ErrUnavailable = errors.New("maxit: no transport configured")
	// ErrInvalidRequest - пустые критерии поиска или пустой параметр пути.
	ErrInvalidRequest = errors.New("invalid request")
)
