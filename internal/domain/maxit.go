package domain

import (
	"context"

	"woyofal/internal/model"
)

// RemoteClient - доступ к партнёрской системе Maxit.
// FetchMeter возвращает ErrNotFound, если счётчика нет, и ErrUnavailable, если Maxit не настроен.
type RemoteClient interface {
	FetchMeter(ctx context.Context, number string) (model.RawRecord, error)
	SearchMeters(ctx context.Context, criteria model.SearchCriteria) ([]model.RawRecord, error)
	CheckHealth(ctx context.Context) model.ConnectionStatus
}
