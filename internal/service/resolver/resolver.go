package resolver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"woyofal/internal/config"
	"woyofal/internal/domain"
	"woyofal/internal/model"
	"woyofal/internal/service/maxit"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Resolver решает, откуда брать данные счётчика: локальная база или Maxit,
// и переносит записи Maxit в локальную базу.
type Resolver struct {
	store      domain.MeterStore
	remote     domain.RemoteClient
	normalizer *maxit.Normalizer
	// nil, если MAXIT_CACHE_TTL не задан
	cache  *gocache.Cache
	logger *zap.Logger
}

type Option func(*Resolver)

// WithClock задаёт источник времени для нормализации.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.normalizer = maxit.NewNormalizer(nil, now) }
}

func WithNormalizer(n *maxit.Normalizer) Option {
	return func(r *Resolver) { r.normalizer = n }
}

func NewResolver(store domain.MeterStore, remote domain.RemoteClient, cfg config.MaxitConfig, logger *zap.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		store:      store,
		remote:     remote,
		normalizer: maxit.NewNormalizer(nil, nil),
		logger:     logger.Named("resolver"),
	}
	if cfg.CacheTTL > 0 {
		r.cache = gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LookupFromRemote ищет счётчик в Maxit. Ошибки Maxit не возвращаются: они логируются
// и дают результат «не найден» с причиной в Cause.
func (r *Resolver) LookupFromRemote(ctx context.Context, number string) Lookup {
	if r.cache != nil {
		if x, ok := r.cache.Get(number); ok {
			return found(x.(model.MeterRecord))
		}
	}

	l := r.fetch(ctx, number)
	if l.Found() && r.cache != nil {
		r.cache.Set(number, l.Record, gocache.DefaultExpiration)
	}
	return l
}

func (r *Resolver) fetch(ctx context.Context, number string) Lookup {
	if r.remote == nil {
		return Lookup{Outcome: OutcomeUnavailable, Cause: domain.ErrUnavailable}
	}

	raw, err := r.remote.FetchMeter(ctx, number)
	if err != nil {
		l := failed(err)
		if l.Outcome == OutcomeRemoteFailure {
			r.logger.Warn("maxit lookup failed", zap.String("numero", number), zap.Error(err))
		}
		return l
	}

	rec := r.normalizer.Normalize(raw)
	if rec.Number == "" {
		rec.Number = number
	}
	return found(rec)
}

// SearchRemote ищет счётчики в Maxit. Пустые критерии дают ErrInvalidRequest,
// ошибка Maxit даёт пустой результат.
func (r *Resolver) SearchRemote(ctx context.Context, criteria model.SearchCriteria) ([]model.MeterRecord, error) {
	criteria = criteria.Clean()
	if criteria.IsEmpty() {
		return nil, fmt.Errorf("search criteria: %w", domain.ErrInvalidRequest)
	}
	if r.remote == nil {
		return []model.MeterRecord{}, nil
	}

	raws, err := r.remote.SearchMeters(ctx, criteria)
	if err != nil {
		if !errors.Is(err, domain.ErrUnavailable) {
			r.logger.Warn("maxit search failed", zap.Any("criteria", criteria.Payload()), zap.Error(err))
		}
		return []model.MeterRecord{}, nil
	}

	records := make([]model.MeterRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, r.normalizer.Normalize(raw))
	}
	return records, nil
}

// Synchronize переносит счётчик из Maxit в локальную базу в одной транзакции.
// Клиент ищется по точной паре (имя, фамилия) и создаётся при отсутствии; у существующего
// счётчика обновляется только Active. Кеш не используется.
func (r *Resolver) Synchronize(ctx context.Context, number string) (Lookup, error) {
	l := r.fetch(ctx, number)
	if !l.Found() {
		return l, nil
	}
	rec := l.Record

	var clientID *uint
	err := r.store.Transaction(ctx, func(tx domain.MeterStore) error {
		id, err := r.ensureClient(ctx, tx, rec)
		if err != nil {
			return err
		}
		clientID = id

		meter, err := tx.FindMeterByNumber(ctx, rec.Number)
		switch {
		case err == nil:
			meter.Active = rec.Active
			if err := tx.UpdateMeter(ctx, meter); err != nil {
				return fmt.Errorf("update meter: %w", err)
			}
			if clientID == nil {
				clientID = meter.ClientID
			}
			return nil
		case errors.Is(err, domain.ErrNotFound):
			meter = &model.Meter{
				Number:    rec.Number,
				ClientID:  clientID,
				Active:    rec.Active,
				CreatedOn: rec.CreatedAt,
				Source:    model.SourceMaxit,
				SyncedAt:  rec.SyncedAt,
			}
			if err := tx.CreateMeter(ctx, meter); err != nil {
				return fmt.Errorf("create meter: %w", err)
			}
			return nil
		default:
			return fmt.Errorf("find meter: %w", err)
		}
	})
	if err != nil {
		r.logger.Error("meter synchronization failed", zap.String("numero", number), zap.Error(err))
		return Lookup{}, fmt.Errorf("synchronize %s: %w", number, err)
	}

	rec.ClientID = ""
	if clientID != nil {
		rec.ClientID = strconv.FormatUint(uint64(*clientID), 10)
	}
	if r.cache != nil {
		r.cache.Delete(number)
	}
	r.logger.Info("meter synchronized", zap.String("numero", rec.Number), zap.String("client_id", rec.ClientID))
	return found(rec), nil
}

// ensureClient возвращает id локального клиента; без имени клиента у Maxit возвращает nil.
func (r *Resolver) ensureClient(ctx context.Context, tx domain.MeterStore, rec model.MeterRecord) (*uint, error) {
	if strings.TrimSpace(rec.ClientName) == "" {
		return nil, nil
	}

	client, err := tx.FindClientByNameAndFirstName(ctx, rec.ClientName, rec.ClientFirstName)
	if err == nil {
		return &client.ID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find client: %w", err)
	}

	id, err := tx.CreateClient(ctx, &model.Client{
		Name:      rec.ClientName,
		FirstName: rec.ClientFirstName,
		Phone:     rec.ClientPhone,
		Address:   rec.ClientAddress,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &id, nil
}

// Resolve ищет счётчик сначала локально, затем в Maxit.
func (r *Resolver) Resolve(ctx context.Context, number string) (Lookup, error) {
	meter, err := r.store.FindMeterByNumber(ctx, number)
	if err == nil {
		return found(meter.Record()), nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return Lookup{}, fmt.Errorf("find local meter: %w", err)
	}
	return r.LookupFromRemote(ctx, number), nil
}

func (r *Resolver) ListLocal(ctx context.Context) ([]model.MeterRecord, error) {
	meters, err := r.store.ListMeters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list meters: %w", err)
	}
	records := make([]model.MeterRecord, 0, len(meters))
	for _, m := range meters {
		records = append(records, m.Record())
	}
	return records, nil
}

func (r *Resolver) CheckRemote(ctx context.Context) model.ConnectionStatus {
	if r.remote == nil {
		msg := domain.ErrUnavailable.Error()
		return model.ConnectionStatus{Error: &msg}
	}
	return r.remote.CheckHealth(ctx)
}

// CheckLocal проверяет соединение с локальной базой.
func (r *Resolver) CheckLocal(ctx context.Context) error {
	return r.store.Ping(ctx)
}
