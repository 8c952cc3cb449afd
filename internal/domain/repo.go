package domain

import (
	"context"

	"woyofal/internal/model"
)

// MeterStore - локальное хранилище счётчиков и клиентов.
// Методы поиска возвращают ErrNotFound, если записи нет.
type MeterStore interface {
	FindMeterByNumber(ctx context.Context, number string) (*model.Meter, error)

	ListMeters(ctx context.Context) ([]model.Meter, error)

	// Точное совпадение по паре (имя, фамилия)
	FindClientByNameAndFirstName(ctx context.Context, name, firstName string) (*model.Client, error)

	// CreateClient возвращает id существующего клиента, если пара (имя, фамилия) уже занята.
	CreateClient(ctx context.Context, client *model.Client) (uint, error)

	// CreateMeter при уже существующем номере обновляет только Active.
	CreateMeter(ctx context.Context, meter *model.Meter) error

	UpdateMeter(ctx context.Context, meter *model.Meter) error

	// Transaction выполняет fn в одной транзакции; ошибка fn откатывает все записи.
	Transaction(ctx context.Context, fn func(store MeterStore) error) error

	Ping(ctx context.Context) error
}
