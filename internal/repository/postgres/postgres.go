package postgres

import (
	"context"
	"errors"
	"fmt"

	"woyofal/internal/domain"
	"woyofal/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MeterRepository - локальное хранилище счётчиков и клиентов Woyofal.
type MeterRepository struct {
	DB *gorm.DB
}

var _ domain.MeterStore = (*MeterRepository)(nil)

func NewMeterRepository(db *gorm.DB) *MeterRepository {
	return &MeterRepository{DB: db}
}

// Поиск счётчика по номеру вместе с клиентом
func (r *MeterRepository) FindMeterByNumber(ctx context.Context, number string) (*model.Meter, error) {
	var meter model.Meter
	if err := r.DB.WithContext(ctx).Where("number = ?", number).First(&meter).Error; err != nil {
		return nil, translate(err, "find meter")
	}
	if meter.ClientID == nil {
		return &meter, nil
	}

	var client model.Client
	err := r.DB.WithContext(ctx).First(&client, *meter.ClientID).Error
	switch {
	case err == nil:
		meter.Client = &client
	case errors.Is(err, gorm.ErrRecordNotFound):
		// клиент удалён, счётчик отдаём без него
	default:
		return nil, fmt.Errorf("find meter client: %w", err)
	}
	return &meter, nil
}

// Все счётчики, упорядоченные по номеру
func (r *MeterRepository) ListMeters(ctx context.Context) ([]model.Meter, error) {
	var meters []model.Meter
	err := r.DB.WithContext(ctx).Preload("Client").Order("number").Find(&meters).Error
	if err != nil {
		return nil, fmt.Errorf("list meters: %w", err)
	}
	return meters, nil
}

func (r *MeterRepository) FindClientByNameAndFirstName(ctx context.Context, name, firstName string) (*model.Client, error) {
	var client model.Client
	err := r.DB.WithContext(ctx).
		Where("name = ? AND first_name = ?", name, firstName).
		First(&client).Error
	if err != nil {
		return nil, translate(err, "find client")
	}
	return &client, nil
}

// Вставка клиента, возвращает его id. Если пара (имя, фамилия) уже занята,
// например параллельной синхронизацией, возвращается id существующей записи.
func (r *MeterRepository) CreateClient(ctx context.Context, client *model.Client) (uint, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "first_name"}},
			DoNothing: true,
		}).
		Create(client)
	if res.Error != nil {
		return 0, fmt.Errorf("create client: %w", res.Error)
	}
	if res.RowsAffected > 0 && client.ID != 0 {
		return client.ID, nil
	}

	// уникальный индекс учитывает и мягко удалённые записи
	var existing model.Client
	err := r.DB.WithContext(ctx).Unscoped().
		Where("name = ? AND first_name = ?", client.Name, client.FirstName).
		First(&existing).Error
	if err != nil {
		return 0, translate(err, "reselect client")
	}
	client.ID = existing.ID
	return existing.ID, nil
}

// Вставка счётчика. При конфликте по номеру обновляется только active.
func (r *MeterRepository) CreateMeter(ctx context.Context, meter *model.Meter) error {
	err := r.DB.WithContext(ctx).Omit("Client").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "number"}},
			DoUpdates: clause.AssignmentColumns([]string{"active", "updated_at"}),
		}).
		Create(meter).Error
	if err != nil {
		return fmt.Errorf("create meter: %w", err)
	}
	return nil
}

// Обновление счётчика: меняется только поле active
func (r *MeterRepository) UpdateMeter(ctx context.Context, meter *model.Meter) error {
	res := r.DB.WithContext(ctx).Model(&model.Meter{}).
		Where("id = ?", meter.ID).
		Update("active", meter.Active)
	if res.Error != nil {
		return fmt.Errorf("update meter: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MeterRepository) Transaction(ctx context.Context, fn func(store domain.MeterStore) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&MeterRepository{DB: tx})
	})
}

func (r *MeterRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func translate(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
