package model

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Meter - локальная запись счётчика.
type Meter struct {
	gorm.Model
	Number    string     `json:"numero" gorm:"type:varchar(64);not null;uniqueIndex"`
	ClientID  *uint      `json:"client_id"`
	Client    *Client    `json:"client,omitempty"`
	Active    bool       `json:"actif"`
	CreatedOn time.Time  `json:"date_creation" gorm:"column:date_creation"`
	Source    Source     `json:"source" gorm:"type:varchar(16)"`
	SyncedAt  *time.Time `json:"synced_at"`
}

// Record переводит локальную запись в каноническую форму. Источник всегда local,
// даже если счётчик когда-то был синхронизирован из Maxit.
func (m Meter) Record() MeterRecord {
	rec := MeterRecord{
		Number:    m.Number,
		Active:    m.Active,
		CreatedAt: m.CreatedOn,
		Source:    SourceLocal,
	}
	if m.ClientID != nil {
		rec.ClientID = strconv.FormatUint(uint64(*m.ClientID), 10)
	}
	if m.Client != nil {
		rec.ClientName = m.Client.Name
		rec.ClientFirstName = m.Client.FirstName
		rec.ClientPhone = m.Client.Phone
		rec.ClientAddress = m.Client.Address
	}
	return rec
}
