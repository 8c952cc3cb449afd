package model

import "time"

type Source string

const (
	SourceLocal Source = "local"
	SourceMaxit Source = "maxit"
)

// RawRecord - запись в том виде, в котором её вернул Maxit.
type RawRecord map[string]any

// MeterRecord - каноническое представление счётчика вместе с данными клиента.
type MeterRecord struct {
	Number          string     `json:"numero"`
	ClientID        string     `json:"client_id"`
	ClientName      string     `json:"client_nom"`
	ClientFirstName string     `json:"client_prenom"`
	ClientPhone     string     `json:"client_telephone"`
	ClientAddress   string     `json:"client_adresse"`
	Active          bool       `json:"actif"`
	CreatedAt       time.Time  `json:"date_creation"`
	Source          Source     `json:"source"`
	SyncedAt        *time.Time `json:"synced_at,omitempty"`
}

// Raw возвращает запись с каноническими ключами; повторная нормализация даёт ту же запись.
func (r MeterRecord) Raw() RawRecord {
	raw := RawRecord{
		"numero":           r.Number,
		"client_nom":       r.ClientName,
		"client_prenom":    r.ClientFirstName,
		"client_telephone": r.ClientPhone,
		"client_adresse":   r.ClientAddress,
		"actif":            r.Active,
		"date_creation":    r.CreatedAt.Format(time.RFC3339Nano),
	}
	if r.ClientID != "" {
		raw["client_id"] = r.ClientID
	}
	return raw
}

// ConnectionStatus - результат проверки связи с Maxit.
type ConnectionStatus struct {
	Connected bool `json:"connected"`
	// ResponseTime в миллисекундах, nil при ошибке
	ResponseTime *float64 `json:"response_time"`
	APIVersion   string   `json:"api_version,omitempty"`
	Transport    string   `json:"transport,omitempty"`
	Error        *string  `json:"error,omitempty"`
}
