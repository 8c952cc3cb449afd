package maxit

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"woyofal/internal/model"
	"woyofal/pkg/timeparser"
)

// Field - каноническое поле MeterRecord.
type Field string

const (
	FieldNumber          Field = "number"
	FieldClientID        Field = "client_id"
	FieldClientName      Field = "client_name"
	FieldClientFirstName Field = "client_first_name"
	FieldClientPhone     Field = "client_phone"
	FieldClientAddress   Field = "client_address"
	FieldActive          Field = "active"
	FieldCreatedAt       Field = "created_at"
)

// Aliases - упорядоченные варианты ключей партнёра для каждого поля. Побеждает первый
// присутствующий ключ с не-null значением. Новая схема партнёра добавляется расширением таблицы.
type Aliases map[Field][]string

// DefaultAliases покрывает API Maxit (fr/en) и колонки её базы.
var DefaultAliases = Aliases{
	FieldNumber:          {"numero", "number", "numero_compteur"},
	FieldClientID:        {"client_id"},
	FieldClientName:      {"client_nom", "client_name"},
	FieldClientFirstName: {"client_prenom", "client_firstname"},
	FieldClientPhone:     {"client_telephone", "client_phone"},
	FieldClientAddress:   {"client_adresse", "client_address"},
	FieldActive:          {"actif", "active"},
	FieldCreatedAt:       {"date_creation", "created_at"},
}

// Normalizer приводит RawRecord к MeterRecord. Никогда не возвращает ошибку:
// отсутствующие или нечитаемые поля получают значения по умолчанию.
type Normalizer struct {
	aliases Aliases
	now     func() time.Time
}

// NewNormalizer создает нормализатор; nil aliases означает DefaultAliases, nil now - time.Now.
func NewNormalizer(aliases Aliases, now func() time.Time) *Normalizer {
	if aliases == nil {
		aliases = DefaultAliases
	}
	if now == nil {
		now = time.Now
	}
	return &Normalizer{aliases: aliases, now: now}
}

var defaultNormalizer = NewNormalizer(nil, nil)

// Normalize нормализует запись с таблицей DefaultAliases и текущим временем.
func Normalize(raw model.RawRecord) model.MeterRecord {
	return defaultNormalizer.Normalize(raw)
}

func (n *Normalizer) Normalize(raw model.RawRecord) model.MeterRecord {
	now := n.now().UTC()

	rec := model.MeterRecord{
		Number:          n.text(raw, FieldNumber),
		ClientID:        n.text(raw, FieldClientID),
		ClientName:      n.text(raw, FieldClientName),
		ClientFirstName: n.text(raw, FieldClientFirstName),
		ClientPhone:     n.text(raw, FieldClientPhone),
		ClientAddress:   n.text(raw, FieldClientAddress),
		Active:          true,
		CreatedAt:       now,
		Source:          model.SourceMaxit,
		SyncedAt:        &now,
	}

	if v, ok := n.lookup(raw, FieldActive); ok {
		rec.Active = Truthy(v)
	}
	if v, ok := n.lookup(raw, FieldCreatedAt); ok {
		if t, ok := timestamp(v); ok {
			rec.CreatedAt = t
		}
	}
	return rec
}

func (n *Normalizer) lookup(raw model.RawRecord, field Field) (any, bool) {
	for _, key := range n.aliases[field] {
		if v, ok := raw[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// text берёт первый ключ со скалярным значением; bool, массивы и объекты пропускаются как null.
func (n *Normalizer) text(raw model.RawRecord, field Field) string {
	for _, key := range n.aliases[field] {
		if s, ok := stringify(raw[key]); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func stringify(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case int:
		return strconv.Itoa(x), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano), true
	default:
		return "", false
	}
}

var falsyStrings = map[string]struct{}{
	"": {}, "0": {}, "false": {}, "f": {}, "no": {}, "off": {}, "n": {},
}

// Truthy приводит значение партнёра к bool: числа - не ноль, строки - всё, кроме falsyStrings.
func Truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		_, falsy := falsyStrings[strings.ToLower(strings.TrimSpace(x))]
		return !falsy
	case []byte:
		return Truthy(string(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f != 0
		}
		return Truthy(x.String())
	case float64:
		return x != 0
	case float32:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	case int32:
		return x != 0
	case uint:
		return x != 0
	case uint64:
		return x != 0
	default:
		return true
	}
}

// Границы, в которых дата переживает запись в RFC3339 и обратный разбор.
var (
	minTimestamp = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	maxTimestamp = time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC)
)

// timestamp принимает time.Time, строку известного формата или unix-секунды.
// Даты вне годов 1-9999 отклоняются.
func timestamp(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return checkTimestamp(x)
	case string:
		t, err := timeparser.Parse(strings.TrimSpace(x))
		if err != nil {
			return time.Time{}, false
		}
		return checkTimestamp(t)
	case []byte:
		return timestamp(string(x))
	case json.Number:
		if sec, err := x.Int64(); err == nil {
			return unixTimestamp(sec)
		}
		return timestamp(x.String())
	case float64:
		if !(x >= float64(minTimestamp.Unix()) && x <= float64(maxTimestamp.Unix())) {
			return time.Time{}, false
		}
		return unixTimestamp(int64(x))
	case int64:
		return unixTimestamp(x)
	default:
		return time.Time{}, false
	}
}

func unixTimestamp(sec int64) (time.Time, bool) {
	if sec < minTimestamp.Unix() || sec > maxTimestamp.Unix() {
		return time.Time{}, false
	}
	return time.Unix(sec, 0).UTC(), true
}

func checkTimestamp(t time.Time) (time.Time, bool) {
	t = t.UTC()
	if t.IsZero() || t.Before(minTimestamp) || t.After(maxTimestamp) {
		return time.Time{}, false
	}
	return t, true
}
