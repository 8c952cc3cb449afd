package masker

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"

	"go.uber.org/zap"
)

var ErrConfigNotPointer = errors.New("config must be a pointer to struct")

// LogConfigs логгирует структуры, в том числе вложенные.
// Поле с тегом masked:"true" логгируется замаскированным, с тегом masked:"url" -
// маскируется только пароль в URL. Каждая структура логируется отдельной строкой.
func LogConfigs(logger *zap.Logger, configs ...interface{}) error {
	for _, config := range configs {
		v := reflect.ValueOf(config)
		t := reflect.TypeOf(config)

		if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
			return ErrConfigNotPointer
		}
		v = v.Elem()
		t = t.Elem()

		logger.Info("Config", zap.Any(t.Name(), maskStructFields(v, t)))
	}
	return nil
}

// maskStructFields собирает экспортируемые поля структуры в мапу, вложенные структуры рекурсивно.
func maskStructFields(v reflect.Value, t reflect.Type) map[string]interface{} {
	out := make(map[string]interface{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		out[sf.Name] = fieldValue(v.Field(i), sf.Tag.Get("masked"))
	}
	return out
}

func fieldValue(field reflect.Value, mode string) interface{} {
	if field.Kind() == reflect.Struct {
		if _, ok := field.Interface().(fmt.Stringer); !ok {
			return maskStructFields(field, field.Type())
		}
	}

	if field.Kind() == reflect.String {
		s := field.String()
		switch mode {
		case "true":
			return maskSensitiveData(s)
		case "url":
			return maskURLPassword(s)
		}
		return s
	}

	// time.Duration и прочие Stringer логгируются в читаемом виде
	if s, ok := field.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return field.Interface()
}

// maskSensitiveData маскирует строку, оставляя только первый и последний символы.
// Если строка короче 3 символов, то возвращается "****".
func maskSensitiveData(data string) string {
	if len(data) <= 2 {
		return "****"
	}
	return string(data[0]) + "****" + string(data[len(data)-1])
}

// maskURLPassword заменяет пароль в URL на "xxxxx". Пустая строка остаётся пустой,
// неразборчивый URL маскируется целиком.
func maskURLPassword(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return maskSensitiveData(raw)
	}
	return u.Redacted()
}
