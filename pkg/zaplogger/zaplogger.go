package zaplogger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New создает JSON-логгер в stdout: ISO8601 в поле timestamp, длительности в мс,
// короткий caller. Непустое имя сервиса попадает в поле service.
func New(serviceName string) (*zap.Logger, error) {
	encoder := zap.NewProductionEncoderConfig()
	encoder.TimeKey = "timestamp"
	encoder.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder.EncodeDuration = zapcore.MillisDurationEncoder

	config := zap.NewProductionConfig()
	config.Encoding = "json"
	config.OutputPaths = []string{"stdout"}
	config.EncoderConfig = encoder
	if serviceName != "" {
		config.InitialFields = map[string]interface{}{"service": serviceName}
	}

	return config.Build()
}

// WithRequestID возвращает логгер с полем request_id
func WithRequestID(logger *zap.Logger, requestID string) *zap.Logger {
	return logger.With(zap.String("request_id", requestID))
}
