// Package logger is a thin event-logging facade: every entry is an event tag
// plus structured fields, backed by zap.
package logger

import "go.uber.org/zap"

var log = zap.NewNop()

func Init() {
	cfg := zap.NewProductionConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	log = zap.Must(cfg.Build())
}

func toZapFields(fields map[string]interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+1)
	for key, value := range fields {
		out = append(out, zap.Any(key, value))
	}
	return out
}

func Info(event string, fields map[string]interface{}) {
	log.Info(event, toZapFields(fields)...)
}

func Warn(event string, fields map[string]interface{}) {
	log.Warn(event, toZapFields(fields)...)
}

func Error(event string, fields map[string]interface{}) {
	log.Error(event, toZapFields(fields)...)
}

func InfoWithUser(userID, event string, fields map[string]interface{}) {
	log.Info(event, append(toZapFields(fields), zap.String("user_id", userID))...)
}

func WarnWithUser(userID, event string, fields map[string]interface{}) {
	log.Warn(event, append(toZapFields(fields), zap.String("user_id", userID))...)
}
