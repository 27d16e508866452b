// Package logger provides the application zap logger and context helpers.
package logger

import (
	"context"
	"strings"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/config"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// New builds the root logger. Production uses JSON output, everything else
// the development console encoder.
func New(cfg config.Config) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if cfg.IsProduction() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	log = log.With(zap.String("service", "farmheart"))
	zap.ReplaceGlobals(log)
	return log, nil
}

// FromContext returns the global logger enriched with the active trace and
// span IDs when the context carries a sampled span.
func FromContext(ctx context.Context) *zap.Logger {
	log := zap.L()
	if ctx == nil {
		return log
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return log
	}
	return log.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

// MaskEmail hides the local part of an address, keeping enough to correlate
// delivery logs with a user without exposing the mailbox.
func MaskEmail(address string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return ""
	}
	at := strings.LastIndex(address, "@")
	if at <= 0 {
		return "****"
	}
	local := address[:at]
	domain := address[at:]
	if len(local) <= 2 {
		return "**" + domain
	}
	return local[:1] + "****" + local[len(local)-1:] + domain
}

// MaskToken keeps the last four characters of an API token.
func MaskToken(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "****" + value
	}
	return "****" + value[len(value)-4:]
}

var Module = fx.Module("logger",
	fx.Provide(New),
)
