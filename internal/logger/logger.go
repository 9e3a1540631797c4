// Package logger provides the process zap logger.
package logger

import (
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/config"
)

var Module = fx.Module("logger",
	fx.Provide(New),
)

// New builds the root logger; production gets JSON output, everything
// else the development console encoder.
func New(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// MaskAuthorization masks bearer tokens before they reach request logs,
// preserving the scheme.
func MaskAuthorization(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	parts := strings.Fields(value)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return "Bearer " + maskLast4(parts[1])
	}
	return maskLast4(value)
}

func maskLast4(value string) string {
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
