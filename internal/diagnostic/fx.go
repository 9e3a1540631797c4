package diagnostic

import (
	"go.uber.org/fx"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/diagnostic/service"
)

var Module = fx.Module("diagnostic.service",
	fx.Provide(service.NewService),
)
