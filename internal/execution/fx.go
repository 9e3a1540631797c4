package execution

import (
	"go.uber.org/fx"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/execution/service"
)

var Module = fx.Module("execution.service",
	fx.Provide(service.NewService),
)
