package snapshot

import (
	"go.uber.org/fx"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/service"
)

var Module = fx.Module("snapshot.service",
	fx.Provide(service.NewService),
)
