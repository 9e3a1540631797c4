package offer

import (
	"go.uber.org/fx"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/offer/service"
)

var Module = fx.Module("offer.service",
	fx.Provide(service.NewService),
)
