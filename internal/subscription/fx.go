package subscription

import (
	"go.uber.org/fx"

	billingdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/billing/domain"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/billing/stripe"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/subscription/service"
)

var Module = fx.Module("subscription.service",
	fx.Provide(func(a *stripe.Adapter) billingdomain.Adapter { return a }),
	fx.Provide(stripe.New),
	fx.Provide(service.NewService),
)
