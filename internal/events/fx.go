package events

import "go.uber.org/fx"

var Module = fx.Module("events.tracker",
	fx.Provide(NewService),
)
