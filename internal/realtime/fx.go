package realtime

import "go.uber.org/fx"

var Module = fx.Module("realtime",
	fx.Provide(NewHub),
	fx.Provide(func(hub *Hub) Sink { return hub }),
)
