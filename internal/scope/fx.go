package scope

import "go.uber.org/fx"

var Module = fx.Module("scope.resolver",
	fx.Provide(New),
)
