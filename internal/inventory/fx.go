package inventory

import (
	"github.com/medforce/fieldtrack/internal/inventory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inventory.gate",
	fx.Provide(service.New),
)
