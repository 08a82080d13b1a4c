package achievement

import (
	"github.com/medforce/fieldtrack/internal/achievement/repository"
	"github.com/medforce/fieldtrack/internal/achievement/service"
	"go.uber.org/fx"
)

var Module = fx.Module("achievement.recorder",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
