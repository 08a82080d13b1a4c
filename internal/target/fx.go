package target

import (
	"github.com/medforce/fieldtrack/internal/target/repository"
	"github.com/medforce/fieldtrack/internal/target/service"
	"go.uber.org/fx"
)

var Module = fx.Module("target.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
