package directory

import (
	"github.com/medforce/fieldtrack/internal/directory/repository"
	"github.com/medforce/fieldtrack/internal/directory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("directory.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
