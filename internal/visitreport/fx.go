package visitreport

import (
	"github.com/medforce/fieldtrack/internal/visitreport/repository"
	"github.com/medforce/fieldtrack/internal/visitreport/service"
	"go.uber.org/fx"
)

var Module = fx.Module("visitreport.adapter",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
