package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/medforce/fieldtrack/internal/achievement"
	"github.com/medforce/fieldtrack/internal/clock"
	"github.com/medforce/fieldtrack/internal/config"
	"github.com/medforce/fieldtrack/internal/directory"
	"github.com/medforce/fieldtrack/internal/inventory"
	"github.com/medforce/fieldtrack/internal/migration"
	"github.com/medforce/fieldtrack/internal/observability"
	"github.com/medforce/fieldtrack/internal/performance"
	"github.com/medforce/fieldtrack/internal/scope"
	"github.com/medforce/fieldtrack/internal/server"
	"github.com/medforce/fieldtrack/internal/target"
	"github.com/medforce/fieldtrack/internal/visitreport"
	"github.com/medforce/fieldtrack/pkg/db"
	"github.com/medforce/fieldtrack/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		clock.Module,

		directory.Module,
		scope.Module,
		inventory.Module,
		visitreport.Module,
		achievement.Module,
		target.Module,
		performance.Module,

		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(s *server.Server) {
			s.RegisterAPIRoutes()
		}),
		fx.Invoke(server.RunHTTP),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
