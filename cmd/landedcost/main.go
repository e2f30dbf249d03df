package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/landedcost/internal/clock"
	"github.com/smallbiznis/landedcost/internal/config"
	"github.com/smallbiznis/landedcost/internal/migration"
	"github.com/smallbiznis/landedcost/internal/observability"
	"github.com/smallbiznis/landedcost/internal/server"
	"github.com/smallbiznis/landedcost/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		// HTTP server and the catalog domains it serves
		server.Module,

		// Schema and duty category presets, before the listener starts
		migration.Module,

		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
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
