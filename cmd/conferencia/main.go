package main

import (
	"github.com/adrianolorenzi02/conferencia-compra/internal/audit"
	"github.com/adrianolorenzi02/conferencia-compra/internal/clock"
	"github.com/adrianolorenzi02/conferencia-compra/internal/conference"
	"github.com/adrianolorenzi02/conferencia-compra/internal/config"
	"github.com/adrianolorenzi02/conferencia-compra/internal/invoice"
	"github.com/adrianolorenzi02/conferencia-compra/internal/migration"
	"github.com/adrianolorenzi02/conferencia-compra/internal/notification"
	"github.com/adrianolorenzi02/conferencia-compra/internal/observability"
	"github.com/adrianolorenzi02/conferencia-compra/internal/report"
	"github.com/adrianolorenzi02/conferencia-compra/internal/seed"
	"github.com/adrianolorenzi02/conferencia-compra/internal/server"
	"github.com/adrianolorenzi02/conferencia-compra/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		fx.Invoke(func(conn *gorm.DB, genID *snowflake.Node) error {
			if err := migration.RunMigrations(conn); err != nil {
				return err
			}
			return seed.EnsureDemoInvoice(conn, genID)
		}),

		notification.Module,
		audit.Module,
		invoice.Module,
		conference.Module,
		report.Module,
		server.Module,
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
