package invoice

import (
	"fmt"

	"github.com/adrianolorenzi02/conferencia-compra/internal/config"
	invoicedomain "github.com/adrianolorenzi02/conferencia-compra/internal/invoice/domain"
	"github.com/adrianolorenzi02/conferencia-compra/internal/invoice/lookup"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("invoice",
	fx.Provide(NewLookup),
)

// NewLookup selects the lookup backend from configuration.
func NewLookup(cfg config.Config, db *gorm.DB, log *zap.Logger, genID *snowflake.Node) (invoicedomain.Lookup, error) {
	switch cfg.Lookup.Mode {
	case "fixture", "":
		return lookup.NewFixture(genID, cfg.Lookup.Delay), nil
	case "database":
		return lookup.NewStore(db, log, cfg.Lookup.CacheTTL), nil
	default:
		return nil, fmt.Errorf("unsupported lookup mode %q", cfg.Lookup.Mode)
	}
}
