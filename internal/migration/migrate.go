package migration

import (
	auditdomain "github.com/adrianolorenzi02/conferencia-compra/internal/audit/domain"
	invoicedomain "github.com/adrianolorenzi02/conferencia-compra/internal/invoice/domain"
	"gorm.io/gorm"
)

// RunMigrations creates or updates the schema. The schema is small enough
// that gorm's auto migration covers both the sqlite and postgres targets.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&invoicedomain.Invoice{},
		&invoicedomain.LineItem{},
		&auditdomain.Event{},
	)
}
