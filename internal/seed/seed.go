package seed

import (
	"context"
	"errors"
	"time"

	invoicedomain "github.com/adrianolorenzi02/conferencia-compra/internal/invoice/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const demoAccessKey = "35240112345678000190550010000012341000012349"

// EnsureDemoInvoice seeds the demo purchase invoice so the database lookup
// mode works out of the box. Idempotent.
func EnsureDemoInvoice(db *gorm.DB, genID *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&invoicedomain.Invoice{}).
			Where("access_key = ?", demoAccessKey).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		issue, err := time.Parse("2006-01-02", "2024-01-15")
		if err != nil {
			return err
		}

		invoiceID := genID.Generate()
		inv := invoicedomain.Invoice{
			ID:         invoiceID,
			AccessKey:  demoAccessKey,
			Number:     "001234",
			Series:     "001",
			Supplier:   "DISTRIBUIDORA ABC LTDA",
			IssueDate:  datatypes.Date(issue),
			TotalCents: 245000,
			Items: []invoicedomain.LineItem{
				{
					ID:          genID.Generate(),
					InvoiceID:   invoiceID,
					Position:    1,
					Code:        "PROD001",
					Description: "BISCOITO RECHEADO CHOCOLATE 150G",
					ExpectedQty: 24,
					Unit:        "UN",
					Barcodes:    datatypes.NewJSONSlice([]string{"7891234567890", "17891234567897012345"}),
				},
				{
					ID:          genID.Generate(),
					InvoiceID:   invoiceID,
					Position:    2,
					Code:        "PROD002",
					Description: "REFRIGERANTE COLA 2L",
					ExpectedQty: 12,
					Unit:        "UN",
					Barcodes:    datatypes.NewJSONSlice([]string{"7899876543210", "17899876543217567890"}),
				},
				{
					ID:          genID.Generate(),
					InvoiceID:   invoiceID,
					Position:    3,
					Code:        "PROD003",
					Description: "ACHOCOLATADO PO 400G",
					ExpectedQty: 18,
					Unit:        "UN",
					Barcodes:    datatypes.NewJSONSlice([]string{"7895555444333", "17895555444330123456"}),
				},
			},
		}
		return tx.Create(&inv).Error
	})
}
