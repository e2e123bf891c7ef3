package lookup

import (
	"context"
	"strings"
	"time"

	invoicedomain "github.com/adrianolorenzi02/conferencia-compra/internal/invoice/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Fixture serves a fixed demo invoice behind a simulated lookup delay, so the
// workflow can be exercised without a real invoice backend. The delay always
// runs to completion: a started lookup resolves even if the caller went away.
type Fixture struct {
	delay    time.Duration
	template invoicedomain.Invoice
}

// NewFixture builds the demo lookup. IDs are minted once at construction so
// repeated lookups return a stable dataset.
func NewFixture(genID *snowflake.Node, delay time.Duration) *Fixture {
	invoiceID := genID.Generate()
	issue, _ := time.Parse("2006-01-02", "2024-01-15")

	return &Fixture{
		delay: delay,
		template: invoicedomain.Invoice{
			ID:         invoiceID,
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
		},
	}
}

// Find resolves any non-empty access key to the demo invoice, keyed with the
// scanned code.
func (f *Fixture) Find(_ context.Context, accessKey string) (*invoicedomain.Invoice, error) {
	accessKey = strings.TrimSpace(accessKey)
	if accessKey == "" {
		return nil, invoicedomain.ErrInvalidAccessKey
	}

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	inv := f.template
	inv.AccessKey = accessKey
	return &inv, nil
}
