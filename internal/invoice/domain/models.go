package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Invoice is the purchase document (nota fiscal) being reconciled. It is
// loaded atomically with all of its items and never partially.
type Invoice struct {
	ID         snowflake.ID   `gorm:"primaryKey" json:"id"`
	AccessKey  string         `gorm:"type:text;not null;uniqueIndex" json:"access_key"`
	Number     string         `gorm:"type:text;not null" json:"number"`
	Series     string         `gorm:"type:text;not null" json:"series"`
	Supplier   string         `gorm:"type:text;not null" json:"supplier"`
	IssueDate  datatypes.Date `gorm:"not null" json:"issue_date"`
	TotalCents int64          `gorm:"not null" json:"total_cents"`
	Items      []LineItem     `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// LineItem is one product entry on an invoice: an expected quantity plus the
// set of barcode strings that identify the physical product. Immutable once
// loaded.
type LineItem struct {
	ID          snowflake.ID                `gorm:"primaryKey" json:"id"`
	InvoiceID   snowflake.ID                `gorm:"not null;index" json:"-"`
	Position    int                         `gorm:"not null" json:"-"`
	Code        string                      `gorm:"type:text;not null" json:"code"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	ExpectedQty int                         `gorm:"not null" json:"expected_qty"`
	Unit        string                      `gorm:"type:text;not null" json:"unit"`
	Barcodes    datatypes.JSONSlice[string] `gorm:"not null" json:"barcodes"`
	Lot         *string                     `gorm:"type:text" json:"lot,omitempty"`
	Expiry      *time.Time                  `json:"expiry,omitempty"`
}

// TableName sets the database table name.
func (LineItem) TableName() string { return "invoice_items" }

// HasBarcode reports whether code is one of the item's registered barcodes,
// by exact string equality.
func (i LineItem) HasBarcode(code string) bool {
	for _, candidate := range i.Barcodes {
		if candidate == code {
			return true
		}
	}
	return false
}
