package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Conference event actions.
const (
	ActionInvoiceLoaded      = "invoice_loaded"
	ActionConferenceStarted  = "conference_started"
	ActionProductScanned     = "product_scanned"
	ActionScanRejected       = "scan_rejected"
	ActionConferenceFinished = "conference_finished"
	ActionConferenceReset    = "conference_reset"
)

// Event is an immutable record of one conference workflow action.
type Event struct {
	ID        snowflake.ID      `gorm:"primaryKey"`
	Action    string            `gorm:"type:text;not null;index"`
	Metadata  datatypes.JSONMap `gorm:"not null;default:'{}'"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Event) TableName() string { return "conference_events" }
