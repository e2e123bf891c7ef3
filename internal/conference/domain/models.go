package domain

import (
	"time"

	invoicedomain "github.com/adrianolorenzi02/conferencia-compra/internal/invoice/domain"
	"github.com/bwmarrin/snowflake"
)

// Step is the workflow stage of a conference session. The progression is
// strictly forward; only a reset goes back to StepScanInvoice.
type Step string

const (
	StepScanInvoice    Step = "scan-invoice"
	StepInvoiceDetails Step = "invoice-details"
	StepConferencing   Step = "conferencing"
	StepResults        Step = "results"
)

// Status is the tally state of a conference item.
type Status string

const (
	StatusPending  Status = "pending"
	StatusComplete Status = "complete"
	StatusExcess   Status = "excess"
	StatusMissing  Status = "missing"
)

// Phase selects which status rule applies. During scanning a partially
// counted item stays pending; only the finish transition may declare it
// missing.
type Phase int

const (
	PhaseScanning Phase = iota
	PhaseFinished
)

// StatusFor derives an item status from its tally. Status is never stored
// independently of this function.
func StatusFor(confirmed, expected int, phase Phase) Status {
	if phase == PhaseFinished && confirmed == 0 {
		return StatusPending
	}
	switch {
	case confirmed > expected:
		return StatusExcess
	case confirmed == expected:
		return StatusComplete
	case phase == PhaseFinished:
		return StatusMissing
	default:
		return StatusPending
	}
}

// Item is an invoice line item extended with its mutable tally state for the
// duration of one conference session.
type Item struct {
	invoicedomain.LineItem
	ConfirmedQty    int        `json:"confirmed_qty"`
	Status          Status     `json:"status"`
	ConfirmedLot    string     `json:"confirmed_lot,omitempty"`
	ConfirmedExpiry *time.Time `json:"confirmed_expiry,omitempty"`
	NearExpiry      bool       `json:"near_expiry"`
}

// ScanOutcome reports the effect of one accepted scan.
type ScanOutcome struct {
	ItemID       snowflake.ID `json:"item_id"`
	Barcode      string       `json:"barcode"`
	ProductCode  string       `json:"product_code"`
	Description  string       `json:"description"`
	ConfirmedQty int          `json:"confirmed_qty"`
	ExpectedQty  int          `json:"expected_qty"`
	Status       Status       `json:"status"`
}

// Progress aggregates the current tally across all items. Recomputed on
// every read.
type Progress struct {
	TotalItems        int     `json:"total_items"`
	PendingItems      int     `json:"pending_items"`
	CompleteItems     int     `json:"complete_items"`
	MissingItems      int     `json:"missing_items"`
	ExcessItems       int     `json:"excess_items"`
	NearExpiryItems   int     `json:"near_expiry_items"`
	TotalExpectedQty  int     `json:"total_expected_qty"`
	TotalConfirmedQty int     `json:"total_confirmed_qty"`
	CompletionPercent float64 `json:"completion_percent"`
}

// Snapshot is a consistent read-only view of the session.
type Snapshot struct {
	Step    Step                    `json:"step"`
	Loading bool                    `json:"loading"`
	Invoice *invoicedomain.Invoice  `json:"invoice,omitempty"`
	Items   []Item                  `json:"items"`
}
