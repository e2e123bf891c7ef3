package domain

import (
	"context"
	"errors"
	"time"

	invoicedomain "github.com/adrianolorenzi02/conferencia-compra/internal/invoice/domain"
)

// Service is the conference state machine: the single authoritative owner of
// one reconciliation session and the only component allowed to mutate item
// tallies.
type Service interface {
	LoadInvoice(ctx context.Context, accessKey string) (*invoicedomain.Invoice, error)
	BeginConferencing(ctx context.Context) error
	RecordScan(ctx context.Context, barcode, lot string, expiry *time.Time) (*ScanOutcome, error)
	FinishConferencing(ctx context.Context) error
	Reset(ctx context.Context) error
	Snapshot() Snapshot
	Progress() Progress
}

var (
	ErrInvalidStep      = errors.New("invalid_step")
	ErrLookupInFlight   = errors.New("lookup_in_flight")
	ErrLookupFailed     = errors.New("lookup_failed")
	ErrDuplicateBarcode = errors.New("duplicate_barcode")
	ErrNoInvoiceLoaded  = errors.New("no_invoice_loaded")
	ErrUnknownProduct   = errors.New("unknown_product")
)
