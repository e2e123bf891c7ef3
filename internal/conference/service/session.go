package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	auditdomain "github.com/adrianolorenzi02/conferencia-compra/internal/audit/domain"
	"github.com/adrianolorenzi02/conferencia-compra/internal/clock"
	conferencedomain "github.com/adrianolorenzi02/conferencia-compra/internal/conference/domain"
	invoicedomain "github.com/adrianolorenzi02/conferencia-compra/internal/invoice/domain"
	"github.com/adrianolorenzi02/conferencia-compra/internal/notification"
	"github.com/adrianolorenzi02/conferencia-compra/internal/observability/logger"
	"github.com/adrianolorenzi02/conferencia-compra/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Session is the single in-memory conference session. A mutex serializes the
// HTTP layer's concurrent calls; between operations readers always see a
// consistent snapshot.
type Session struct {
	mu      sync.Mutex
	step    conferencedomain.Step
	invoice *invoicedomain.Invoice
	items   []conferencedomain.Item
	loading bool

	lookup   invoicedomain.Lookup
	notifier notification.Sink
	recorder auditdomain.Recorder
	clk      clock.Clock
	metrics  *metrics.ConferenceMetrics
	log      *zap.Logger
}

type Params struct {
	fx.In

	Lookup   invoicedomain.Lookup
	Notifier notification.Sink
	Recorder auditdomain.Recorder
	Clock    clock.Clock
	Metrics  *metrics.ConferenceMetrics `optional:"true"`
	Log      *zap.Logger
}

func NewSession(p Params) *Session {
	return &Session{
		step:     conferencedomain.StepScanInvoice,
		lookup:   p.Lookup,
		notifier: p.Notifier,
		recorder: p.Recorder,
		clk:      p.Clock,
		metrics:  p.Metrics,
		log:      p.Log.Named("conference.session"),
	}
}

// LoadInvoice resolves the scanned access key and initializes the item
// tallies. A second call while a lookup is in flight is rejected.
func (s *Session) LoadInvoice(ctx context.Context, accessKey string) (*invoicedomain.Invoice, error) {
	s.mu.Lock()
	if s.step != conferencedomain.StepScanInvoice {
		s.mu.Unlock()
		return nil, conferencedomain.ErrInvalidStep
	}
	if s.loading {
		s.mu.Unlock()
		return nil, conferencedomain.ErrLookupInFlight
	}
	s.loading = true
	s.mu.Unlock()

	inv, lookupErr := s.lookup.Find(ctx, accessKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if lookupErr != nil {
		s.notifier.Notify(ctx, notification.Notification{
			Title:       "Erro ao buscar nota fiscal",
			Description: "Verifique o código de barras e tente novamente",
			Variant:     notification.VariantDestructive,
		})
		s.log.Warn("invoice lookup failed",
			zap.String("access_key", logger.MaskAccessKey(accessKey)),
			zap.Error(lookupErr),
		)
		if errors.Is(lookupErr, invoicedomain.ErrNotFound) || errors.Is(lookupErr, invoicedomain.ErrInvalidAccessKey) {
			return nil, lookupErr
		}
		return nil, conferencedomain.ErrLookupFailed
	}

	if code, dup := duplicateBarcode(inv.Items); dup {
		s.notifier.Notify(ctx, notification.Notification{
			Title:       "Nota fiscal inválida",
			Description: fmt.Sprintf("Código de barras %s aparece em mais de um item", code),
			Variant:     notification.VariantDestructive,
		})
		return nil, conferencedomain.ErrDuplicateBarcode
	}

	items := make([]conferencedomain.Item, 0, len(inv.Items))
	for _, line := range inv.Items {
		items = append(items, conferencedomain.Item{
			LineItem: line,
			Status:   conferencedomain.StatusPending,
		})
	}

	s.invoice = inv
	s.items = items
	s.step = conferencedomain.StepInvoiceDetails

	s.notifier.Notify(ctx, notification.Notification{
		Title:       "Nota fiscal encontrada!",
		Description: fmt.Sprintf("NF %s - %s", inv.Number, inv.Supplier),
		Variant:     notification.VariantInfo,
	})
	s.recorder.Record(ctx, auditdomain.ActionInvoiceLoaded, map[string]any{
		"invoice_number": inv.Number,
		"supplier":       inv.Supplier,
		"items":          len(inv.Items),
	})
	return inv, nil
}

// BeginConferencing moves the session from invoice review to scanning.
func (s *Session) BeginConferencing(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != conferencedomain.StepInvoiceDetails {
		return conferencedomain.ErrInvalidStep
	}
	s.step = conferencedomain.StepConferencing
	s.recorder.Record(ctx, auditdomain.ActionConferenceStarted, map[string]any{
		"invoice_number": s.invoice.Number,
	})
	return nil
}

// RecordScan tallies one physical unit against the matching line item. The
// scan unit is always 1; excess is tracked, never rejected.
func (s *Session) RecordScan(ctx context.Context, barcode, lot string, expiry *time.Time) (*conferencedomain.ScanOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.invoice == nil {
		return nil, conferencedomain.ErrNoInvoiceLoaded
	}
	if s.step != conferencedomain.StepConferencing {
		return nil, conferencedomain.ErrInvalidStep
	}

	idx := -1
	for i := range s.items {
		if s.items[i].HasBarcode(barcode) {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.notifier.Notify(ctx, notification.Notification{
			Title:       "Produto não encontrado",
			Description: "Este produto não pertence à nota fiscal",
			Variant:     notification.VariantDestructive,
		})
		s.metrics.ScanRejected(ctx)
		s.recorder.Record(ctx, auditdomain.ActionScanRejected, map[string]any{
			"barcode": barcode,
		})
		return nil, conferencedomain.ErrUnknownProduct
	}

	item := &s.items[idx]
	item.ConfirmedQty++
	item.Status = conferencedomain.StatusFor(item.ConfirmedQty, item.ExpectedQty, conferencedomain.PhaseScanning)

	if expiry != nil {
		threshold := s.clk.Now().AddDate(1, 0, 0)
		if expiry.Before(threshold) {
			// Sticky: a later scan with a distant date never clears it.
			item.NearExpiry = true
			s.notifier.Notify(ctx, notification.Notification{
				Title:       "Atenção: Validade próxima do vencimento",
				Description: fmt.Sprintf("Produto vence em menos de 1 ano (%s)", expiry.Format("2006-01-02")),
				Variant:     notification.VariantDestructive,
			})
		}
		item.ConfirmedExpiry = expiry
	}
	if lot != "" {
		item.ConfirmedLot = lot
	}

	switch item.Status {
	case conferencedomain.StatusExcess:
		s.notifier.Notify(ctx, notification.Notification{
			Title:       "Quantidade excedente!",
			Description: fmt.Sprintf("%s - Quantidade superior à nota fiscal", item.Description),
			Variant:     notification.VariantDestructive,
		})
	case conferencedomain.StatusComplete:
		s.notifier.Notify(ctx, notification.Notification{
			Title:       "Item completo!",
			Description: fmt.Sprintf("%s - Conferência finalizada", item.Description),
			Variant:     notification.VariantInfo,
		})
	default:
		s.notifier.Notify(ctx, notification.Notification{
			Title:       "Produto adicionado",
			Description: fmt.Sprintf("%s - %d/%d", item.Description, item.ConfirmedQty, item.ExpectedQty),
			Variant:     notification.VariantInfo,
		})
	}

	s.metrics.ScanAccepted(ctx, string(item.Status))
	s.recorder.Record(ctx, auditdomain.ActionProductScanned, map[string]any{
		"product_code":  item.Code,
		"confirmed_qty": item.ConfirmedQty,
		"status":        string(item.Status),
	})

	return &conferencedomain.ScanOutcome{
		ItemID:       item.ID,
		Barcode:      barcode,
		ProductCode:  item.Code,
		Description:  item.Description,
		ConfirmedQty: item.ConfirmedQty,
		ExpectedQty:  item.ExpectedQty,
		Status:       item.Status,
	}, nil
}

// FinishConferencing closes the tally and reclassifies every item with the
// finish-time rule: only here can an item become missing.
func (s *Session) FinishConferencing(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != conferencedomain.StepConferencing {
		return conferencedomain.ErrInvalidStep
	}

	for i := range s.items {
		item := &s.items[i]
		item.Status = conferencedomain.StatusFor(item.ConfirmedQty, item.ExpectedQty, conferencedomain.PhaseFinished)
	}
	s.step = conferencedomain.StepResults

	s.notifier.Notify(ctx, notification.Notification{
		Title:       "Conferência finalizada!",
		Description: "Verifique os resultados abaixo",
		Variant:     notification.VariantInfo,
	})
	s.metrics.SessionFinished(ctx)
	s.recorder.Record(ctx, auditdomain.ActionConferenceFinished, map[string]any{
		"invoice_number": s.invoice.Number,
		"items":          len(s.items),
	})
	return nil
}

// Reset discards the session and returns to the first step. Valid from any
// step; irreversible.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoice = nil
	s.items = nil
	s.step = conferencedomain.StepScanInvoice

	s.recorder.Record(ctx, auditdomain.ActionConferenceReset, nil)
	return nil
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() conferencedomain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]conferencedomain.Item, len(s.items))
	copy(items, s.items)
	return conferencedomain.Snapshot{
		Step:    s.step,
		Loading: s.loading,
		Invoice: s.invoice,
		Items:   items,
	}
}

// Progress recomputes the derived aggregate metrics from the current items.
func (s *Session) Progress() conferencedomain.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p conferencedomain.Progress
	p.TotalItems = len(s.items)
	for i := range s.items {
		item := &s.items[i]
		switch item.Status {
		case conferencedomain.StatusPending:
			p.PendingItems++
		case conferencedomain.StatusComplete:
			p.CompleteItems++
		case conferencedomain.StatusMissing:
			p.MissingItems++
		case conferencedomain.StatusExcess:
			p.ExcessItems++
		}
		if item.NearExpiry {
			p.NearExpiryItems++
		}
		p.TotalExpectedQty += item.ExpectedQty
		p.TotalConfirmedQty += item.ConfirmedQty
	}
	if p.TotalItems > 0 {
		p.CompletionPercent = float64(p.CompleteItems) / float64(p.TotalItems) * 100
	}
	return p
}

func duplicateBarcode(items []invoicedomain.LineItem) (string, bool) {
	seen := make(map[string]struct{})
	for _, item := range items {
		for _, code := range item.Barcodes {
			if _, ok := seen[code]; ok {
				return code, true
			}
			seen[code] = struct{}{}
		}
	}
	return "", false
}
