package report

import (
	"encoding/json"
	"time"

	conferencedomain "github.com/adrianolorenzi02/conferencia-compra/internal/conference/domain"
)

// Document is the exported reconciliation report.
type Document struct {
	ConferenceDate string       `json:"conferenceDate"`
	Summary        Summary      `json:"summary"`
	Details        []ItemRecord `json:"details"`
}

type Summary struct {
	TotalItems             int `json:"totalItems"`
	CompleteItems          int `json:"completeItems"`
	MissingItems           int `json:"missingItems"`
	ExcessItems            int `json:"excessItems"`
	NearExpiryItems        int `json:"nearExpiryItems"`
	TotalExpectedQuantity  int `json:"totalExpectedQuantity"`
	TotalConfirmedQuantity int `json:"totalConfirmedQuantity"`
}

type ItemRecord struct {
	Code         string `json:"code"`
	Description  string `json:"description"`
	ExpectedQty  int    `json:"expectedQty"`
	ConfirmedQty int    `json:"confirmedQty"`
	Status       string `json:"status"`
	Lot          string `json:"lot,omitempty"`
	Expiry       string `json:"expiry,omitempty"`
	NearExpiry   bool   `json:"nearExpiry"`
}

// Build assembles the report document from the finished session's items.
// The missing count includes items still pending with nothing scanned, which
// is how the results stage presents them.
func Build(now time.Time, items []conferencedomain.Item) Document {
	doc := Document{
		ConferenceDate: now.Format("02/01/2006 15:04:05"),
		Details:        make([]ItemRecord, 0, len(items)),
	}

	for _, item := range items {
		doc.Summary.TotalItems++
		switch {
		case item.Status == conferencedomain.StatusComplete:
			doc.Summary.CompleteItems++
		case item.Status == conferencedomain.StatusExcess:
			doc.Summary.ExcessItems++
		case item.Status == conferencedomain.StatusMissing,
			item.Status == conferencedomain.StatusPending && item.ConfirmedQty == 0:
			doc.Summary.MissingItems++
		}
		if item.NearExpiry {
			doc.Summary.NearExpiryItems++
		}
		doc.Summary.TotalExpectedQuantity += item.ExpectedQty
		doc.Summary.TotalConfirmedQuantity += item.ConfirmedQty

		record := ItemRecord{
			Code:         item.Code,
			Description:  item.Description,
			ExpectedQty:  item.ExpectedQty,
			ConfirmedQty: item.ConfirmedQty,
			Status:       string(item.Status),
			Lot:          item.ConfirmedLot,
			NearExpiry:   item.NearExpiry,
		}
		if item.ConfirmedExpiry != nil {
			record.Expiry = item.ConfirmedExpiry.Format("2006-01-02")
		}
		doc.Details = append(doc.Details, record)
	}
	return doc
}

// Filename returns the download name for a report generated at now.
func Filename(now time.Time) string {
	return "conferencia-" + now.Format("2006-01-02") + ".json"
}

// Encode serializes the document the way the download endpoint and the disk
// saver both ship it.
func Encode(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
