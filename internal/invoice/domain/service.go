package domain

import (
	"context"
	"errors"
)

// Lookup resolves an invoice from its scanned access key. Implementations
// must return within finite time; the caller treats any failure other than
// ErrNotFound as an opaque lookup failure.
type Lookup interface {
	Find(ctx context.Context, accessKey string) (*Invoice, error)
}

var (
	ErrInvalidAccessKey = errors.New("invalid_access_key")
	ErrNotFound         = errors.New("invoice_not_found")
)
