package lookup

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/adrianolorenzi02/conferencia-compra/internal/cache"
	invoicedomain "github.com/adrianolorenzi02/conferencia-compra/internal/invoice/domain"
	"github.com/adrianolorenzi02/conferencia-compra/internal/observability/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store resolves invoices from the database, fronted by a TTL cache keyed on
// the access key.
type Store struct {
	db       *gorm.DB
	log      *zap.Logger
	cache    cache.Cache[string, *invoicedomain.Invoice]
	cacheTTL time.Duration
}

// NewStore builds a database-backed lookup. A non-positive cacheTTL disables
// caching.
func NewStore(db *gorm.DB, log *zap.Logger, cacheTTL time.Duration) *Store {
	var c cache.Cache[string, *invoicedomain.Invoice]
	if cacheTTL > 0 {
		c = cache.NewTTLCache[string, *invoicedomain.Invoice]()
	} else {
		c = cache.NoopCache[string, *invoicedomain.Invoice]{}
	}
	return &Store{
		db:       db,
		log:      log.Named("invoice.lookup"),
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// Find loads an invoice and its ordered items by access key.
func (s *Store) Find(ctx context.Context, accessKey string) (*invoicedomain.Invoice, error) {
	accessKey = strings.TrimSpace(accessKey)
	if accessKey == "" {
		return nil, invoicedomain.ErrInvalidAccessKey
	}

	if cached, ok := s.cache.Get(accessKey); ok {
		return cached, nil
	}

	var inv invoicedomain.Invoice
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("access_key = ?", accessKey).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invoicedomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	s.cache.Set(accessKey, &inv, s.cacheTTL)
	s.log.Debug("invoice resolved",
		zap.String("access_key", logger.MaskAccessKey(accessKey)),
		zap.Int("items", len(inv.Items)),
	)
	return &inv, nil
}
