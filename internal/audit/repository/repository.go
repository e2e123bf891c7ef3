package repository

import (
	"context"

	auditdomain "github.com/adrianolorenzi02/conferencia-compra/internal/audit/domain"
	"gorm.io/gorm"
)

type gormRepository struct{}

// Provide returns the gorm-backed event repository.
func Provide() auditdomain.Repository {
	return gormRepository{}
}

func (gormRepository) InsertBatch(ctx context.Context, db *gorm.DB, events []*auditdomain.Event) error {
	if len(events) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(events).Error
}

func (gormRepository) List(ctx context.Context, db *gorm.DB, action string, limit int) ([]*auditdomain.Event, error) {
	query := db.WithContext(ctx).Model(&auditdomain.Event{}).Order("created_at DESC, id DESC")
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var events []*auditdomain.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
