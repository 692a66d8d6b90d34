package repository

import (
	"context"
	"time"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificacionRepository interface {
	Create(ctx context.Context, n *model.NotificacionAlerta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.NotificacionAlerta, error)
	Update(ctx context.Context, n *model.NotificacionAlerta) error
	// ListPendingRetries returns pending notifications whose next_retry_at has
	// passed, oldest first, capped at limit. Feeds the retry cron.
	ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.NotificacionAlerta, error)
}

type notificacionRepo struct{ db *gorm.DB }

func NewNotificacionRepository(db *gorm.DB) NotificacionRepository {
	return &notificacionRepo{db: db}
}

func (r *notificacionRepo) Create(ctx context.Context, n *model.NotificacionAlerta) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.NotificacionAlerta, error) {
	var n model.NotificacionAlerta
	err := r.db.WithContext(ctx).First(&n, id).Error
	return &n, err
}

func (r *notificacionRepo) Update(ctx context.Context, n *model.NotificacionAlerta) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *notificacionRepo) ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.NotificacionAlerta, error) {
	var pendientes []model.NotificacionAlerta
	err := r.db.WithContext(ctx).
		Where("estado = 'pendiente' AND next_retry_at IS NOT NULL AND next_retry_at <= ?", now).
		Order("next_retry_at ASC").
		Limit(limit).
		Find(&pendientes).Error
	return pendientes, err
}
