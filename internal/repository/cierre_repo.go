package repository

import (
	"context"
	"time"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CierreRepository interface {
	// Upsert writes one full row keyed by (sucursal_id, fecha, turno).
	// On conflict the existing row is overwritten in its entirety — this is
	// the concurrency control for double submission, not client-side locking.
	Upsert(ctx context.Context, c *model.CierreTurno) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CierreTurno, error)
	FindByIdentidad(ctx context.Context, sucursalID uuid.UUID, fecha time.Time, turno string) (*model.CierreTurno, error)
	ListByDia(ctx context.Context, sucursalID uuid.UUID, fecha time.Time, turno *string) ([]model.CierreTurno, error)
	ListByRango(ctx context.Context, desde, hasta time.Time) ([]model.CierreTurno, error)
}

type cierreRepo struct{ db *gorm.DB }

func NewCierreRepository(db *gorm.DB) CierreRepository { return &cierreRepo{db: db} }

func (r *cierreRepo) Upsert(ctx context.Context, c *model.CierreTurno) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sucursal_id"}, {Name: "fecha"}, {Name: "turno"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"hamburguesas", "ventas_local", "ventas_apps", "arqueo_caja",
			"total_facturado", "notas",
			"total_hamburguesas", "total_vendido", "total_efectivo", "total_digital",
			"facturacion_esperada", "facturacion_diferencia",
			"diferencia_posnet", "diferencia_apps",
			"tiene_alerta_facturacion", "tiene_alerta_posnet",
			"tiene_alerta_apps", "tiene_alerta_caja",
			"updated_by", "updated_at",
		}),
	}).Create(c).Error
}

func (r *cierreRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CierreTurno, error) {
	var c model.CierreTurno
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cierreRepo) FindByIdentidad(ctx context.Context, sucursalID uuid.UUID, fecha time.Time, turno string) (*model.CierreTurno, error) {
	var c model.CierreTurno
	err := r.db.WithContext(ctx).
		Where("sucursal_id = ? AND fecha = ? AND turno = ?", sucursalID, fecha, turno).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cierreRepo) ListByDia(ctx context.Context, sucursalID uuid.UUID, fecha time.Time, turno *string) ([]model.CierreTurno, error) {
	q := r.db.WithContext(ctx).Where("sucursal_id = ? AND fecha = ?", sucursalID, fecha)
	if turno != nil {
		q = q.Where("turno = ?", *turno)
	}
	var cierres []model.CierreTurno
	err := q.Order("turno ASC").Find(&cierres).Error
	return cierres, err
}

func (r *cierreRepo) ListByRango(ctx context.Context, desde, hasta time.Time) ([]model.CierreTurno, error) {
	var cierres []model.CierreTurno
	err := r.db.WithContext(ctx).
		Where("fecha >= ? AND fecha <= ?", desde, hasta).
		Order("fecha ASC, turno ASC").
		Find(&cierres).Error
	return cierres, err
}
