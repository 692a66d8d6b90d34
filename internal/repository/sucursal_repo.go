package repository

import (
	"context"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SucursalRepository interface {
	Create(ctx context.Context, s *model.Sucursal) error
	Update(ctx context.Context, s *model.Sucursal) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sucursal, error)
	List(ctx context.Context, incluirInactivas bool) ([]model.Sucursal, error)
	// SetTurno activates or deactivates one shift for a branch (upsert).
	SetTurno(ctx context.Context, t *model.TurnoSucursal) error
	ListTurnos(ctx context.Context) ([]model.TurnoSucursal, error)
}

type sucursalRepo struct{ db *gorm.DB }

func NewSucursalRepository(db *gorm.DB) SucursalRepository { return &sucursalRepo{db: db} }

func (r *sucursalRepo) Create(ctx context.Context, s *model.Sucursal) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sucursalRepo) Update(ctx context.Context, s *model.Sucursal) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *sucursalRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sucursal, error) {
	var s model.Sucursal
	err := r.db.WithContext(ctx).Preload("Turnos").First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sucursalRepo) List(ctx context.Context, incluirInactivas bool) ([]model.Sucursal, error) {
	q := r.db.WithContext(ctx).Preload("Turnos").Order("nombre ASC")
	if !incluirInactivas {
		q = q.Where("activa = true")
	}
	var sucursales []model.Sucursal
	err := q.Find(&sucursales).Error
	return sucursales, err
}

func (r *sucursalRepo) SetTurno(ctx context.Context, t *model.TurnoSucursal) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sucursal_id"}, {Name: "nombre"}},
		DoUpdates: clause.AssignmentColumns([]string{"activo", "updated_at"}),
	}).Create(t).Error
}

func (r *sucursalRepo) ListTurnos(ctx context.Context) ([]model.TurnoSucursal, error) {
	var turnos []model.TurnoSucursal
	err := r.db.WithContext(ctx).Find(&turnos).Error
	return turnos, err
}
