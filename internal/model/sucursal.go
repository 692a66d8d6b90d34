package model

import (
	"time"

	"github.com/google/uuid"
)

// Sucursal is one branch of the chain.
type Sucursal struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Slug      string    `gorm:"type:varchar(60);uniqueIndex;not null"`
	Direccion *string
	Activa    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Turnos []TurnoSucursal `gorm:"foreignKey:SucursalID"`
}

func (Sucursal) TableName() string { return "sucursales" }

// TurnoSucursal marks which shifts a branch actually operates.
// The brand summary uses this set to report coverage: a configured-active
// turno without a matching cierre shows up as missing.
type TurnoSucursal struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SucursalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_turno_sucursal,priority:1"`
	Nombre     string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_turno_sucursal,priority:2"`
	Activo     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (TurnoSucursal) TableName() string { return "turnos_sucursal" }
