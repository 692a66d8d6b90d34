package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificacionAlerta queues one email notification per alert flag raised when
// a cierre is saved. Delivery is asynchronous and never blocks the save.
// Estado: "pendiente" | "enviada" | "error"
// Tipo: "facturacion" | "posnet" | "apps" | "caja"
type NotificacionAlerta struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CierreID   uuid.UUID `gorm:"type:uuid;not null;index"`
	SucursalID uuid.UUID `gorm:"type:uuid;not null"`
	Tipo       string    `gorm:"type:varchar(20);not null"`
	Detalle    string    `gorm:"not null"`
	Estado     string    `gorm:"type:varchar(20);not null;default:'pendiente'"`

	RetryCount  int `gorm:"not null;default:0"`
	NextRetryAt *time.Time
	LastError   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (NotificacionAlerta) TableName() string { return "notificaciones_alerta" }
