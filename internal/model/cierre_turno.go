package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Turnos reconocidos por la marca. Un cierre siempre pertenece a uno de estos.
const (
	TurnoManana    = "manana"
	TurnoMediodia  = "mediodia"
	TurnoNoche     = "noche"
	TurnoTrasnoche = "trasnoche"
)

// Turnos lists every recognized shift in display order.
var Turnos = []string{TurnoManana, TurnoMediodia, TurnoNoche, TurnoTrasnoche}

// TurnoValido reports whether t is one of the recognized shifts.
func TurnoValido(t string) bool {
	for _, v := range Turnos {
		if v == t {
			return true
		}
	}
	return false
}

// ── Nested value records ──────────────────────────────────────────────────────
// Stored as jsonb columns. Every field is explicit; an absent key decodes to
// zero, but request validation rejects malformed bodies before they get here.

// ConteoVariantes holds unit counts for a product family that comes in the
// two base recipes.
type ConteoVariantes struct {
	Clasica  int `json:"clasica"`
	Original int `json:"original"`
}

// ConteoExtras holds unit counts for side items sold alongside burgers.
type ConteoExtras struct {
	Medallon int `json:"medallon"`
	Papas    int `json:"papas"`
	Dips     int `json:"dips"`
}

// ConteoHamburguesas is the per-family unit breakdown declared at shift close.
type ConteoHamburguesas struct {
	Clasica      int             `json:"clasica"`
	Original     int             `json:"original"`
	ExtraSabor   int             `json:"extra_sabor"`
	Vegetarianas ConteoVariantes `json:"vegetarianas"`
	Ultra        ConteoVariantes `json:"ultra"`
	Extras       ConteoExtras    `json:"extras"`
}

// VentasLocal is the in-person channel breakdown.
// PosnetReportado is what the card terminal batch report says was settled;
// Tarjeta is what the register recorded as card sales. They are reconciled
// against each other at calculation time.
type VentasLocal struct {
	Efectivo        decimal.Decimal `json:"efectivo"`
	Digital         decimal.Decimal `json:"digital"`
	Tarjeta         decimal.Decimal `json:"tarjeta"`
	PosnetReportado decimal.Decimal `json:"posnet_reportado"`
	Total           decimal.Decimal `json:"total"`
}

// VentaApp is one third-party delivery app's declared figures.
// Reportado is the revenue the app's panel reports for the shift;
// CobradoPosnet is the portion that was collected through our card terminal.
type VentaApp struct {
	Reportado     decimal.Decimal `json:"reportado"`
	CobradoPosnet decimal.Decimal `json:"cobrado_posnet"`
}

// VentasApps groups every delivery app the chain operates with.
type VentasApps struct {
	PedidosYa   VentaApp        `json:"pedidosya"`
	Rappi       VentaApp        `json:"rappi"`
	MasDelivery VentaApp        `json:"mas_delivery"`
	Total       decimal.Decimal `json:"total"`
}

// Entradas returns the per-app entries in a fixed order for folding.
func (v VentasApps) Entradas() []VentaApp {
	return []VentaApp{v.PedidosYa, v.Rappi, v.MasDelivery}
}

// ArqueoCaja is the physical cash count declared at shift close.
// DiferenciaCaja = contado - (inicial + ventas efectivo - gastos).
type ArqueoCaja struct {
	EfectivoInicial decimal.Decimal `json:"efectivo_inicial"`
	EfectivoContado decimal.Decimal `json:"efectivo_contado"`
	GastosEfectivo  decimal.Decimal `json:"gastos_efectivo"`
	DiferenciaCaja  decimal.Decimal `json:"diferencia_caja"`
}

// ── Persisted entity ──────────────────────────────────────────────────────────

// CierreTurno is the end-of-shift reconciliation record.
// Exactly one row may exist per (sucursal_id, fecha, turno); a re-submission
// for the same identity overwrites the existing row in full via upsert.
// Derived fields are always recomputed on save — never trusted from the client.
type CierreTurno struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SucursalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cierres_identidad,priority:1"`
	Fecha      time.Time `gorm:"type:date;not null;uniqueIndex:idx_cierres_identidad,priority:2"`
	Turno      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_cierres_identidad,priority:3"`

	Hamburguesas ConteoHamburguesas `gorm:"serializer:json;type:jsonb;not null"`
	VentasLocal  VentasLocal        `gorm:"serializer:json;type:jsonb;not null"`
	VentasApps   VentasApps         `gorm:"serializer:json;type:jsonb;not null"`
	ArqueoCaja   ArqueoCaja         `gorm:"serializer:json;type:jsonb;not null"`

	TotalFacturado decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Notas          string

	// Derived on every save
	TotalHamburguesas     int             `gorm:"not null"`
	TotalVendido          decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalEfectivo         decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalDigital          decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	FacturacionEsperada   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	FacturacionDiferencia decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DiferenciaPosnet      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DiferenciaApps        decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	TieneAlertaFacturacion bool `gorm:"not null"`
	TieneAlertaPosnet      bool `gorm:"not null"`
	TieneAlertaApps        bool `gorm:"not null"`
	TieneAlertaCaja        bool `gorm:"not null"`

	// Audit
	CerradoPor uuid.UUID `gorm:"type:uuid;not null"`
	UpdatedBy  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (CierreTurno) TableName() string { return "cierres_turno" }
