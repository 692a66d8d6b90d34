package dto

import "github.com/shopspring/decimal"

// ─── Brand-wide summary ──────────────────────────────────────────────────────

// FamiliasHamburguesas breaks a branch's burger units down by product family.
// Variant recipes collapse into their family (vegetarianas = clasica + original).
type FamiliasHamburguesas struct {
	Clasica      int `json:"clasica"`
	Original     int `json:"original"`
	ExtraSabor   int `json:"extra_sabor"`
	Vegetarianas int `json:"vegetarianas"`
	Ultra        int `json:"ultra"`
	Extras       int `json:"extras"`
}

// TotalesSucursal accumulates a branch's closures over the requested range.
type TotalesSucursal struct {
	Vendido      decimal.Decimal      `json:"vendido"`
	Efectivo     decimal.Decimal      `json:"efectivo"`
	Digital      decimal.Decimal      `json:"digital"`
	Facturado    decimal.Decimal      `json:"facturado"`
	Hamburguesas int                  `json:"hamburguesas"`
	Familias     FamiliasHamburguesas `json:"familias"`
	Alertas      int                  `json:"alertas"`
}

// CierreResumen is the per-shift entry inside a branch summary.
type CierreResumen struct {
	Fecha        string          `json:"fecha"`
	Turno        string          `json:"turno"`
	Vendido      decimal.Decimal `json:"vendido"`
	Hamburguesas int             `json:"hamburguesas"`
	Alertas      AlertasCierre   `json:"alertas"`
}

// ResumenSucursal is one branch's slice of the brand summary.
// TurnosActivos is the configured coverage set; a turno present there but
// absent from CierresPorTurno means the shift was never closed.
type ResumenSucursal struct {
	SucursalID      string                     `json:"sucursal_id"`
	Nombre          string                     `json:"nombre"`
	Slug            string                     `json:"slug"`
	Totales         TotalesSucursal            `json:"totales"`
	TurnosActivos   []string                   `json:"turnos_activos"`
	CierresPorTurno map[string][]CierreResumen `json:"cierres_por_turno"`
}

type ResumenMarcaResponse struct {
	Desde      string            `json:"desde"`
	Hasta      string            `json:"hasta"`
	Sucursales []ResumenSucursal `json:"sucursales"`
}
