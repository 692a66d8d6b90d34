package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────
// The nested groups mirror the paper close-out sheet the encargado fills in.
// Totals are NOT accepted from the client; every derived value is recomputed.

type ConteoVariantesInput struct {
	Clasica  int `json:"clasica"  validate:"min=0"`
	Original int `json:"original" validate:"min=0"`
}

type ConteoExtrasInput struct {
	Medallon int `json:"medallon" validate:"min=0"`
	Papas    int `json:"papas"    validate:"min=0"`
	Dips     int `json:"dips"     validate:"min=0"`
}

type ConteoHamburguesasInput struct {
	Clasica      int                  `json:"clasica"      validate:"min=0"`
	Original     int                  `json:"original"     validate:"min=0"`
	ExtraSabor   int                  `json:"extra_sabor"  validate:"min=0"`
	Vegetarianas ConteoVariantesInput `json:"vegetarianas"`
	Ultra        ConteoVariantesInput `json:"ultra"`
	Extras       ConteoExtrasInput    `json:"extras"`
}

type VentasLocalInput struct {
	Efectivo        decimal.Decimal `json:"efectivo"         validate:"min=0"`
	Digital         decimal.Decimal `json:"digital"          validate:"min=0"`
	Tarjeta         decimal.Decimal `json:"tarjeta"          validate:"min=0"`
	PosnetReportado decimal.Decimal `json:"posnet_reportado" validate:"min=0"`
}

type VentaAppInput struct {
	Reportado     decimal.Decimal `json:"reportado"      validate:"min=0"`
	CobradoPosnet decimal.Decimal `json:"cobrado_posnet" validate:"min=0"`
}

type VentasAppsInput struct {
	PedidosYa   VentaAppInput `json:"pedidosya"`
	Rappi       VentaAppInput `json:"rappi"`
	MasDelivery VentaAppInput `json:"mas_delivery"`
}

type ArqueoCajaInput struct {
	EfectivoInicial decimal.Decimal `json:"efectivo_inicial" validate:"min=0"`
	EfectivoContado decimal.Decimal `json:"efectivo_contado" validate:"min=0"`
	GastosEfectivo  decimal.Decimal `json:"gastos_efectivo"  validate:"min=0"`
	DiferenciaCaja  decimal.Decimal `json:"diferencia_caja"`
}

type GuardarCierreRequest struct {
	SucursalID     string                  `json:"sucursal_id" validate:"required,uuid"`
	Fecha          string                  `json:"fecha"       validate:"required,datetime=2006-01-02"`
	Turno          string                  `json:"turno"       validate:"required,oneof=manana mediodia noche trasnoche"`
	Hamburguesas   ConteoHamburguesasInput `json:"hamburguesas"`
	VentasLocal    VentasLocalInput        `json:"ventas_local"`
	VentasApps     VentasAppsInput         `json:"ventas_apps"`
	ArqueoCaja     ArqueoCajaInput         `json:"arqueo_caja"`
	TotalFacturado decimal.Decimal         `json:"total_facturado" validate:"min=0"`
	Notas          string                  `json:"notas"           validate:"max=2000"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AlertasCierre struct {
	Facturacion bool `json:"facturacion"`
	Posnet      bool `json:"posnet"`
	Apps        bool `json:"apps"`
	Caja        bool `json:"caja"`
}

// Cantidad returns how many flags are raised.
func (a AlertasCierre) Cantidad() int {
	n := 0
	for _, b := range []bool{a.Facturacion, a.Posnet, a.Apps, a.Caja} {
		if b {
			n++
		}
	}
	return n
}

type CierreResponse struct {
	ID         string `json:"id"`
	SucursalID string `json:"sucursal_id"`
	Fecha      string `json:"fecha"`
	Turno      string `json:"turno"`

	TotalHamburguesas     int             `json:"total_hamburguesas"`
	TotalVendido          decimal.Decimal `json:"total_vendido"`
	TotalEfectivo         decimal.Decimal `json:"total_efectivo"`
	TotalDigital          decimal.Decimal `json:"total_digital"`
	TotalFacturado        decimal.Decimal `json:"total_facturado"`
	FacturacionEsperada   decimal.Decimal `json:"facturacion_esperada"`
	FacturacionDiferencia decimal.Decimal `json:"facturacion_diferencia"`
	DiferenciaPosnet      decimal.Decimal `json:"diferencia_posnet"`
	DiferenciaApps        decimal.Decimal `json:"diferencia_apps"`
	DiferenciaCaja        decimal.Decimal `json:"diferencia_caja"`

	Alertas AlertasCierre `json:"alertas"`
	Notas   string        `json:"notas"`

	CerradoPor string `json:"cerrado_por"`
	UpdatedAt  string `json:"updated_at"`
}
