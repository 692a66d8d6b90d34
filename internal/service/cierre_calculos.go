package service

// Derived-value arithmetic for shift closures. Every total, discrepancy and
// alert flag is produced here by a pure function over the declared inputs, so
// each rule is testable in isolation with literal fixtures. Nothing in this
// file touches the database.

import (
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/model"

	"github.com/shopspring/decimal"
)

// umbralFacturacion: the invoicing alert fires when the reported total strays
// more than 10% from the expected amount (strictly, and only when the expected
// amount is positive).
var umbralFacturacion = decimal.NewFromFloat(0.10)

// TotalesCanal buckets a channel group's revenue by tender type.
type TotalesCanal struct {
	Total    decimal.Decimal
	Efectivo decimal.Decimal
	Digital  decimal.Decimal
}

// calcularTotalHamburguesas sums every product-family sub-count.
func calcularTotalHamburguesas(h model.ConteoHamburguesas) int {
	return h.Clasica + h.Original + h.ExtraSabor +
		h.Vegetarianas.Clasica + h.Vegetarianas.Original +
		h.Ultra.Clasica + h.Ultra.Original +
		h.Extras.Medallon + h.Extras.Papas + h.Extras.Dips
}

// calcularTotalesVentasLocal folds in-person sales into tender buckets.
// Cash stands alone; QR/transfer and card sales are both non-cash.
// The terminal-reported figure is a reconciliation input, not revenue — it is
// deliberately excluded from the total.
func calcularTotalesVentasLocal(v model.VentasLocal) TotalesCanal {
	digital := v.Digital.Add(v.Tarjeta)
	return TotalesCanal{
		Total:    v.Efectivo.Add(digital),
		Efectivo: v.Efectivo,
		Digital:  digital,
	}
}

// calcularTotalesVentasApps folds delivery-app sales. Apps never settle in
// cash at the counter, so everything lands in the digital bucket.
func calcularTotalesVentasApps(v model.VentasApps) TotalesCanal {
	total := decimal.Zero
	for _, app := range v.Entradas() {
		total = total.Add(app.Reportado)
	}
	return TotalesCanal{Total: total, Efectivo: decimal.Zero, Digital: total}
}

// calcularFacturacionEsperada is the amount that should have been invoiced:
// every recognized sales channel, local and apps alike.
func calcularFacturacionEsperada(local model.VentasLocal, apps model.VentasApps) decimal.Decimal {
	return calcularTotalesVentasLocal(local).Total.Add(calcularTotalesVentasApps(apps).Total)
}

// evaluarAlertaFacturacion compares reported vs expected invoicing.
// No alert when nothing was expected, whatever was reported.
func evaluarAlertaFacturacion(esperada, facturado decimal.Decimal) (decimal.Decimal, bool) {
	diferencia := facturado.Sub(esperada)
	if !esperada.IsPositive() {
		return diferencia, false
	}
	return diferencia, diferencia.Abs().GreaterThan(esperada.Mul(umbralFacturacion))
}

// calcularDiferenciaPosnet reconciles the card terminal's batch report against
// what the system expected to be settled through it: register card sales plus
// every app amount collected via the terminal. Alert beyond tolerancia, strict.
func calcularDiferenciaPosnet(local model.VentasLocal, apps model.VentasApps, tolerancia decimal.Decimal) (decimal.Decimal, bool) {
	esperado := local.Tarjeta
	for _, app := range apps.Entradas() {
		esperado = esperado.Add(app.CobradoPosnet)
	}
	diferencia := local.PosnetReportado.Sub(esperado)
	return diferencia, diferencia.Abs().GreaterThan(tolerancia)
}

// calcularDiferenciasApps reconciles app-reported revenue against the amounts
// actually collected through the terminal for those apps.
func calcularDiferenciasApps(apps model.VentasApps, tolerancia decimal.Decimal) (decimal.Decimal, bool) {
	diferencia := decimal.Zero
	for _, app := range apps.Entradas() {
		diferencia = diferencia.Add(app.Reportado.Sub(app.CobradoPosnet))
	}
	return diferencia, diferencia.Abs().GreaterThan(tolerancia)
}

// evaluarAlertaCaja: any nonzero cash-count discrepancy raises the flag.
func evaluarAlertaCaja(a model.ArqueoCaja) bool {
	return !a.DiferenciaCaja.IsZero()
}
