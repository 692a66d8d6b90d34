package infra

// pdf.go — printable shift-closure report using go-pdf/fpdf.
// One A5 page per cierre: branch/date/shift header, revenue by channel,
// reconciliation lines with their alert markers, cash count, and notes.
// The output file is saved to storagePath/cierre_{sucursal}_{fecha}_{turno}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateCierrePDF renders one closure as a printable report.
// Returns the absolute path to the generated file.
func GenerateCierrePDF(c *model.CierreTurno, sucursalNombre, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("cierre_%s_%s_%s.pdf", c.SucursalID, c.Fecha.Format("2006-01-02"), c.Turno)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Hoppiness", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Cierre de turno", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, sucursalNombre, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, fmt.Sprintf("%s — turno %s", c.Fecha.Format("02/01/2006"), c.Turno), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.62
	col2 := contentW * 0.38

	linea := func(label string, monto decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 8)
		pdf.CellFormat(col1, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, "$"+monto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	// ── Revenue ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, "Ventas", "B", 1, "L", false, 0, "")
	linea("Local efectivo", c.VentasLocal.Efectivo, false)
	linea("Local digital", c.VentasLocal.Digital, false)
	linea("Local tarjeta", c.VentasLocal.Tarjeta, false)
	linea("Apps delivery", c.VentasApps.Total, false)
	linea("Total vendido", c.TotalVendido, true)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Hamburguesas vendidas: %d", c.TotalHamburguesas), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Reconciliation ───────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, "Conciliación", "B", 1, "L", false, 0, "")
	linea("Facturación esperada", c.FacturacionEsperada, false)
	linea("Facturado declarado", c.TotalFacturado, false)
	linea(marcar("Diferencia facturación", c.TieneAlertaFacturacion), c.FacturacionDiferencia, c.TieneAlertaFacturacion)
	linea(marcar("Diferencia posnet", c.TieneAlertaPosnet), c.DiferenciaPosnet, c.TieneAlertaPosnet)
	linea(marcar("Diferencia apps", c.TieneAlertaApps), c.DiferenciaApps, c.TieneAlertaApps)
	linea(marcar("Diferencia de caja", c.TieneAlertaCaja), c.ArqueoCaja.DiferenciaCaja, c.TieneAlertaCaja)
	pdf.Ln(2)

	// ── Notes ────────────────────────────────────────────────────────────────
	if c.Notas != "" {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 6, "Notas", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.MultiCell(contentW, 4, c.Notas, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

func marcar(label string, alerta bool) string {
	if alerta {
		return label + " (!)"
	}
	return label
}
