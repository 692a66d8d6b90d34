package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/cache"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/dto"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/model"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ResumenService interface {
	// ResumenMarca folds every closure in [desde, hasta] into per-branch
	// totals plus shift coverage. The whole range is materialized in memory;
	// acceptable while the grain stays at a handful of shifts per branch per
	// day — revisit before the range grows past that.
	ResumenMarca(ctx context.Context, desde, hasta string) (*dto.ResumenMarcaResponse, error)
}

type resumenService struct {
	cierres    repository.CierreRepository
	sucursales repository.SucursalRepository
	readModels cache.ReadModels
}

func NewResumenService(
	cierres repository.CierreRepository,
	sucursales repository.SucursalRepository,
	readModels cache.ReadModels,
) ResumenService {
	return &resumenService{cierres: cierres, sucursales: sucursales, readModels: readModels}
}

func (s *resumenService) ResumenMarca(ctx context.Context, desde, hasta string) (*dto.ResumenMarcaResponse, error) {
	desdeT, err := time.Parse(fechaLayout, desde)
	if err != nil {
		return nil, fmt.Errorf("desde inválido (se espera AAAA-MM-DD): %w", err)
	}
	hastaT, err := time.Parse(fechaLayout, hasta)
	if err != nil {
		return nil, fmt.Errorf("hasta inválido (se espera AAAA-MM-DD): %w", err)
	}
	if hastaT.Before(desdeT) {
		return nil, errors.New("rango inválido: hasta es anterior a desde")
	}

	if cached, ok := s.readModels.GetResumen(ctx, desde, hasta); ok {
		return cached, nil
	}

	cierres, err := s.cierres.ListByRango(ctx, desdeT, hastaT)
	if err != nil {
		return nil, err
	}
	// Every branch, inactive ones included: a sucursal deactivated after
	// operating still has in-range closures that belong in the brand totals.
	sucursales, err := s.sucursales.List(ctx, true)
	if err != nil {
		return nil, err
	}
	turnos, err := s.sucursales.ListTurnos(ctx)
	if err != nil {
		return nil, err
	}

	// Group inputs by branch before folding
	cierresPorSucursal := make(map[uuid.UUID][]model.CierreTurno)
	for _, c := range cierres {
		cierresPorSucursal[c.SucursalID] = append(cierresPorSucursal[c.SucursalID], c)
	}
	turnosActivos := make(map[uuid.UUID][]string)
	for _, t := range turnos {
		if t.Activo {
			turnosActivos[t.SucursalID] = append(turnosActivos[t.SucursalID], t.Nombre)
		}
	}

	resumen := &dto.ResumenMarcaResponse{
		Desde:      desde,
		Hasta:      hasta,
		Sucursales: make([]dto.ResumenSucursal, 0, len(sucursales)),
	}
	for _, suc := range sucursales {
		entry := foldSucursal(suc, cierresPorSucursal[suc.ID], turnosActivos[suc.ID])
		resumen.Sucursales = append(resumen.Sucursales, entry)
	}

	s.readModels.SetResumen(ctx, desde, hasta, resumen)
	return resumen, nil
}

// foldSucursal accumulates one branch's closures into cumulative totals and
// the per-shift coverage map.
func foldSucursal(suc model.Sucursal, cierres []model.CierreTurno, activos []string) dto.ResumenSucursal {
	totales := dto.TotalesSucursal{
		Vendido:   decimal.Zero,
		Efectivo:  decimal.Zero,
		Digital:   decimal.Zero,
		Facturado: decimal.Zero,
	}
	porTurno := make(map[string][]dto.CierreResumen)

	for _, c := range cierres {
		alertas := dto.AlertasCierre{
			Facturacion: c.TieneAlertaFacturacion,
			Posnet:      c.TieneAlertaPosnet,
			Apps:        c.TieneAlertaApps,
			Caja:        c.TieneAlertaCaja,
		}
		totales.Vendido = totales.Vendido.Add(c.TotalVendido)
		totales.Efectivo = totales.Efectivo.Add(c.TotalEfectivo)
		totales.Digital = totales.Digital.Add(c.TotalDigital)
		totales.Facturado = totales.Facturado.Add(c.TotalFacturado)
		totales.Hamburguesas += c.TotalHamburguesas
		acumularFamilias(&totales.Familias, c.Hamburguesas)
		totales.Alertas += alertas.Cantidad()

		porTurno[c.Turno] = append(porTurno[c.Turno], dto.CierreResumen{
			Fecha:        c.Fecha.Format(fechaLayout),
			Turno:        c.Turno,
			Vendido:      c.TotalVendido,
			Hamburguesas: c.TotalHamburguesas,
			Alertas:      alertas,
		})
	}

	if activos == nil {
		activos = []string{}
	}
	return dto.ResumenSucursal{
		SucursalID:      suc.ID.String(),
		Nombre:          suc.Nombre,
		Slug:            suc.Slug,
		Totales:         totales,
		TurnosActivos:   activos,
		CierresPorTurno: porTurno,
	}
}

// acumularFamilias adds one closure's burger counts into the per-family
// accumulator, collapsing variant recipes into their family.
func acumularFamilias(f *dto.FamiliasHamburguesas, h model.ConteoHamburguesas) {
	f.Clasica += h.Clasica
	f.Original += h.Original
	f.ExtraSabor += h.ExtraSabor
	f.Vegetarianas += h.Vegetarianas.Clasica + h.Vegetarianas.Original
	f.Ultra += h.Ultra.Clasica + h.Ultra.Original
	f.Extras += h.Extras.Medallon + h.Extras.Papas + h.Extras.Dips
}
