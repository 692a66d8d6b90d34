package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/cache"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/config"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/dto"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/model"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/repository"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const fechaLayout = "2006-01-02"

// ErrNoAutenticado is returned when the save mutation runs without an actor.
var ErrNoAutenticado = errors.New("autenticación requerida para cerrar un turno")

// ErrCierreNoEncontrado marks a lookup that matched no row. Any other read
// failure propagates untouched so the caller can tell it from a miss.
var ErrCierreNoEncontrado = errors.New("cierre no encontrado")

type CierreService interface {
	// Guardar recomputes every derived field and writes the full row.
	// Idempotent per (sucursal, fecha, turno): a second submission overwrites.
	Guardar(ctx context.Context, usuarioID uuid.UUID, req dto.GuardarCierreRequest) (*dto.CierreResponse, error)
	ObtenerPorDia(ctx context.Context, sucursalID uuid.UUID, fecha string, turno *string) ([]dto.CierreResponse, error)
	ObtenerUno(ctx context.Context, sucursalID uuid.UUID, fecha, turno string) (*dto.CierreResponse, error)
}

type cierreService struct {
	repo       repository.CierreRepository
	notifRepo  repository.NotificacionRepository
	readModels cache.ReadModels
	dispatcher *worker.Dispatcher

	toleranciaPosnet decimal.Decimal
	toleranciaApps   decimal.Decimal
}

// NewCierreService wires the reconciliation write path. notifRepo and
// dispatcher may be nil (alerting disabled); readModels must not be.
func NewCierreService(
	repo repository.CierreRepository,
	notifRepo repository.NotificacionRepository,
	readModels cache.ReadModels,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) CierreService {
	return &cierreService{
		repo:             repo,
		notifRepo:        notifRepo,
		readModels:       readModels,
		dispatcher:       dispatcher,
		toleranciaPosnet: decimal.NewFromFloat(cfg.ToleranciaPosnet),
		toleranciaApps:   decimal.NewFromFloat(cfg.ToleranciaApps),
	}
}

// ── Guardar ───────────────────────────────────────────────────────────────────

func (s *cierreService) Guardar(ctx context.Context, usuarioID uuid.UUID, req dto.GuardarCierreRequest) (*dto.CierreResponse, error) {
	if usuarioID == uuid.Nil {
		return nil, ErrNoAutenticado
	}

	sucursalID, err := uuid.Parse(req.SucursalID)
	if err != nil {
		return nil, fmt.Errorf("sucursal_id inválido: %w", err)
	}
	fecha, err := time.Parse(fechaLayout, req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida (se espera AAAA-MM-DD): %w", err)
	}
	if !model.TurnoValido(req.Turno) {
		return nil, fmt.Errorf("turno desconocido: %q", req.Turno)
	}

	hamburguesas := conteoFromInput(req.Hamburguesas)
	ventasLocal := ventasLocalFromInput(req.VentasLocal)
	ventasApps := ventasAppsFromInput(req.VentasApps)
	arqueo := arqueoFromInput(req.ArqueoCaja)

	// Derivations — always from scratch, never trusted from the client
	totalesLocal := calcularTotalesVentasLocal(ventasLocal)
	totalesApps := calcularTotalesVentasApps(ventasApps)
	ventasLocal.Total = totalesLocal.Total
	ventasApps.Total = totalesApps.Total

	esperada := calcularFacturacionEsperada(ventasLocal, ventasApps)
	difFacturacion, alertaFacturacion := evaluarAlertaFacturacion(esperada, req.TotalFacturado)
	difPosnet, alertaPosnet := calcularDiferenciaPosnet(ventasLocal, ventasApps, s.toleranciaPosnet)
	difApps, alertaApps := calcularDiferenciasApps(ventasApps, s.toleranciaApps)
	alertaCaja := evaluarAlertaCaja(arqueo)

	cierre := &model.CierreTurno{
		SucursalID: sucursalID,
		Fecha:      fecha,
		Turno:      req.Turno,

		Hamburguesas:   hamburguesas,
		VentasLocal:    ventasLocal,
		VentasApps:     ventasApps,
		ArqueoCaja:     arqueo,
		TotalFacturado: req.TotalFacturado,
		Notas:          req.Notas,

		TotalHamburguesas:     calcularTotalHamburguesas(hamburguesas),
		TotalVendido:          totalesLocal.Total.Add(totalesApps.Total),
		TotalEfectivo:         totalesLocal.Efectivo,
		TotalDigital:          totalesLocal.Digital.Add(totalesApps.Digital),
		FacturacionEsperada:   esperada,
		FacturacionDiferencia: difFacturacion,
		DiferenciaPosnet:      difPosnet,
		DiferenciaApps:        difApps,

		TieneAlertaFacturacion: alertaFacturacion,
		TieneAlertaPosnet:      alertaPosnet,
		TieneAlertaApps:        alertaApps,
		TieneAlertaCaja:        alertaCaja,

		CerradoPor: usuarioID,
		UpdatedBy:  usuarioID,
	}

	// Single atomic statement; storage errors surface verbatim, no retry
	if err := s.repo.Upsert(ctx, cierre); err != nil {
		return nil, err
	}

	s.readModels.InvalidarCierre(ctx, sucursalID, req.Fecha, req.Turno)
	s.encolarAlertas(ctx, cierre)

	return cierreToResponse(cierre), nil
}

// encolarAlertas persists one notification per raised flag and hands it to
// the async pipeline. Best-effort: a failure here never fails the save.
func (s *cierreService) encolarAlertas(ctx context.Context, c *model.CierreTurno) {
	if s.notifRepo == nil {
		return
	}

	type alerta struct {
		tipo    string
		detalle string
	}
	var alertas []alerta
	if c.TieneAlertaFacturacion {
		alertas = append(alertas, alerta{"facturacion",
			fmt.Sprintf("facturado %s vs esperado %s (diferencia %s)",
				c.TotalFacturado.StringFixed(2), c.FacturacionEsperada.StringFixed(2), c.FacturacionDiferencia.StringFixed(2))})
	}
	if c.TieneAlertaPosnet {
		alertas = append(alertas, alerta{"posnet",
			fmt.Sprintf("diferencia posnet %s", c.DiferenciaPosnet.StringFixed(2))})
	}
	if c.TieneAlertaApps {
		alertas = append(alertas, alerta{"apps",
			fmt.Sprintf("diferencia apps %s", c.DiferenciaApps.StringFixed(2))})
	}
	if c.TieneAlertaCaja {
		alertas = append(alertas, alerta{"caja",
			fmt.Sprintf("diferencia de caja %s", c.ArqueoCaja.DiferenciaCaja.StringFixed(2))})
	}

	// If the enqueue below fails, the retry cron only picks up notifications
	// that already carry a next_retry_at, so every one is born with a date.
	primerReintento := time.Now().Add(time.Minute)
	for _, a := range alertas {
		notif := &model.NotificacionAlerta{
			CierreID:    c.ID,
			SucursalID:  c.SucursalID,
			Tipo:        a.tipo,
			Detalle:     a.detalle,
			Estado:      "pendiente",
			NextRetryAt: &primerReintento,
		}
		if err := s.notifRepo.Create(ctx, notif); err != nil {
			log.Warn().Err(err).Str("tipo", a.tipo).Msg("cierre: no se pudo registrar la notificación de alerta")
			continue
		}
		if s.dispatcher != nil {
			if err := s.dispatcher.EnqueueAlerta(ctx, worker.AlertaJobPayload{NotificacionID: notif.ID.String()}); err != nil {
				log.Warn().Err(err).Str("notificacion_id", notif.ID.String()).Msg("cierre: no se pudo encolar la alerta")
			}
		}
	}
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *cierreService) ObtenerPorDia(ctx context.Context, sucursalID uuid.UUID, fecha string, turno *string) ([]dto.CierreResponse, error) {
	dia, err := time.Parse(fechaLayout, fecha)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida (se espera AAAA-MM-DD): %w", err)
	}
	if turno != nil && !model.TurnoValido(*turno) {
		return nil, fmt.Errorf("turno desconocido: %q", *turno)
	}

	if turno == nil {
		if cached, ok := s.readModels.GetCierresDia(ctx, sucursalID, fecha); ok {
			return cached, nil
		}
	}

	cierres, err := s.repo.ListByDia(ctx, sucursalID, dia, turno)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CierreResponse, 0, len(cierres))
	for i := range cierres {
		resp = append(resp, *cierreToResponse(&cierres[i]))
	}

	if turno == nil {
		s.readModels.SetCierresDia(ctx, sucursalID, fecha, resp)
	}
	return resp, nil
}

func (s *cierreService) ObtenerUno(ctx context.Context, sucursalID uuid.UUID, fecha, turno string) (*dto.CierreResponse, error) {
	dia, err := time.Parse(fechaLayout, fecha)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida (se espera AAAA-MM-DD): %w", err)
	}
	if !model.TurnoValido(turno) {
		return nil, fmt.Errorf("turno desconocido: %q", turno)
	}

	if cached, ok := s.readModels.GetCierre(ctx, sucursalID, fecha, turno); ok {
		return cached, nil
	}

	cierre, err := s.repo.FindByIdentidad(ctx, sucursalID, dia, turno)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCierreNoEncontrado
		}
		return nil, err
	}
	resp := cierreToResponse(cierre)
	s.readModels.SetCierre(ctx, sucursalID, fecha, turno, resp)
	return resp, nil
}

// ── Conversions ───────────────────────────────────────────────────────────────

func conteoFromInput(in dto.ConteoHamburguesasInput) model.ConteoHamburguesas {
	return model.ConteoHamburguesas{
		Clasica:      in.Clasica,
		Original:     in.Original,
		ExtraSabor:   in.ExtraSabor,
		Vegetarianas: model.ConteoVariantes{Clasica: in.Vegetarianas.Clasica, Original: in.Vegetarianas.Original},
		Ultra:        model.ConteoVariantes{Clasica: in.Ultra.Clasica, Original: in.Ultra.Original},
		Extras:       model.ConteoExtras{Medallon: in.Extras.Medallon, Papas: in.Extras.Papas, Dips: in.Extras.Dips},
	}
}

func ventasLocalFromInput(in dto.VentasLocalInput) model.VentasLocal {
	return model.VentasLocal{
		Efectivo:        in.Efectivo,
		Digital:         in.Digital,
		Tarjeta:         in.Tarjeta,
		PosnetReportado: in.PosnetReportado,
	}
}

func ventasAppsFromInput(in dto.VentasAppsInput) model.VentasApps {
	conv := func(a dto.VentaAppInput) model.VentaApp {
		return model.VentaApp{Reportado: a.Reportado, CobradoPosnet: a.CobradoPosnet}
	}
	return model.VentasApps{
		PedidosYa:   conv(in.PedidosYa),
		Rappi:       conv(in.Rappi),
		MasDelivery: conv(in.MasDelivery),
	}
}

func arqueoFromInput(in dto.ArqueoCajaInput) model.ArqueoCaja {
	return model.ArqueoCaja{
		EfectivoInicial: in.EfectivoInicial,
		EfectivoContado: in.EfectivoContado,
		GastosEfectivo:  in.GastosEfectivo,
		DiferenciaCaja:  in.DiferenciaCaja,
	}
}

func cierreToResponse(c *model.CierreTurno) *dto.CierreResponse {
	return &dto.CierreResponse{
		ID:         c.ID.String(),
		SucursalID: c.SucursalID.String(),
		Fecha:      c.Fecha.Format(fechaLayout),
		Turno:      c.Turno,

		TotalHamburguesas:     c.TotalHamburguesas,
		TotalVendido:          c.TotalVendido,
		TotalEfectivo:         c.TotalEfectivo,
		TotalDigital:          c.TotalDigital,
		TotalFacturado:        c.TotalFacturado,
		FacturacionEsperada:   c.FacturacionEsperada,
		FacturacionDiferencia: c.FacturacionDiferencia,
		DiferenciaPosnet:      c.DiferenciaPosnet,
		DiferenciaApps:        c.DiferenciaApps,
		DiferenciaCaja:        c.ArqueoCaja.DiferenciaCaja,

		Alertas: dto.AlertasCierre{
			Facturacion: c.TieneAlertaFacturacion,
			Posnet:      c.TieneAlertaPosnet,
			Apps:        c.TieneAlertaApps,
			Caja:        c.TieneAlertaCaja,
		},
		Notas: c.Notas,

		CerradoPor: c.CerradoPor.String(),
		UpdatedAt:  c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
