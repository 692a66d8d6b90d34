package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/config"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/dto"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory CierreRepository keyed by (sucursal, fecha, turno) ─────────────

type fakeCierreRepo struct {
	rows map[string]*model.CierreTurno
}

func newFakeCierreRepo() *fakeCierreRepo {
	return &fakeCierreRepo{rows: make(map[string]*model.CierreTurno)}
}

func identidad(sucursalID uuid.UUID, fecha time.Time, turno string) string {
	return fmt.Sprintf("%s|%s|%s", sucursalID, fecha.Format("2006-01-02"), turno)
}

func (r *fakeCierreRepo) Upsert(_ context.Context, c *model.CierreTurno) error {
	key := identidad(c.SucursalID, c.Fecha, c.Turno)
	if prev, ok := r.rows[key]; ok {
		c.ID = prev.ID // conflict path keeps the original row id
	} else if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.UpdatedAt = time.Now()
	copia := *c
	r.rows[key] = &copia
	return nil
}

func (r *fakeCierreRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CierreTurno, error) {
	for _, c := range r.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCierreRepo) FindByIdentidad(_ context.Context, sucursalID uuid.UUID, fecha time.Time, turno string) (*model.CierreTurno, error) {
	c, ok := r.rows[identidad(sucursalID, fecha, turno)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCierreRepo) ListByDia(_ context.Context, sucursalID uuid.UUID, fecha time.Time, turno *string) ([]model.CierreTurno, error) {
	var out []model.CierreTurno
	for _, c := range r.rows {
		if c.SucursalID != sucursalID || !c.Fecha.Equal(fecha) {
			continue
		}
		if turno != nil && c.Turno != *turno {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCierreRepo) ListByRango(_ context.Context, desde, hasta time.Time) ([]model.CierreTurno, error) {
	var out []model.CierreTurno
	for _, c := range r.rows {
		if c.Fecha.Before(desde) || c.Fecha.After(hasta) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

// ── In-memory ReadModels that records invalidations ──────────────────────────

type fakeReadModels struct {
	cierresDia     map[string][]dto.CierreResponse
	invalidaciones []string
}

func newFakeReadModels() *fakeReadModels {
	return &fakeReadModels{cierresDia: make(map[string][]dto.CierreResponse)}
}

func (f *fakeReadModels) GetCierresDia(_ context.Context, sucursalID uuid.UUID, fecha string) ([]dto.CierreResponse, bool) {
	v, ok := f.cierresDia[sucursalID.String()+"|"+fecha]
	return v, ok
}

func (f *fakeReadModels) SetCierresDia(_ context.Context, sucursalID uuid.UUID, fecha string, cierres []dto.CierreResponse) {
	f.cierresDia[sucursalID.String()+"|"+fecha] = cierres
}

func (f *fakeReadModels) GetCierre(_ context.Context, _ uuid.UUID, _, _ string) (*dto.CierreResponse, bool) {
	return nil, false
}

func (f *fakeReadModels) SetCierre(_ context.Context, _ uuid.UUID, _, _ string, _ *dto.CierreResponse) {
}

func (f *fakeReadModels) GetResumen(_ context.Context, _, _ string) (*dto.ResumenMarcaResponse, bool) {
	return nil, false
}

func (f *fakeReadModels) SetResumen(_ context.Context, _, _ string, _ *dto.ResumenMarcaResponse) {}

func (f *fakeReadModels) InvalidarCierre(_ context.Context, sucursalID uuid.UUID, fecha, turno string) {
	delete(f.cierresDia, sucursalID.String()+"|"+fecha)
	f.invalidaciones = append(f.invalidaciones, sucursalID.String()+"|"+fecha+"|"+turno)
}

// ── In-memory NotificacionRepository ─────────────────────────────────────────

type fakeNotifRepo struct {
	creadas []model.NotificacionAlerta
}

func (r *fakeNotifRepo) Create(_ context.Context, n *model.NotificacionAlerta) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.creadas = append(r.creadas, *n)
	return nil
}

func (r *fakeNotifRepo) FindByID(_ context.Context, id uuid.UUID) (*model.NotificacionAlerta, error) {
	for i := range r.creadas {
		if r.creadas[i].ID == id {
			return &r.creadas[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeNotifRepo) Update(_ context.Context, n *model.NotificacionAlerta) error {
	for i := range r.creadas {
		if r.creadas[i].ID == n.ID {
			r.creadas[i] = *n
			return nil
		}
	}
	return errors.New("not found")
}

func (r *fakeNotifRepo) ListPendingRetries(_ context.Context, _ time.Time, _ int) ([]model.NotificacionAlerta, error) {
	return nil, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func testConfig() *config.Config {
	return &config.Config{ToleranciaPosnet: 500, ToleranciaApps: 500}
}

func requestBase(sucursalID uuid.UUID) dto.GuardarCierreRequest {
	return dto.GuardarCierreRequest{
		SucursalID: sucursalID.String(),
		Fecha:      "2026-08-15",
		Turno:      model.TurnoNoche,
		Hamburguesas: dto.ConteoHamburguesasInput{
			Clasica:  30,
			Original: 20,
			Extras:   dto.ConteoExtrasInput{Papas: 40},
		},
		VentasLocal: dto.VentasLocalInput{
			Efectivo:        decimal.NewFromInt(100000),
			Digital:         decimal.NewFromInt(40000),
			Tarjeta:         decimal.NewFromInt(60000),
			PosnetReportado: decimal.NewFromInt(80000),
		},
		VentasApps: dto.VentasAppsInput{
			PedidosYa: dto.VentaAppInput{
				Reportado:     decimal.NewFromInt(20000),
				CobradoPosnet: decimal.NewFromInt(20000),
			},
		},
		ArqueoCaja: dto.ArqueoCajaInput{
			EfectivoInicial: decimal.NewFromInt(10000),
			EfectivoContado: decimal.NewFromInt(110000),
		},
		TotalFacturado: decimal.NewFromInt(220000),
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestGuardarRequiereActor(t *testing.T) {
	svc := NewCierreService(newFakeCierreRepo(), nil, newFakeReadModels(), nil, testConfig())

	_, err := svc.Guardar(context.Background(), uuid.Nil, requestBase(uuid.New()))
	assert.ErrorIs(t, err, ErrNoAutenticado)
}

func TestGuardarRechazaEntradaInvalida(t *testing.T) {
	svc := NewCierreService(newFakeCierreRepo(), nil, newFakeReadModels(), nil, testConfig())
	usuario := uuid.New()

	req := requestBase(uuid.New())
	req.Fecha = "15/08/2026"
	_, err := svc.Guardar(context.Background(), usuario, req)
	assert.Error(t, err)

	req = requestBase(uuid.New())
	req.Turno = "madrugada"
	_, err = svc.Guardar(context.Background(), usuario, req)
	assert.Error(t, err)
}

func TestGuardarCalculaDerivados(t *testing.T) {
	repo := newFakeCierreRepo()
	svc := NewCierreService(repo, nil, newFakeReadModels(), nil, testConfig())

	resp, err := svc.Guardar(context.Background(), uuid.New(), requestBase(uuid.New()))
	require.NoError(t, err)

	// local 200000 (100000 efectivo + 40000 digital + 60000 tarjeta) + apps 20000
	assert.True(t, resp.TotalVendido.Equal(decimal.NewFromInt(220000)))
	assert.True(t, resp.TotalEfectivo.Equal(decimal.NewFromInt(100000)))
	assert.True(t, resp.TotalDigital.Equal(decimal.NewFromInt(120000)))
	assert.True(t, resp.TotalVendido.Equal(resp.TotalEfectivo.Add(resp.TotalDigital)))
	assert.True(t, resp.FacturacionEsperada.Equal(decimal.NewFromInt(220000)))
	assert.Equal(t, 90, resp.TotalHamburguesas)

	// planilla cuadrada: sin diferencias en ningún frente
	assert.False(t, resp.Alertas.Facturacion)
	assert.False(t, resp.Alertas.Posnet)
	assert.False(t, resp.Alertas.Apps)
	assert.False(t, resp.Alertas.Caja)
	assert.True(t, resp.DiferenciaPosnet.IsZero())
	assert.True(t, resp.DiferenciaApps.IsZero())
}

func TestGuardarEsIdempotentePorIdentidad(t *testing.T) {
	repo := newFakeCierreRepo()
	svc := NewCierreService(repo, nil, newFakeReadModels(), nil, testConfig())

	sucursal := uuid.New()
	usuario := uuid.New()
	ctx := context.Background()

	primero, err := svc.Guardar(ctx, usuario, requestBase(sucursal))
	require.NoError(t, err)

	// Second submission for the same shift with a different payload
	req := requestBase(sucursal)
	req.VentasLocal.Efectivo = decimal.NewFromInt(50000)
	req.TotalFacturado = decimal.NewFromInt(170000)
	segundo, err := svc.Guardar(ctx, usuario, req)
	require.NoError(t, err)

	assert.Len(t, repo.rows, 1, "la doble carga nunca crea una segunda fila")
	assert.Equal(t, primero.ID, segundo.ID)
	assert.True(t, segundo.TotalVendido.Equal(decimal.NewFromInt(170000)))

	persistido, err := repo.FindByIdentidad(ctx, sucursal, mustFecha(t, "2026-08-15"), model.TurnoNoche)
	require.NoError(t, err)
	assert.True(t, persistido.TotalVendido.Equal(decimal.NewFromInt(170000)))
}

func TestGuardarInvalidaReadModels(t *testing.T) {
	cachegw := newFakeReadModels()
	svc := NewCierreService(newFakeCierreRepo(), nil, cachegw, nil, testConfig())

	sucursal := uuid.New()
	ctx := context.Background()

	// Warm the day cache, then save: the cached list must be dropped
	cachegw.SetCierresDia(ctx, sucursal, "2026-08-15", []dto.CierreResponse{{Turno: "vieja"}})

	_, err := svc.Guardar(ctx, uuid.New(), requestBase(sucursal))
	require.NoError(t, err)

	_, ok := cachegw.GetCierresDia(ctx, sucursal, "2026-08-15")
	assert.False(t, ok)
	require.Len(t, cachegw.invalidaciones, 1)
	assert.Contains(t, cachegw.invalidaciones[0], model.TurnoNoche)
}

func TestGuardarEncolaNotificacionesPorAlerta(t *testing.T) {
	notifs := &fakeNotifRepo{}
	svc := NewCierreService(newFakeCierreRepo(), notifs, newFakeReadModels(), nil, testConfig())

	req := requestBase(uuid.New())
	// Force two alerts: caja descuadrada and facturación fuera del 10%
	req.ArqueoCaja.DiferenciaCaja = decimal.NewFromInt(-800)
	req.TotalFacturado = decimal.NewFromInt(150000)

	resp, err := svc.Guardar(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.True(t, resp.Alertas.Caja)
	assert.True(t, resp.Alertas.Facturacion)

	tipos := make([]string, 0, len(notifs.creadas))
	for _, n := range notifs.creadas {
		tipos = append(tipos, n.Tipo)
		assert.Equal(t, "pendiente", n.Estado)
		// Born with a retry date so the cron rescues it if the enqueue fails
		require.NotNil(t, n.NextRetryAt)
		assert.True(t, n.NextRetryAt.After(time.Now()))
	}
	assert.Contains(t, tipos, "caja")
	assert.Contains(t, tipos, "facturacion")
}

func TestObtenerPorDiaUsaCacheSoloSinFiltroDeTurno(t *testing.T) {
	repo := newFakeCierreRepo()
	cachegw := newFakeReadModels()
	svc := NewCierreService(repo, nil, cachegw, nil, testConfig())

	sucursal := uuid.New()
	ctx := context.Background()

	_, err := svc.Guardar(ctx, uuid.New(), requestBase(sucursal))
	require.NoError(t, err)

	// First read fills the day read-model
	lista, err := svc.ObtenerPorDia(ctx, sucursal, "2026-08-15", nil)
	require.NoError(t, err)
	require.Len(t, lista, 1)
	_, ok := cachegw.GetCierresDia(ctx, sucursal, "2026-08-15")
	assert.True(t, ok)

	// Filtered read bypasses the cache and hits the repo
	turno := model.TurnoNoche
	filtrada, err := svc.ObtenerPorDia(ctx, sucursal, "2026-08-15", &turno)
	require.NoError(t, err)
	require.Len(t, filtrada, 1)
	assert.Equal(t, model.TurnoNoche, filtrada[0].Turno)
}

// cierreRepoCaido simulates a backing store that is down: every lookup
// returns the injected error instead of a miss.
type cierreRepoCaido struct {
	*fakeCierreRepo
	err error
}

func (r *cierreRepoCaido) FindByIdentidad(_ context.Context, _ uuid.UUID, _ time.Time, _ string) (*model.CierreTurno, error) {
	return nil, r.err
}

func TestObtenerUnoDistingueNoEncontradoDeFallas(t *testing.T) {
	ctx := context.Background()

	svc := NewCierreService(newFakeCierreRepo(), nil, newFakeReadModels(), nil, testConfig())
	_, err := svc.ObtenerUno(ctx, uuid.New(), "2026-08-15", model.TurnoNoche)
	assert.ErrorIs(t, err, ErrCierreNoEncontrado)

	caida := errors.New("conexión rechazada")
	svcCaido := NewCierreService(&cierreRepoCaido{fakeCierreRepo: newFakeCierreRepo(), err: caida},
		nil, newFakeReadModels(), nil, testConfig())
	_, err = svcCaido.ObtenerUno(ctx, uuid.New(), "2026-08-15", model.TurnoNoche)
	assert.ErrorIs(t, err, caida)
	assert.NotErrorIs(t, err, ErrCierreNoEncontrado)
}

func mustFecha(t *testing.T, s string) time.Time {
	t.Helper()
	f, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return f
}
