package service

import (
	"context"
	"errors"
	"testing"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── In-memory SucursalRepository ─────────────────────────────────────────────

type fakeSucursalRepo struct {
	sucursales []model.Sucursal
	turnos     []model.TurnoSucursal
}

func (r *fakeSucursalRepo) Create(_ context.Context, s *model.Sucursal) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sucursales = append(r.sucursales, *s)
	return nil
}

func (r *fakeSucursalRepo) Update(_ context.Context, s *model.Sucursal) error {
	for i := range r.sucursales {
		if r.sucursales[i].ID == s.ID {
			r.sucursales[i] = *s
			return nil
		}
	}
	return errors.New("not found")
}

func (r *fakeSucursalRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sucursal, error) {
	for i := range r.sucursales {
		if r.sucursales[i].ID == id {
			return &r.sucursales[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeSucursalRepo) List(_ context.Context, incluirInactivas bool) ([]model.Sucursal, error) {
	var out []model.Sucursal
	for _, s := range r.sucursales {
		if !incluirInactivas && !s.Activa {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSucursalRepo) SetTurno(_ context.Context, t *model.TurnoSucursal) error {
	for i := range r.turnos {
		if r.turnos[i].SucursalID == t.SucursalID && r.turnos[i].Nombre == t.Nombre {
			r.turnos[i] = *t
			return nil
		}
	}
	r.turnos = append(r.turnos, *t)
	return nil
}

func (r *fakeSucursalRepo) ListTurnos(_ context.Context) ([]model.TurnoSucursal, error) {
	return r.turnos, nil
}

// ── Tests ────────────────────────────────────────────────────────────────────

func seedCierre(t *testing.T, repo *fakeCierreRepo, sucursal uuid.UUID, fecha, turno string, vendido int64) {
	t.Helper()
	monto := decimal.NewFromInt(vendido)
	err := repo.Upsert(context.Background(), &model.CierreTurno{
		SucursalID:    sucursal,
		Fecha:         mustFecha(t, fecha),
		Turno:         turno,
		TotalVendido:  monto,
		TotalEfectivo: monto,
		TotalDigital:  decimal.Zero,
	})
	require.NoError(t, err)
}

func TestResumenMarcaAgregaPorSucursalYTurno(t *testing.T) {
	cierres := newFakeCierreRepo()
	sucursales := &fakeSucursalRepo{}
	ctx := context.Background()

	sucA := model.Sucursal{Nombre: "Hoppiness Centro", Slug: "centro", Activa: true}
	require.NoError(t, sucursales.Create(ctx, &sucA))
	sucB := model.Sucursal{Nombre: "Hoppiness Cerro", Slug: "cerro", Activa: true}
	require.NoError(t, sucursales.Create(ctx, &sucB))

	require.NoError(t, sucursales.SetTurno(ctx, &model.TurnoSucursal{SucursalID: sucA.ID, Nombre: model.TurnoManana, Activo: true}))
	require.NoError(t, sucursales.SetTurno(ctx, &model.TurnoSucursal{SucursalID: sucA.ID, Nombre: model.TurnoNoche, Activo: true}))

	seedCierre(t, cierres, sucA.ID, "2026-08-15", model.TurnoManana, 1000)
	seedCierre(t, cierres, sucA.ID, "2026-08-15", model.TurnoNoche, 500)

	svc := NewResumenService(cierres, sucursales, newFakeReadModels())

	resumen, err := svc.ResumenMarca(ctx, "2026-08-15", "2026-08-15")
	require.NoError(t, err)
	require.Len(t, resumen.Sucursales, 2)

	porID := make(map[string]int)
	for i, s := range resumen.Sucursales {
		porID[s.SucursalID] = i
	}

	a := resumen.Sucursales[porID[sucA.ID.String()]]
	assert.True(t, a.Totales.Vendido.Equal(decimal.NewFromInt(1500)))
	require.Len(t, a.CierresPorTurno, 2)
	assert.Len(t, a.CierresPorTurno[model.TurnoManana], 1)
	assert.Len(t, a.CierresPorTurno[model.TurnoNoche], 1)
	assert.ElementsMatch(t, []string{model.TurnoManana, model.TurnoNoche}, a.TurnosActivos)

	// Branch without closures still shows up, zeroed and with empty coverage
	b := resumen.Sucursales[porID[sucB.ID.String()]]
	assert.True(t, b.Totales.Vendido.IsZero())
	assert.Empty(t, b.CierresPorTurno)
	assert.NotNil(t, b.TurnosActivos)
	assert.Empty(t, b.TurnosActivos)
}

func TestResumenMarcaDesglosaHamburguesasPorFamilia(t *testing.T) {
	cierres := newFakeCierreRepo()
	sucursales := &fakeSucursalRepo{}
	ctx := context.Background()

	suc := model.Sucursal{Nombre: "Hoppiness Centro", Slug: "centro", Activa: true}
	require.NoError(t, sucursales.Create(ctx, &suc))

	require.NoError(t, cierres.Upsert(ctx, &model.CierreTurno{
		SucursalID:        suc.ID,
		Fecha:             mustFecha(t, "2026-08-15"),
		Turno:             model.TurnoNoche,
		TotalVendido:      decimal.NewFromInt(1000),
		TotalEfectivo:     decimal.NewFromInt(1000),
		TotalHamburguesas: 5,
		Hamburguesas: model.ConteoHamburguesas{
			Clasica: 3,
			Ultra:   model.ConteoVariantes{Original: 2},
		},
	}))

	svc := NewResumenService(cierres, sucursales, newFakeReadModels())
	resumen, err := svc.ResumenMarca(ctx, "2026-08-15", "2026-08-15")
	require.NoError(t, err)
	require.Len(t, resumen.Sucursales, 1)

	totales := resumen.Sucursales[0].Totales
	assert.Equal(t, 5, totales.Hamburguesas)
	assert.Equal(t, 3, totales.Familias.Clasica)
	assert.Equal(t, 2, totales.Familias.Ultra)
	assert.Zero(t, totales.Familias.Original)
	assert.Zero(t, totales.Familias.Vegetarianas)
}

func TestResumenMarcaIncluyeSucursalesInactivas(t *testing.T) {
	cierres := newFakeCierreRepo()
	sucursales := &fakeSucursalRepo{}
	ctx := context.Background()

	// Deactivated after operating: its historical closures still count
	suc := model.Sucursal{Nombre: "Hoppiness Güemes", Slug: "guemes", Activa: false}
	require.NoError(t, sucursales.Create(ctx, &suc))

	seedCierre(t, cierres, suc.ID, "2026-08-15", model.TurnoNoche, 1000)

	svc := NewResumenService(cierres, sucursales, newFakeReadModels())
	resumen, err := svc.ResumenMarca(ctx, "2026-08-15", "2026-08-15")
	require.NoError(t, err)

	require.Len(t, resumen.Sucursales, 1)
	assert.Equal(t, suc.ID.String(), resumen.Sucursales[0].SucursalID)
	assert.True(t, resumen.Sucursales[0].Totales.Vendido.Equal(decimal.NewFromInt(1000)))
}

func TestResumenMarcaValidaElRango(t *testing.T) {
	svc := NewResumenService(newFakeCierreRepo(), &fakeSucursalRepo{}, newFakeReadModels())
	ctx := context.Background()

	_, err := svc.ResumenMarca(ctx, "2026-08-20", "2026-08-10")
	assert.Error(t, err)

	_, err = svc.ResumenMarca(ctx, "20/08/2026", "2026-08-21")
	assert.Error(t, err)
}

func TestResumenMarcaIncluyeRangoCompleto(t *testing.T) {
	cierres := newFakeCierreRepo()
	sucursales := &fakeSucursalRepo{}
	ctx := context.Background()

	suc := model.Sucursal{Nombre: "Hoppiness Centro", Slug: "centro", Activa: true}
	require.NoError(t, sucursales.Create(ctx, &suc))

	seedCierre(t, cierres, suc.ID, "2026-08-10", model.TurnoNoche, 300)
	seedCierre(t, cierres, suc.ID, "2026-08-12", model.TurnoNoche, 200)
	seedCierre(t, cierres, suc.ID, "2026-08-20", model.TurnoNoche, 999) // fuera del rango

	svc := NewResumenService(cierres, sucursales, newFakeReadModels())
	resumen, err := svc.ResumenMarca(ctx, "2026-08-10", "2026-08-15")
	require.NoError(t, err)

	require.Len(t, resumen.Sucursales, 1)
	assert.True(t, resumen.Sucursales[0].Totales.Vendido.Equal(decimal.NewFromInt(500)))
}
