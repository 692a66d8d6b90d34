package service

import (
	"context"
	"errors"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/dto"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/model"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/repository"

	"github.com/google/uuid"
)

type SucursalService interface {
	Crear(ctx context.Context, req dto.CrearSucursalRequest) (*dto.SucursalResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSucursalRequest) (*dto.SucursalResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.SucursalResponse, error)
	Listar(ctx context.Context, incluirInactivas bool) ([]dto.SucursalResponse, error)
	ConfigurarTurno(ctx context.Context, sucursalID uuid.UUID, req dto.ConfigurarTurnoRequest) error
}

type sucursalService struct {
	repo repository.SucursalRepository
}

func NewSucursalService(repo repository.SucursalRepository) SucursalService {
	return &sucursalService{repo: repo}
}

func (s *sucursalService) Crear(ctx context.Context, req dto.CrearSucursalRequest) (*dto.SucursalResponse, error) {
	sucursal := &model.Sucursal{
		Nombre:    req.Nombre,
		Slug:      req.Slug,
		Direccion: req.Direccion,
		Activa:    true,
	}
	if err := s.repo.Create(ctx, sucursal); err != nil {
		return nil, err
	}
	return sucursalToResponse(sucursal), nil
}

func (s *sucursalService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSucursalRequest) (*dto.SucursalResponse, error) {
	sucursal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("sucursal no encontrada")
	}
	if req.Nombre != "" {
		sucursal.Nombre = req.Nombre
	}
	if req.Direccion != nil {
		sucursal.Direccion = req.Direccion
	}
	if req.Activa != nil {
		sucursal.Activa = *req.Activa
	}
	if err := s.repo.Update(ctx, sucursal); err != nil {
		return nil, err
	}
	return sucursalToResponse(sucursal), nil
}

func (s *sucursalService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.SucursalResponse, error) {
	sucursal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("sucursal no encontrada")
	}
	return sucursalToResponse(sucursal), nil
}

func (s *sucursalService) Listar(ctx context.Context, incluirInactivas bool) ([]dto.SucursalResponse, error) {
	sucursales, err := s.repo.List(ctx, incluirInactivas)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SucursalResponse, 0, len(sucursales))
	for i := range sucursales {
		resp = append(resp, *sucursalToResponse(&sucursales[i]))
	}
	return resp, nil
}

// ConfigurarTurno marks a shift active or inactive for a branch. The brand
// summary reads this set to decide which shifts count as expected coverage.
func (s *sucursalService) ConfigurarTurno(ctx context.Context, sucursalID uuid.UUID, req dto.ConfigurarTurnoRequest) error {
	if _, err := s.repo.FindByID(ctx, sucursalID); err != nil {
		return errors.New("sucursal no encontrada")
	}
	return s.repo.SetTurno(ctx, &model.TurnoSucursal{
		SucursalID: sucursalID,
		Nombre:     req.Turno,
		Activo:     req.Activo,
	})
}

func sucursalToResponse(s *model.Sucursal) *dto.SucursalResponse {
	turnos := make([]dto.TurnoSucursalResponse, 0, len(s.Turnos))
	for _, t := range s.Turnos {
		turnos = append(turnos, dto.TurnoSucursalResponse{Nombre: t.Nombre, Activo: t.Activo})
	}
	return &dto.SucursalResponse{
		ID:        s.ID.String(),
		Nombre:    s.Nombre,
		Slug:      s.Slug,
		Direccion: s.Direccion,
		Activa:    s.Activa,
		Turnos:    turnos,
	}
}
