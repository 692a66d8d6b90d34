package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/config"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/infra"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/repository"

	"github.com/google/uuid"
)

// ReporteService produces the printable end-of-shift PDF. Files are rendered
// on demand and cached on disk under PDF_STORAGE_PATH.
type ReporteService interface {
	ObtenerPDFPath(ctx context.Context, sucursalID uuid.UUID, fecha, turno string) (string, error)
}

type reporteService struct {
	cierres     repository.CierreRepository
	sucursales  repository.SucursalRepository
	storagePath string
}

func NewReporteService(cierres repository.CierreRepository, sucursales repository.SucursalRepository, cfg *config.Config) ReporteService {
	return &reporteService{
		cierres:     cierres,
		sucursales:  sucursales,
		storagePath: cfg.PDFStoragePath,
	}
}

func (s *reporteService) ObtenerPDFPath(ctx context.Context, sucursalID uuid.UUID, fecha, turno string) (string, error) {
	dia, err := time.Parse(fechaLayout, fecha)
	if err != nil {
		return "", fmt.Errorf("fecha inválida: %s", fecha)
	}

	cierre, err := s.cierres.FindByIdentidad(ctx, sucursalID, dia, turno)
	if err != nil {
		return "", fmt.Errorf("cierre no encontrado")
	}

	nombre := sucursalID.String()
	if suc, err := s.sucursales.FindByID(ctx, sucursalID); err == nil {
		nombre = suc.Nombre
	}

	path, err := infra.GenerateCierrePDF(cierre, nombre, s.storagePath)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("PDF no disponible")
	}
	return path, nil
}
