package handler

import (
	"errors"
	"net/http"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/apierror"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/dto"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/middleware"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CierresHandler struct {
	svc      service.CierreService
	reportes service.ReporteService
}

func NewCierresHandler(svc service.CierreService, reportes service.ReporteService) *CierresHandler {
	return &CierresHandler{svc: svc, reportes: reportes}
}

// sucursalPermitida rejects encargados operating on a branch other than their
// own. Supervisores and administradores carry no sucursal claim and see all.
func sucursalPermitida(c *gin.Context, sucursalID string) bool {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.SucursalID == nil {
		return true
	}
	if *claims.SucursalID != sucursalID {
		c.JSON(http.StatusForbidden, apierror.New("No puede operar sobre otra sucursal"))
		return false
	}
	return true
}

// Guardar godoc
// @Summary Guarda (o reemplaza) el cierre de un turno
// @Description Idempotente por (sucursal, fecha, turno): un segundo envío pisa el anterior.
// @Tags cierres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.GuardarCierreRequest true "Planilla del cierre"
// @Success 200 {object} dto.CierreResponse
// @Failure 400 {object} apierror.APIError
// @Failure 403 {object} apierror.APIError
// @Router /v1/cierres [post]
func (h *CierresHandler) Guardar(c *gin.Context) {
	var req dto.GuardarCierreRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if !sucursalPermitida(c, req.SucursalID) {
		return
	}

	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Guardar(c.Request.Context(), usuarioID, req)
	if err != nil {
		status := http.StatusBadRequest
		if err == service.ErrNoAutenticado {
			status = http.StatusUnauthorized
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PorDia godoc
// @Summary Lista los cierres de una sucursal para un día
// @Tags cierres
// @Produce json
// @Security BearerAuth
// @Param sucursal_id query string true "ID de sucursal"
// @Param fecha query string true "Fecha YYYY-MM-DD"
// @Param turno query string false "Filtra un turno puntual"
// @Success 200 {array} dto.CierreResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cierres [get]
func (h *CierresHandler) PorDia(c *gin.Context) {
	rawSucursal := c.Query("sucursal_id")
	sucursalID, err := uuid.Parse(rawSucursal)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("sucursal_id inválido"))
		return
	}
	fecha := c.Query("fecha")
	if fecha == "" {
		c.JSON(http.StatusBadRequest, apierror.New("fecha requerida (YYYY-MM-DD)"))
		return
	}
	if !sucursalPermitida(c, rawSucursal) {
		return
	}

	var turno *string
	if t := c.Query("turno"); t != "" {
		turno = &t
	}

	resp, err := h.svc.ObtenerPorDia(c.Request.Context(), sucursalID, fecha, turno)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Uno godoc
// @Summary Obtiene el cierre de un turno puntual
// @Tags cierres
// @Produce json
// @Security BearerAuth
// @Param sucursal_id path string true "ID de sucursal"
// @Param fecha path string true "Fecha YYYY-MM-DD"
// @Param turno path string true "manana|mediodia|noche|trasnoche"
// @Success 200 {object} dto.CierreResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/cierres/{sucursal_id}/{fecha}/{turno} [get]
func (h *CierresHandler) Uno(c *gin.Context) {
	rawSucursal := c.Param("sucursal_id")
	sucursalID, err := uuid.Parse(rawSucursal)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("sucursal_id inválido"))
		return
	}
	if !sucursalPermitida(c, rawSucursal) {
		return
	}

	resp, err := h.svc.ObtenerUno(c.Request.Context(), sucursalID, c.Param("fecha"), c.Param("turno"))
	if err != nil {
		if errors.Is(err, service.ErrCierreNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Cierre no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo obtener el cierre"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PDF godoc
// @Summary Descarga el reporte PDF de un cierre
// @Tags cierres
// @Produce application/pdf
// @Security BearerAuth
// @Param sucursal_id path string true "ID de sucursal"
// @Param fecha path string true "Fecha YYYY-MM-DD"
// @Param turno path string true "manana|mediodia|noche|trasnoche"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/cierres/{sucursal_id}/{fecha}/{turno}/pdf [get]
func (h *CierresHandler) PDF(c *gin.Context) {
	rawSucursal := c.Param("sucursal_id")
	sucursalID, err := uuid.Parse(rawSucursal)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("sucursal_id inválido"))
		return
	}
	if !sucursalPermitida(c, rawSucursal) {
		return
	}

	path, err := h.reportes.ObtenerPDFPath(c.Request.Context(), sucursalID, c.Param("fecha"), c.Param("turno"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.FileAttachment(path, "cierre.pdf")
}
