package handler

import (
	"net/http"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/apierror"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/dto"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SucursalesHandler struct{ svc service.SucursalService }

func NewSucursalesHandler(svc service.SucursalService) *SucursalesHandler {
	return &SucursalesHandler{svc: svc}
}

// Crear godoc
// @Summary Alta de sucursal (solo administrador)
// @Tags sucursales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearSucursalRequest true "Datos de la sucursal"
// @Success 201 {object} dto.SucursalResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/sucursales [post]
func (h *SucursalesHandler) Crear(c *gin.Context) {
	var req dto.CrearSucursalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SucursalesHandler) Listar(c *gin.Context) {
	incluirInactivas := c.Query("incluir_inactivas") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), incluirInactivas)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar sucursales"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SucursalesHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Sucursal no encontrada"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SucursalesHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarSucursalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfigurarTurno godoc
// @Summary Habilita o deshabilita un turno para la sucursal
// @Description La cobertura de turnos activos alimenta el resumen de marca.
// @Tags sucursales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de sucursal"
// @Param body body dto.ConfigurarTurnoRequest true "Turno y estado"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/sucursales/{id}/turnos [put]
func (h *SucursalesHandler) ConfigurarTurno(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ConfigurarTurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ConfigurarTurno(c.Request.Context(), id, req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
