package handler

import (
	"net/http"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/apierror"
	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/service"

	"github.com/gin-gonic/gin"
)

type ResumenHandler struct{ svc service.ResumenService }

func NewResumenHandler(svc service.ResumenService) *ResumenHandler {
	return &ResumenHandler{svc: svc}
}

// Marca godoc
// @Summary Resumen de facturación de toda la marca por rango de fechas
// @Description Agrega cierres por sucursal con desglose por turno y cobertura de turnos activos.
// @Tags resumen
// @Produce json
// @Security BearerAuth
// @Param desde query string true "Fecha inicio YYYY-MM-DD"
// @Param hasta query string true "Fecha fin YYYY-MM-DD"
// @Success 200 {object} dto.ResumenMarcaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/resumen/marca [get]
func (h *ResumenHandler) Marca(c *gin.Context) {
	desde := c.Query("desde")
	hasta := c.Query("hasta")
	if desde == "" || hasta == "" {
		c.JSON(http.StatusBadRequest, apierror.New("desde y hasta son requeridos (YYYY-MM-DD)"))
		return
	}

	resp, err := h.svc.ResumenMarca(c.Request.Context(), desde, hasta)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
