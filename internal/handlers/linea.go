package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/klasea/astillero-backend/internal/services"
)

type LineaHandler struct {
	lineaService services.LineaService
}

func NewLineaHandler(lineaService services.LineaService) *LineaHandler {
	return &LineaHandler{lineaService: lineaService}
}

func (lh *LineaHandler) List(c *gin.Context) {
	soloActivas := c.Query("incluir_inactivas") != "true"
	lineas, err := lh.lineaService.ListLineas(c.Request.Context(), soloActivas)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_lineas_failed", err)
		return
	}
	RespondOK(c, gin.H{"lineas": lineas})
}

func (lh *LineaHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	linea, err := lh.lineaService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondError(c, http.StatusNotFound, "linea_not_found", err)
		return
	}
	RespondOK(c, gin.H{"linea": linea})
}

func (lh *LineaHandler) Create(c *gin.Context) {
	var req services.CreateLineaInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	linea, err := lh.lineaService.CreateLinea(c.Request.Context(), req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_linea_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"linea": linea})
}

func (lh *LineaHandler) Rename(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Nombre string `json:"nombre"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := lh.lineaService.RenameLinea(c.Request.Context(), id, req.Nombre); err != nil {
		RespondError(c, http.StatusBadRequest, "rename_linea_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (lh *LineaHandler) SetActivo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Activo bool `json:"activo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := lh.lineaService.SetLineaActivo(c.Request.Context(), id, req.Activo); err != nil {
		RespondError(c, http.StatusBadRequest, "set_activo_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (lh *LineaHandler) AddProceso(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.ProcesoInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	proceso, err := lh.lineaService.AddProceso(c.Request.Context(), id, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "add_proceso_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"proceso": proceso})
}

func (lh *LineaHandler) UpdateProceso(c *gin.Context) {
	procesoID, err := uuid.Parse(c.Param("procesoId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.ProcesoInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	proceso, err := lh.lineaService.UpdateProceso(c.Request.Context(), procesoID, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "update_proceso_failed", err)
		return
	}
	RespondOK(c, gin.H{"proceso": proceso})
}

func (lh *LineaHandler) SetProcesoActivo(c *gin.Context) {
	procesoID, err := uuid.Parse(c.Param("procesoId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Activo bool `json:"activo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := lh.lineaService.SetProcesoActivo(c.Request.Context(), procesoID, req.Activo); err != nil {
		RespondError(c, http.StatusBadRequest, "set_activo_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
