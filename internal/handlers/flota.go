package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/klasea/astillero-backend/internal/services"
)

type FlotaHandler struct {
	flotaService services.FlotaService
}

func NewFlotaHandler(flotaService services.FlotaService) *FlotaHandler {
	return &FlotaHandler{flotaService: flotaService}
}

func (fh *FlotaHandler) List(c *gin.Context) {
	embarcaciones, err := fh.flotaService.List(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_flota_failed", err)
		return
	}
	RespondOK(c, gin.H{"embarcaciones": embarcaciones})
}

func (fh *FlotaHandler) Create(c *gin.Context) {
	var req services.FlotaInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	embarcacion, err := fh.flotaService.Create(c.Request.Context(), req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_embarcacion_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"embarcacion": embarcacion})
}

func (fh *FlotaHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.FlotaInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	embarcacion, err := fh.flotaService.Update(c.Request.Context(), id, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "update_embarcacion_failed", err)
		return
	}
	RespondOK(c, gin.H{"embarcacion": embarcacion})
}

func (fh *FlotaHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := fh.flotaService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusBadRequest, "delete_embarcacion_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
