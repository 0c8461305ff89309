package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/klasea/astillero-backend/internal/services"
)

type AlertaHandler struct {
	alertaService services.AlertaService
}

func NewAlertaHandler(alertaService services.AlertaService) *AlertaHandler {
	return &AlertaHandler{alertaService: alertaService}
}

func (ah *AlertaHandler) List(c *gin.Context) {
	var resuelta *bool
	if raw := c.Query("resuelta"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_resuelta", err)
			return
		}
		resuelta = &parsed
	}
	alertas, err := ah.alertaService.List(c.Request.Context(), resuelta)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_alertas_failed", err)
		return
	}
	RespondOK(c, gin.H{"alertas": alertas})
}

func (ah *AlertaHandler) Resolve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ah.alertaService.Resolve(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusBadRequest, "resolve_alerta_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (ah *AlertaHandler) CountOpen(c *gin.Context) {
	count, err := ah.alertaService.CountOpen(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "count_alertas_failed", err)
		return
	}
	RespondOK(c, gin.H{"count": count})
}
