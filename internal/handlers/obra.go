package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/klasea/astillero-backend/internal/services"
	"github.com/klasea/astillero-backend/internal/types"
)

type ObraHandler struct {
	obraService services.ObraService
}

func NewObraHandler(obraService services.ObraService) *ObraHandler {
	return &ObraHandler{obraService: obraService}
}

func (oh *ObraHandler) List(c *gin.Context) {
	var estado *types.ObraEstado
	if raw := c.Query("estado"); raw != "" {
		parsed := types.ObraEstado(raw)
		if !parsed.Valid() {
			RespondError(c, http.StatusBadRequest, "invalid_estado", nil)
			return
		}
		estado = &parsed
	}
	obras, err := oh.obraService.ListObras(c.Request.Context(), estado)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_obras_failed", err)
		return
	}
	RespondOK(c, gin.H{"obras": obras})
}

func (oh *ObraHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	obra, err := oh.obraService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondError(c, http.StatusNotFound, "obra_not_found", err)
		return
	}
	RespondOK(c, gin.H{"obra": obra})
}

func (oh *ObraHandler) Create(c *gin.Context) {
	var req services.CreateObraInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	obra, err := oh.obraService.CreateObra(c.Request.Context(), req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_obra_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"obra": obra})
}

func (oh *ObraHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.CreateObraInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	obra, err := oh.obraService.UpdateObra(c.Request.Context(), id, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "update_obra_failed", err)
		return
	}
	RespondOK(c, gin.H{"obra": obra})
}

func (oh *ObraHandler) SetEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Estado types.ObraEstado `json:"estado"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := oh.obraService.SetEstado(c.Request.Context(), id, req.Estado); err != nil {
		RespondError(c, http.StatusBadRequest, "set_estado_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (oh *ObraHandler) AssignLinea(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		LineaID uuid.UUID `json:"linea_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := oh.obraService.AssignLinea(c.Request.Context(), id, req.LineaID); err != nil {
		RespondError(c, http.StatusBadRequest, "assign_linea_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (oh *ObraHandler) AdvanceStage(c *gin.Context) {
	timelineID, err := uuid.Parse(c.Param("timelineId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Estado types.TimelineEstado `json:"estado"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	entry, err := oh.obraService.AdvanceStage(c.Request.Context(), timelineID, req.Estado)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "advance_stage_failed", err)
		return
	}
	RespondOK(c, gin.H{"entry": entry})
}

func (oh *ObraHandler) Gantt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	gantt, err := oh.obraService.GetGantt(c.Request.Context(), id)
	if err != nil {
		RespondError(c, http.StatusNotFound, "gantt_failed", err)
		return
	}
	RespondOK(c, gin.H{"gantt": gantt})
}

func (oh *ObraHandler) ListGantt(c *gin.Context) {
	gantts, err := oh.obraService.ListGantt(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_gantt_failed", err)
		return
	}
	RespondOK(c, gin.H{"gantts": gantts})
}
