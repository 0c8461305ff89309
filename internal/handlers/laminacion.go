package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/klasea/astillero-backend/internal/services"
)

type LaminacionHandler struct {
	laminacionService services.LaminacionService
}

func NewLaminacionHandler(laminacionService services.LaminacionService) *LaminacionHandler {
	return &LaminacionHandler{laminacionService: laminacionService}
}

func (lh *LaminacionHandler) ListStock(c *gin.Context) {
	soloActivos := c.Query("incluir_inactivos") != "true"
	stock, err := lh.laminacionService.ListStock(c.Request.Context(), soloActivos)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_stock_failed", err)
		return
	}
	RespondOK(c, gin.H{"stock": stock})
}

func (lh *LaminacionHandler) CreateMaterial(c *gin.Context) {
	var req services.CreateLaminacionMaterialInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	material, err := lh.laminacionService.CreateMaterial(c.Request.Context(), req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_material_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"material": material})
}

func (lh *LaminacionHandler) UpdateMaterial(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.CreateLaminacionMaterialInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	material, err := lh.laminacionService.UpdateMaterial(c.Request.Context(), id, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "update_material_failed", err)
		return
	}
	RespondOK(c, gin.H{"material": material})
}

func (lh *LaminacionHandler) SetMaterialActivo(c *gin.Context) {
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
	if err := lh.laminacionService.SetMaterialActivo(c.Request.Context(), id, req.Activo); err != nil {
		RespondError(c, http.StatusBadRequest, "set_activo_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (lh *LaminacionHandler) RegisterMovimiento(c *gin.Context) {
	var req services.RegisterLaminacionMovimientoInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	movimiento, err := lh.laminacionService.RegisterMovimiento(c.Request.Context(), req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "register_movimiento_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"movimiento": movimiento})
}

func (lh *LaminacionHandler) ListMovimientos(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	movimientos, err := lh.laminacionService.ListMovimientos(c.Request.Context(), limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_movimientos_failed", err)
		return
	}
	RespondOK(c, gin.H{"movimientos": movimientos})
}
