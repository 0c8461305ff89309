package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/klasea/astillero-backend/internal/services"
)

type MaterialHandler struct {
	materialService services.MaterialService
	exportService   services.ExportService
}

func NewMaterialHandler(materialService services.MaterialService, exportService services.ExportService) *MaterialHandler {
	return &MaterialHandler{materialService: materialService, exportService: exportService}
}

func (mh *MaterialHandler) List(c *gin.Context) {
	soloActivos := c.Query("incluir_inactivos") != "true"
	materiales, err := mh.materialService.ListMateriales(c.Request.Context(), soloActivos)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_materiales_failed", err)
		return
	}
	RespondOK(c, gin.H{"materiales": materiales})
}

func (mh *MaterialHandler) Create(c *gin.Context) {
	var req services.CreateMaterialInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	material, err := mh.materialService.CreateMaterial(c.Request.Context(), req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_material_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"material": material})
}

func (mh *MaterialHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.UpdateMaterialInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	material, err := mh.materialService.UpdateMaterial(c.Request.Context(), id, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "update_material_failed", err)
		return
	}
	RespondOK(c, gin.H{"material": material})
}

func (mh *MaterialHandler) SetActivo(c *gin.Context) {
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
	if err := mh.materialService.SetActivo(c.Request.Context(), id, req.Activo); err != nil {
		RespondError(c, http.StatusBadRequest, "set_activo_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (mh *MaterialHandler) RegisterMovimiento(c *gin.Context) {
	var req services.RegisterMovimientoInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	movimiento, err := mh.materialService.RegisterMovimiento(c.Request.Context(), req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "register_movimiento_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"movimiento": movimiento})
}

func (mh *MaterialHandler) ListMovimientos(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if materialParam := c.Query("material_id"); materialParam != "" {
		materialID, err := uuid.Parse(materialParam)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_material_id", err)
			return
		}
		movimientos, err := mh.materialService.ListMovimientosByMaterial(c.Request.Context(), materialID, limit)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "list_movimientos_failed", err)
			return
		}
		RespondOK(c, gin.H{"movimientos": movimientos})
		return
	}
	movimientos, err := mh.materialService.ListMovimientos(c.Request.Context(), limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_movimientos_failed", err)
		return
	}
	RespondOK(c, gin.H{"movimientos": movimientos})
}

func (mh *MaterialHandler) BelowMinimo(c *gin.Context) {
	materiales, err := mh.materialService.ListBelowMinimo(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_below_minimo_failed", err)
		return
	}
	RespondOK(c, gin.H{"materiales": materiales})
}

func (mh *MaterialHandler) ExportMovimientos(c *gin.Context) {
	desde, err := parseDateParam(c.Query("desde"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_desde", err)
		return
	}
	hasta, err := parseDateParam(c.Query("hasta"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_hasta", err)
		return
	}
	desde, hasta = resolveExportRange(desde, hasta, time.Now())
	data, filename, err := mh.exportService.MovimientosCSV(c.Request.Context(), desde, hasta)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "export_failed", err)
		return
	}
	writeCSVAttachment(c, filename, data)
}

func (mh *MaterialHandler) ExportStock(c *gin.Context) {
	data, filename, err := mh.exportService.StockCSV(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "export_failed", err)
		return
	}
	writeCSVAttachment(c, filename, data)
}

func parseDateParam(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}

// resolveExportRange fills the defaults for an export window. The
// movimiento query treats hasta as an exclusive bound, so a date-only
// hasta is pushed to the following midnight to keep that whole day in
// the export. Missing hasta means now; missing desde means one month
// before hasta.
func resolveExportRange(desde, hasta, now time.Time) (time.Time, time.Time) {
	if hasta.IsZero() {
		hasta = now
	} else {
		hasta = hasta.AddDate(0, 0, 1)
	}
	if desde.IsZero() {
		desde = hasta.AddDate(0, -1, 0)
	}
	return desde, hasta
}

func writeCSVAttachment(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
