package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/klasea/astillero-backend/internal/services"
)

const maxFotoUploadBytes = 10 << 20

type MarmoleriaHandler struct {
	marmoleriaService services.MarmoleriaService
}

func NewMarmoleriaHandler(marmoleriaService services.MarmoleriaService) *MarmoleriaHandler {
	return &MarmoleriaHandler{marmoleriaService: marmoleriaService}
}

func (mh *MarmoleriaHandler) ListLineas(c *gin.Context) {
	lineas, err := mh.marmoleriaService.ListLineas(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_lineas_failed", err)
		return
	}
	RespondOK(c, gin.H{"lineas": lineas})
}

func (mh *MarmoleriaHandler) CreateLinea(c *gin.Context) {
	var req struct {
		Nombre string   `json:"nombre"`
		Piezas []string `json:"piezas"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	linea, err := mh.marmoleriaService.CreateLinea(c.Request.Context(), req.Nombre, req.Piezas)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_linea_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"linea": linea})
}

func (mh *MarmoleriaHandler) DeleteLinea(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := mh.marmoleriaService.DeleteLinea(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusBadRequest, "delete_linea_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (mh *MarmoleriaHandler) AddPieza(c *gin.Context) {
	lineaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Nombre string `json:"nombre"`
		Orden  int    `json:"orden"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	pieza, err := mh.marmoleriaService.AddPieza(c.Request.Context(), lineaID, req.Nombre, req.Orden)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "add_pieza_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pieza": pieza})
}

func (mh *MarmoleriaHandler) DeletePieza(c *gin.Context) {
	id, err := uuid.Parse(c.Param("piezaId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := mh.marmoleriaService.DeletePieza(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusBadRequest, "delete_pieza_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (mh *MarmoleriaHandler) ListUnidades(c *gin.Context) {
	var lineaID *uuid.UUID
	if raw := c.Query("linea_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_linea_id", err)
			return
		}
		lineaID = &parsed
	}
	unidades, err := mh.marmoleriaService.ListUnidades(c.Request.Context(), lineaID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_unidades_failed", err)
		return
	}
	RespondOK(c, gin.H{"unidades": unidades})
}

func (mh *MarmoleriaHandler) GetUnidad(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	unidad, err := mh.marmoleriaService.GetUnidad(c.Request.Context(), id)
	if err != nil {
		RespondError(c, http.StatusNotFound, "unidad_not_found", err)
		return
	}
	RespondOK(c, gin.H{"unidad": unidad})
}

func (mh *MarmoleriaHandler) CreateUnidad(c *gin.Context) {
	var req struct {
		LineaID uuid.UUID  `json:"linea_id"`
		Nombre  string     `json:"nombre"`
		ObraID  *uuid.UUID `json:"obra_id,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	unidad, err := mh.marmoleriaService.CreateUnidad(c.Request.Context(), req.LineaID, req.Nombre, req.ObraID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_unidad_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"unidad": unidad})
}

func (mh *MarmoleriaHandler) DeleteUnidad(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := mh.marmoleriaService.DeleteUnidad(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusBadRequest, "delete_unidad_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (mh *MarmoleriaHandler) UpdateUnidadPieza(c *gin.Context) {
	piezaID, err := uuid.Parse(c.Param("piezaId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.UpdateUnidadPiezaInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	pieza, err := mh.marmoleriaService.UpdateUnidadPieza(c.Request.Context(), piezaID, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "update_pieza_failed", err)
		return
	}
	RespondOK(c, gin.H{"pieza": pieza})
}

func (mh *MarmoleriaHandler) AttachFoto(c *gin.Context) {
	piezaID, err := uuid.Parse(c.Param("piezaId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	defer file.Close()
	raw, err := io.ReadAll(io.LimitReader(file, maxFotoUploadBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "read_file_failed", err)
		return
	}
	if len(raw) > maxFotoUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large", nil)
		return
	}
	pieza, err := mh.marmoleriaService.AttachFoto(c.Request.Context(), piezaID, raw, header.Header.Get("Content-Type"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "attach_foto_failed", err)
		return
	}
	RespondOK(c, gin.H{"pieza": pieza})
}

func (mh *MarmoleriaHandler) StatusReport(c *gin.Context) {
	data, filename, err := mh.marmoleriaService.StatusReportPDF(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "report_failed", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
