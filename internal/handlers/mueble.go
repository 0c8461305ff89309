package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/klasea/astillero-backend/internal/services"
	"github.com/klasea/astillero-backend/internal/types"
)

type MuebleHandler struct {
	muebleService services.MuebleService
}

func NewMuebleHandler(muebleService services.MuebleService) *MuebleHandler {
	return &MuebleHandler{muebleService: muebleService}
}

func (mh *MuebleHandler) ListLineas(c *gin.Context) {
	lineas, err := mh.muebleService.ListLineas(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_lineas_failed", err)
		return
	}
	RespondOK(c, gin.H{"lineas": lineas})
}

func (mh *MuebleHandler) CreateLinea(c *gin.Context) {
	var req struct {
		Nombre string                     `json:"nombre"`
		Items  []services.MuebleItemInput `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	linea, err := mh.muebleService.CreateLinea(c.Request.Context(), req.Nombre, req.Items)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_linea_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"linea": linea})
}

func (mh *MuebleHandler) DeleteLinea(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := mh.muebleService.DeleteLinea(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusBadRequest, "delete_linea_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (mh *MuebleHandler) AddItem(c *gin.Context) {
	lineaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.MuebleItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	item, err := mh.muebleService.AddItem(c.Request.Context(), lineaID, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "add_item_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (mh *MuebleHandler) UpdateItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.MuebleItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	item, err := mh.muebleService.UpdateItem(c.Request.Context(), itemID, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "update_item_failed", err)
		return
	}
	RespondOK(c, gin.H{"item": item})
}

func (mh *MuebleHandler) DeleteItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := mh.muebleService.DeleteItem(c.Request.Context(), itemID); err != nil {
		RespondError(c, http.StatusBadRequest, "delete_item_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (mh *MuebleHandler) UploadImagen(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
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
	imagen, err := mh.muebleService.UploadImagen(c.Request.Context(), itemID, header.Filename, header.Header.Get("Content-Type"), raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "upload_imagen_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"imagen": imagen})
}

func (mh *MuebleHandler) DeleteImagen(c *gin.Context) {
	imagenID, err := uuid.Parse(c.Param("imagenId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := mh.muebleService.DeleteImagen(c.Request.Context(), imagenID); err != nil {
		RespondError(c, http.StatusBadRequest, "delete_imagen_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (mh *MuebleHandler) ListUnidades(c *gin.Context) {
	var lineaID *uuid.UUID
	if raw := c.Query("linea_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_linea_id", err)
			return
		}
		lineaID = &parsed
	}
	unidades, err := mh.muebleService.ListUnidades(c.Request.Context(), lineaID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_unidades_failed", err)
		return
	}
	RespondOK(c, gin.H{"unidades": unidades})
}

func (mh *MuebleHandler) GetUnidad(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	unidad, err := mh.muebleService.GetUnidad(c.Request.Context(), id)
	if err != nil {
		RespondError(c, http.StatusNotFound, "unidad_not_found", err)
		return
	}
	RespondOK(c, gin.H{"unidad": unidad})
}

func (mh *MuebleHandler) CreateUnidad(c *gin.Context) {
	var req struct {
		LineaID uuid.UUID  `json:"linea_id"`
		Nombre  string     `json:"nombre"`
		ObraID  *uuid.UUID `json:"obra_id,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	unidad, err := mh.muebleService.CreateUnidad(c.Request.Context(), req.LineaID, req.Nombre, req.ObraID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_unidad_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"unidad": unidad})
}

func (mh *MuebleHandler) DeleteUnidad(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := mh.muebleService.DeleteUnidad(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusBadRequest, "delete_unidad_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (mh *MuebleHandler) UpdateUnidadItem(c *gin.Context) {
	unidadItemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Estado types.MuebleEstado `json:"estado"`
		Notas  string             `json:"notas"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	item, err := mh.muebleService.UpdateUnidadItem(c.Request.Context(), unidadItemID, req.Estado, req.Notas)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "update_item_failed", err)
		return
	}
	RespondOK(c, gin.H{"item": item})
}
