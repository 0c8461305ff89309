package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/klasea/astillero-backend/internal/services"
)

const maxPDFUploadBytes = 20 << 20

type ProcedimientoHandler struct {
	procedimientoService services.ProcedimientoService
}

func NewProcedimientoHandler(procedimientoService services.ProcedimientoService) *ProcedimientoHandler {
	return &ProcedimientoHandler{procedimientoService: procedimientoService}
}

// List returns only the procedures the caller's role may see. ListAll is
// reserved for oficina and admin routes.
func (ph *ProcedimientoHandler) List(c *gin.Context) {
	procedimientos, err := ph.procedimientoService.ListVisible(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_procedimientos_failed", err)
		return
	}
	RespondOK(c, gin.H{"procedimientos": procedimientos})
}

func (ph *ProcedimientoHandler) ListAll(c *gin.Context) {
	soloActivos := c.Query("incluir_archivados") != "true"
	procedimientos, err := ph.procedimientoService.ListAll(c.Request.Context(), soloActivos)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_procedimientos_failed", err)
		return
	}
	RespondOK(c, gin.H{"procedimientos": procedimientos})
}

func (ph *ProcedimientoHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	procedimiento, err := ph.procedimientoService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondError(c, http.StatusNotFound, "procedimiento_not_found", err)
		return
	}
	RespondOK(c, gin.H{"procedimiento": procedimiento})
}

func (ph *ProcedimientoHandler) Create(c *gin.Context) {
	var req services.ProcedimientoInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	procedimiento, err := ph.procedimientoService.Create(c.Request.Context(), req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_procedimiento_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"procedimiento": procedimiento})
}

func (ph *ProcedimientoHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.ProcedimientoInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	procedimiento, err := ph.procedimientoService.Update(c.Request.Context(), id, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "update_procedimiento_failed", err)
		return
	}
	RespondOK(c, gin.H{"procedimiento": procedimiento})
}

func (ph *ProcedimientoHandler) Archive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ph.procedimientoService.Archive(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusBadRequest, "archive_procedimiento_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (ph *ProcedimientoHandler) AttachPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	defer file.Close()
	raw, err := io.ReadAll(io.LimitReader(file, maxPDFUploadBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "read_file_failed", err)
		return
	}
	if len(raw) > maxPDFUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large", nil)
		return
	}
	procedimiento, err := ph.procedimientoService.AttachPDF(c.Request.Context(), id, raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "attach_pdf_failed", err)
		return
	}
	RespondOK(c, gin.H{"procedimiento": procedimiento})
}
