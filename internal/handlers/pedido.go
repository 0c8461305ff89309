package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/klasea/astillero-backend/internal/services"
	"github.com/klasea/astillero-backend/internal/types"
)

type PedidoHandler struct {
	pedidoService services.PedidoService
}

func NewPedidoHandler(pedidoService services.PedidoService) *PedidoHandler {
	return &PedidoHandler{pedidoService: pedidoService}
}

func (ph *PedidoHandler) List(c *gin.Context) {
	var estado *types.PedidoEstado
	if raw := c.Query("estado"); raw != "" {
		parsed := types.PedidoEstado(raw)
		if !parsed.Valid() {
			RespondError(c, http.StatusBadRequest, "invalid_estado", nil)
			return
		}
		estado = &parsed
	}
	pedidos, err := ph.pedidoService.ListPedidos(c.Request.Context(), estado)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_pedidos_failed", err)
		return
	}
	RespondOK(c, gin.H{"pedidos": pedidos})
}

func (ph *PedidoHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	pedido, err := ph.pedidoService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondError(c, http.StatusNotFound, "pedido_not_found", err)
		return
	}
	RespondOK(c, gin.H{"pedido": pedido})
}

func (ph *PedidoHandler) Create(c *gin.Context) {
	var req services.CreatePedidoInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	pedido, err := ph.pedidoService.CreatePedido(c.Request.Context(), req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_pedido_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pedido": pedido})
}

func (ph *PedidoHandler) AdvanceEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Estado types.PedidoEstado `json:"estado"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	pedido, err := ph.pedidoService.AdvanceEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "advance_estado_failed", err)
		return
	}
	RespondOK(c, gin.H{"pedido": pedido})
}

func (ph *PedidoHandler) UpdateHeader(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Numero    string `json:"numero"`
		Proveedor string `json:"proveedor"`
		Nota      string `json:"nota"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	pedido, err := ph.pedidoService.UpdateHeader(c.Request.Context(), id, req.Numero, req.Proveedor, req.Nota)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "update_pedido_failed", err)
		return
	}
	RespondOK(c, gin.H{"pedido": pedido})
}

func (ph *PedidoHandler) AddItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.PedidoItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	item, err := ph.pedidoService.AddItem(c.Request.Context(), id, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "add_item_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (ph *PedidoHandler) DeleteItem(c *gin.Context) {
	pedidoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}
	if err := ph.pedidoService.DeleteItem(c.Request.Context(), pedidoID, itemID); err != nil {
		RespondError(c, http.StatusBadRequest, "delete_item_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (ph *PedidoHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ph.pedidoService.DeletePedido(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusBadRequest, "delete_pedido_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
