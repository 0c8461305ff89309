package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/klasea/astillero-backend/internal/services"
)

type ConfigHandler struct {
	configService services.ConfigService
}

func NewConfigHandler(configService services.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

func (ch *ConfigHandler) List(c *gin.Context) {
	config, err := ch.configService.List(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_config_failed", err)
		return
	}
	RespondOK(c, gin.H{"config": config})
}

func (ch *ConfigHandler) Set(c *gin.Context) {
	var req struct {
		Clave       string `json:"clave"`
		Valor       string `json:"valor"`
		Tipo        string `json:"tipo"`
		Descripcion string `json:"descripcion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := ch.configService.Set(c.Request.Context(), req.Clave, req.Valor, req.Tipo, req.Descripcion); err != nil {
		RespondError(c, http.StatusBadRequest, "set_config_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
