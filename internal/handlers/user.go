package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/klasea/astillero-backend/internal/requestdata"
	"github.com/klasea/astillero-backend/internal/services"
	"github.com/klasea/astillero-backend/internal/types"
)

const maxAvatarUploadBytes = 5 << 20

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) Me(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "no_session", nil)
		return
	}
	user, err := uh.userService.GetByID(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "user_not_found", err)
		return
	}
	RespondOK(c, gin.H{"user": user, "landing": user.Role.LandingRoute()})
}

func (uh *UserHandler) List(c *gin.Context) {
	users, err := uh.userService.ListUsers(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_users_failed", err)
		return
	}
	RespondOK(c, gin.H{"users": users})
}

func (uh *UserHandler) Create(c *gin.Context) {
	var req services.CreateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	user, err := uh.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_user_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (uh *UserHandler) UpdateRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Role    types.Role `json:"role"`
		IsAdmin bool       `json:"is_admin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := uh.userService.UpdateRole(c.Request.Context(), userID, req.Role, req.IsAdmin); err != nil {
		RespondError(c, http.StatusBadRequest, "update_role_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (uh *UserHandler) SetActivo(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
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
	if err := uh.userService.SetActivo(c.Request.Context(), userID, req.Activo); err != nil {
		RespondError(c, http.StatusBadRequest, "set_activo_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (uh *UserHandler) UploadAvatar(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "no_session", nil)
		return
	}
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	defer file.Close()
	raw, err := io.ReadAll(io.LimitReader(file, maxAvatarUploadBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "read_file_failed", err)
		return
	}
	if len(raw) > maxAvatarUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large", nil)
		return
	}
	user, err := uh.userService.UploadAvatar(c.Request.Context(), rd.UserID, raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "upload_avatar_failed", err)
		return
	}
	RespondOK(c, gin.H{"user": user})
}
