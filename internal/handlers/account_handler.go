package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/httpresp"
	"github.com/RelojeriaCentral/taller-api/internal/middleware"
	"github.com/RelojeriaCentral/taller-api/internal/usecase/account"
)

// ======================================================
// HANDLER — password change / reset
// ======================================================

type AccountHandler struct {
	changeUC *account.ChangePassword
	resetUC  *account.PasswordReset
}

func NewAccountHandler(
	changeUC *account.ChangePassword,
	resetUC *account.PasswordReset,
) *AccountHandler {
	return &AccountHandler{
		changeUC: changeUC,
		resetUC:  resetUC,
	}
}

// --------- Requests ---------

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type ResetRequestRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type ResetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// --------- Handlers ---------

func (h *AccountHandler) ChangePassword(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.changeUC.Execute(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Contraseña actualizada."})
}

// RequestReset always answers 200 for existing and unknown accounts alike.
func (h *AccountHandler) RequestReset(c *gin.Context) {
	var req ResetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.resetUC.Request(c.Request.Context(), req.Username, req.Email); err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Si la cuenta existe, se envió un correo de recuperación."})
}

func (h *AccountHandler) ConfirmReset(c *gin.Context) {
	var req ResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.resetUC.Consume(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Contraseña restablecida."})
}
