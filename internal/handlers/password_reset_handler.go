package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resetd/internal/models"
	"resetd/internal/services"
)

type PasswordResetHandler struct {
	service  services.PasswordResetService
	frontend *FrontendHandler
}

func NewPasswordResetHandler(service services.PasswordResetService, frontend *FrontendHandler) *PasswordResetHandler {
	return &PasswordResetHandler{service: service, frontend: frontend}
}

// @Summary      Request a password reset link
// @Tags         Password reset
// @Accept       json
// @Produce      json
// @Param        body  body      models.RequestResetRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/request-reset [post]
func (h *PasswordResetHandler) RequestReset(c *gin.Context) {
	var req models.RequestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Email is required")
		return
	}

	err := h.service.RequestReset(c.Request.Context(), req.Email)
	switch {
	case errors.Is(err, services.ErrEmailRequired):
		respondMessage(c, http.StatusBadRequest, "Email is required")
		return
	case errors.Is(err, services.ErrUserNotFound):
		respondMessage(c, http.StatusNotFound, "User not found")
		return
	case err != nil:
		serverError(c, "request reset", err)
		return
	}
	respondMessage(c, http.StatusOK, "Reset link sent")
}

// @Summary      Set a new password with a reset token
// @Tags         Password reset
// @Accept       json
// @Produce      json
// @Param        token  path      string                        true  "Reset token"
// @Param        body   body      models.UpdatePasswordRequest  true  "New password"
// @Success      200    {object}  messageResponse
// @Failure      400    {object}  messageResponse
// @Failure      500    {object}  errorResponse
// @Router       /api/update-password/{token} [put]
func (h *PasswordResetHandler) UpdatePassword(c *gin.Context) {
	var req models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), req.NewPassword)
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		respondMessage(c, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	case errors.Is(err, services.ErrInvalidToken):
		respondMessage(c, http.StatusBadRequest, "Invalid or expired token")
		return
	case err != nil:
		serverError(c, "update password", err)
		return
	}
	respondMessage(c, http.StatusOK, "Password successfully updated")
}

// ResetPage serves the frontend only while the token is active.
func (h *PasswordResetHandler) ResetPage(c *gin.Context) {
	err := h.service.ValidateToken(c.Request.Context(), c.Param("token"))
	switch {
	case errors.Is(err, services.ErrInvalidToken):
		respondMessage(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	case err != nil:
		serverError(c, "reset page", err)
		return
	}
	h.frontend.Index(c)
}
