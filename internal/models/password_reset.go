package models

type RequestResetRequest struct {
	Email string `json:"email" binding:"required"`
}

// UpdatePasswordRequest carries the new secret; length is checked by the reset service.
type UpdatePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}
