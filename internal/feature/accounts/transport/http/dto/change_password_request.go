package dto

// ChangePasswordReq represents the request body for the /change-password endpoint.
// Length and confirmation checks live in the usecase; binding only enforces presence.
type ChangePasswordReq struct {
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}
