package dto

import "github.com/marolinik/arteon-ledger/internal/feature/accounts/domain/entity"

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the standard success payload for operations
// without a richer result.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse represents a user in API responses. The password hash
// never leaves the server.
type UserResponse struct {
	ID                  uint   `json:"id"`
	Email               string `json:"email"`
	FullName            string `json:"full_name"`
	IsAdmin             bool   `json:"is_admin"`
	ForcePasswordChange bool   `json:"force_password_change"`
}

// UserResponseFromEntity maps a user entity to its API representation.
func UserResponseFromEntity(u *entity.User) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Email:               u.Email,
		FullName:            u.FullName,
		IsAdmin:             u.IsAdmin,
		ForcePasswordChange: u.ForcePasswordChange,
	}
}
