// Package dto defines data transfer objects for the accounts feature's HTTP transport layer.
package dto

// LoginReq represents the request body for the /login endpoint.
// It uses Gin's binding tags for validation (required, email format).
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
