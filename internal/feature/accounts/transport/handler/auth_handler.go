// Package handler provides HTTP handlers for the accounts feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marolinik/arteon-ledger/internal/feature/accounts/domain"
	"github.com/marolinik/arteon-ledger/internal/feature/accounts/domain/entity"
	"github.com/marolinik/arteon-ledger/internal/feature/accounts/transport/http/dto"
	"github.com/marolinik/arteon-ledger/internal/feature/accounts/usecase"
	"github.com/marolinik/arteon-ledger/internal/platform/token"
)

// AuthUsecase defines the authentication operations the handler needs.
// Following Go convention: the interface is defined by the consumer (handler),
// not the provider (usecase).
type AuthUsecase interface {
	// Login authenticates a user and creates a server-side session.
	Login(ctx context.Context, email, password string, client usecase.ClientInfo) (*entity.User, *entity.Session, error)
	// Logout revokes the session with the given ID.
	Logout(ctx context.Context, sessionID string) error
	// ChangePassword applies a new password and clears the forced-change flag.
	ChangePassword(ctx context.Context, userID uint, newPassword, confirmPassword, currentSessionID string) error
}

// CookieConfig controls the attributes of the session cookie.
type CookieConfig struct {
	Secure   bool
	Lifetime time.Duration
}

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	auth   AuthUsecase
	codec  *token.Codec
	cookie CookieConfig
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(auth AuthUsecase, codec *token.Codec, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{auth: auth, codec: codec, cookie: cookie}
}

// Login handles the login API endpoint.
// - Binds the request JSON to LoginReq; validation errors return 400
// - Authentication failures return 401 with a generic message
// - On success, sets the signed session cookie and returns the user with 200
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	client := usecase.ClientInfo{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
	user, session, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, client)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			// Do not reveal whether the email or the password failed
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid email or password"})
			return
		}
		slog.Error("login error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		return
	}

	cookieValue, err := h.codec.Issue(session.ID, user.ID, session.ExpiresAt)
	if err != nil {
		slog.Error("session cookie signing failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		return
	}

	h.setSessionCookie(c, cookieValue, int(h.cookie.Lifetime.Seconds()))

	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

// Logout handles the logout API endpoint. It revokes the current session
// and clears the cookie. Always succeeds for an authenticated caller.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := token.CurrentSession(c)
	if session != nil {
		if err := h.auth.Logout(c.Request.Context(), session.ID); err != nil {
			slog.Error("logout failed", "error", err, "session_id", session.ID)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
			return
		}
	}

	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}

// ChangePassword handles the change-password API endpoint.
// - Binds the request JSON to ChangePasswordReq; validation errors return 400
// - Policy violations (too short, mismatch) return 400 with the reason
// - On success, returns the refreshed user so the client sees the cleared flag
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	user := token.CurrentUser(c)
	session := token.CurrentSession(c)
	if user == nil || session == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}

	err := h.auth.ChangePassword(c.Request.Context(), user.ID, req.NewPassword, req.ConfirmPassword, session.ID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "password does not meet the minimum length"})
		case errors.Is(err, usecase.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "passwords do not match"})
		default:
			slog.Error("change password failed", "error", err, "user_id", user.ID)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	slog.Info("password changed", "user_id", user.ID)
	user.ForcePasswordChange = false
	c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	user := token.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}
	c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

// setSessionCookie writes the session cookie with the handler's attributes.
// A negative maxAge deletes the cookie.
func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(token.SessionCookieName, value, maxAge, "/", "", h.cookie.Secure, true)
}
