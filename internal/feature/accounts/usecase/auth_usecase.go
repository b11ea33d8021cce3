package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/marolinik/arteon-ledger/internal/feature/accounts/domain"
	"github.com/marolinik/arteon-ledger/internal/feature/accounts/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns ErrEmailAlreadyExists if a user with the same email exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user matching the specified email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user matching the specified ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// UpdatePassword replaces the stored password hash and clears the
	// forced-password-change flag in one statement.
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
}

// ClientInfo carries request metadata recorded on new sessions.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// AuthUsecase implements authentication and session management.
type AuthUsecase struct {
	users           UserRepository
	sessions        SessionRepository
	sessionLifetime time.Duration
	passwordMinLen  int
}

// NewAuthUsecase creates a new AuthUsecase instance.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, sessionLifetime time.Duration, passwordMinLen int) *AuthUsecase {
	return &AuthUsecase{
		users:           users,
		sessions:        sessions,
		sessionLifetime: sessionLifetime,
		passwordMinLen:  passwordMinLen,
	}
}

// Login authenticates a user by email and password and, on success,
// creates a server-side session and returns it alongside the user.
// A bcrypt comparison is always performed even when the user does not
// exist, so response timing does not leak which check failed.
func (u *AuthUsecase) Login(ctx context.Context, email, password string, client ClientInfo) (*entity.User, *entity.Session, error) {
	user, err := u.users.FindByEmail(ctx, email)

	// Dummy hash keeps bcrypt.CompareHashAndPassword on the failure path.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.PasswordHash
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, nil, fmt.Errorf("generate session token: %w", err)
	}

	now := time.Now()
	session := &entity.Session{
		ID:        token,
		UserID:    user.ID,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionLifetime),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	return user, session, nil
}

// Logout revokes the session with the given ID. A missing session is not
// an error; the end state is the same.
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if err := u.sessions.Revoke(ctx, sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// Resolve validates a session ID and returns the session and its user.
// Expired and revoked sessions resolve to their respective errors.
func (u *AuthUsecase) Resolve(ctx context.Context, sessionID string) (*entity.User, *entity.Session, error) {
	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.IsRevoked() {
		return nil, nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// ChangePassword validates and applies a new password for the user, clears
// the forced-password-change flag, and revokes the user's other sessions so
// a credential change invalidates any stale logins. The current session
// stays valid.
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uint, newPassword, confirmPassword, currentSessionID string) error {
	if strings.TrimSpace(newPassword) == "" || len(newPassword) < u.passwordMinLen {
		return ErrPasswordTooShort
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := u.users.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := u.sessions.RevokeAllByUserID(ctx, userID, currentSessionID); err != nil {
		return fmt.Errorf("revoke other sessions: %w", err)
	}
	return nil
}

// generateSessionToken returns a 64-character hex token from crypto/rand.
func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
