package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/marolinik/arteon-ledger/internal/feature/accounts/domain/entity"
	"github.com/marolinik/arteon-ledger/internal/feature/accounts/usecase"
)

// setupSessionTestDB prepares an in-memory SQLite database for session testing.
func setupSessionTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&SessionModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedSession creates a test session in the database.
func seedSession(t *testing.T, db *gorm.DB, id string, userID uint, expiresAt time.Time, revokedAt *time.Time) *entity.Session {
	t.Helper()

	session := &SessionModel{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
		RevokedAt: revokedAt,
	}
	require.NoError(t, db.Create(session).Error, "failed to seed session")
	return session.ToEntity()
}

func TestSessionGorm_CreateAndFind(t *testing.T) {
	t.Parallel()

	db := setupSessionTestDB(t)
	repo := NewSessionGorm(db)

	now := time.Now()
	session := &entity.Session{
		ID:        "token-001",
		UserID:    1,
		UserAgent: "Mozilla/5.0",
		IPAddress: "192.168.1.1",
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), session))

	found, err := repo.FindByID(context.Background(), "token-001")
	require.NoError(t, err)
	assert.Equal(t, uint(1), found.UserID)
	assert.True(t, found.IsValid())
}

func TestSessionGorm_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	db := setupSessionTestDB(t)
	repo := NewSessionGorm(db)

	_, err := repo.FindByID(context.Background(), "missing")

	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionGorm_Revoke(t *testing.T) {
	t.Parallel()

	t.Run("success: session revocation", func(t *testing.T) {
		t.Parallel()

		db := setupSessionTestDB(t)
		repo := NewSessionGorm(db)
		seedSession(t, db, "to-revoke", 1, time.Now().Add(24*time.Hour), nil)

		require.NoError(t, repo.Revoke(context.Background(), "to-revoke"))

		found, err := repo.FindByID(context.Background(), "to-revoke")
		require.NoError(t, err)
		assert.True(t, found.IsRevoked())
	})

	t.Run("failure: unknown session", func(t *testing.T) {
		t.Parallel()

		db := setupSessionTestDB(t)
		repo := NewSessionGorm(db)

		err := repo.Revoke(context.Background(), "missing")

		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionGorm_RevokeAllByUserID(t *testing.T) {
	t.Parallel()

	db := setupSessionTestDB(t)
	repo := NewSessionGorm(db)

	expiry := time.Now().Add(24 * time.Hour)
	seedSession(t, db, "keep", 1, expiry, nil)
	seedSession(t, db, "drop-1", 1, expiry, nil)
	seedSession(t, db, "drop-2", 1, expiry, nil)
	seedSession(t, db, "other-user", 2, expiry, nil)

	require.NoError(t, repo.RevokeAllByUserID(context.Background(), 1, "keep"))

	kept, err := repo.FindByID(context.Background(), "keep")
	require.NoError(t, err)
	assert.False(t, kept.IsRevoked(), "excepted session must stay valid")

	for _, id := range []string{"drop-1", "drop-2"} {
		s, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, s.IsRevoked(), "session %s should be revoked", id)
	}

	other, err := repo.FindByID(context.Background(), "other-user")
	require.NoError(t, err)
	assert.False(t, other.IsRevoked(), "other users' sessions must be untouched")
}

func TestSessionGorm_DeleteExpired(t *testing.T) {
	t.Parallel()

	db := setupSessionTestDB(t)
	repo := NewSessionGorm(db)

	seedSession(t, db, "expired-1", 1, time.Now().Add(-time.Hour), nil)
	seedSession(t, db, "expired-2", 1, time.Now().Add(-time.Minute), nil)
	seedSession(t, db, "active", 1, time.Now().Add(time.Hour), nil)

	deleted, err := repo.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = repo.FindByID(context.Background(), "active")
	assert.NoError(t, err)
}
