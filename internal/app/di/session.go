// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	accountsadapters "github.com/marolinik/arteon-ledger/internal/feature/accounts/adapters"
	"github.com/marolinik/arteon-ledger/internal/feature/accounts/usecase"
	"github.com/marolinik/arteon-ledger/internal/platform/session"
)

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to PostgreSQL.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return accountsadapters.NewSessionGorm(db)
}
