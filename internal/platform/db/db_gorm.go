// Package db opens the PostgreSQL connection and runs schema migration.
package db

import (
	"fmt"
	"log"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/marolinik/arteon-ledger/internal/config"
	accountsadapters "github.com/marolinik/arteon-ledger/internal/feature/accounts/adapters"
	accountsentity "github.com/marolinik/arteon-ledger/internal/feature/accounts/domain/entity"
	ledgerentity "github.com/marolinik/arteon-ledger/internal/feature/ledger/domain/entity"
)

// Opener opens a gorm connection for the given DSN. Extracted so the
// retry loop can be tested without a live database.
type Opener func(dsn string) (*gorm.DB, error)

// openPostgres is the production Opener. TranslateError is enabled so
// unique violations surface as gorm.ErrDuplicatedKey across drivers.
func openPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// OpenDB connects to PostgreSQL with retries and, when configured, runs
// the schema migration. Failure to connect within the timeout is fatal.
func OpenDB(cfg *config.Config) *gorm.DB {
	db, err := ConnectWithRetry(cfg.DatabaseURL, 60*time.Second, openPostgres)
	if err != nil {
		log.Fatalf("DB connect failed: %v", err)
	}

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

// ConnectWithRetry keeps calling opener until it succeeds or the
// timeout elapses, pausing between attempts.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(retryInterval(timeout))
	}
}

// retryInterval keeps short timeouts (used in tests) from sleeping
// past their own deadline.
func retryInterval(timeout time.Duration) time.Duration {
	const interval = 3 * time.Second
	if timeout < interval {
		return timeout / 4
	}
	return interval
}

// Migrate creates or updates the users, sessions, and expenses tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&accountsentity.User{},
		&accountsadapters.SessionModel{},
		&ledgerentity.Expense{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
