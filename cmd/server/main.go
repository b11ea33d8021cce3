package main

import (
	"log"
	"log/slog"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/marolinik/arteon-ledger/internal/app/di"
	"github.com/marolinik/arteon-ledger/internal/app/router"
	"github.com/marolinik/arteon-ledger/internal/config"
	accountsadapters "github.com/marolinik/arteon-ledger/internal/feature/accounts/adapters"
	accountshandler "github.com/marolinik/arteon-ledger/internal/feature/accounts/transport/handler"
	accountsusecase "github.com/marolinik/arteon-ledger/internal/feature/accounts/usecase"
	ledgeradapters "github.com/marolinik/arteon-ledger/internal/feature/ledger/adapters"
	ledgerhandler "github.com/marolinik/arteon-ledger/internal/feature/ledger/transport/handler"
	ledgerusecase "github.com/marolinik/arteon-ledger/internal/feature/ledger/usecase"
	platformdb "github.com/marolinik/arteon-ledger/internal/platform/db"
	platformredis "github.com/marolinik/arteon-ledger/internal/platform/redis"
	"github.com/marolinik/arteon-ledger/internal/platform/token"
	"github.com/marolinik/arteon-ledger/internal/shared/ratelimiter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// db
	db := platformdb.OpenDB(cfg)

	// Redis is optional; without it sessions live in PostgreSQL
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(cfg); err != nil {
		slog.Warn("Redis unavailable, storing sessions in PostgreSQL")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Repository
	userRepo := accountsadapters.NewUserGorm(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	expenseRepo := ledgeradapters.NewExpenseGorm(db)

	// Usecase
	authUC := accountsusecase.NewAuthUsecase(userRepo, sessionRepo, cfg.SessionLifetime, cfg.PasswordMinLen)
	ledgerUC := ledgerusecase.NewLedgerUsecase(expenseRepo, cfg.GroupSize)

	// Handler
	codec := token.NewCodec(cfg.SessionSecret)
	authH := accountshandler.NewAuthHandler(authUC, codec, accountshandler.CookieConfig{
		Secure:   cfg.SecureCookies,
		Lifetime: cfg.SessionLifetime,
	})
	ledgerH := ledgerhandler.NewLedgerHandler(ledgerUC)

	loginLimiter := ratelimiter.NewRateLimiter(cfg.LoginRateLimit, time.Minute)

	r := router.NewRouter(authH, ledgerH, codec, authUC, loginLimiter)

	slog.Info("server starting", "addr", cfg.HTTPAddr, "env", cfg.Env)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
