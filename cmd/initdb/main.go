// Command initdb creates the schema and seeds the initial housemates.
// Safe to run repeatedly: seeding is skipped once any user exists.
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/marolinik/arteon-ledger/internal/config"
	"github.com/marolinik/arteon-ledger/internal/feature/accounts/domain/entity"
	platformdb "github.com/marolinik/arteon-ledger/internal/platform/db"
)

type seedUser struct {
	email    string
	password string
	fullName string
	isAdmin  bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	db, err := gorm.Open(gpostgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	log.Println("connected to PostgreSQL")

	if err := platformdb.Migrate(db); err != nil {
		return err
	}
	log.Println("schema migrated")

	var count int64
	if err := db.Model(&entity.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		log.Println("database already contains users, skipping seed")
		return nil
	}

	seeds := []seedUser{
		{email: "resident1@arteonvillas.example", password: "password1", fullName: "Resident One", isAdmin: true},
		{email: "resident2@arteonvillas.example", password: "password2", fullName: "Resident Two"},
		{email: "resident3@arteonvillas.example", password: "password3", fullName: "Resident Three"},
		{email: "resident4@arteonvillas.example", password: "password4", fullName: "Resident Four"},
	}

	for _, s := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", s.email, err)
		}
		user := &entity.User{
			Email:               s.email,
			PasswordHash:        string(hash),
			FullName:            s.fullName,
			IsAdmin:             s.isAdmin,
			ForcePasswordChange: true,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("create user %s: %w", s.email, err)
		}
		role := ""
		if s.isAdmin {
			role = " [ADMIN]"
		}
		log.Printf("created %s (%s)%s", s.fullName, s.email, role)
	}

	log.Println("all users must change their password on first login")
	return nil
}
