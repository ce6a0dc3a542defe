package db

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"go-decisions/internal/config"
	"go-decisions/internal/decision"
	"go-decisions/internal/user"
)

var DB *gorm.DB

func Init(cfg *config.Config) error {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), &gorm.Config{})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(&user.User{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&decision.Decision{},
		&decision.Option{},
		&decision.Assumption{},
		&decision.Review{},
	); err != nil {
		return err
	}

	DB = db
	log.Printf("Database connected and migrated")
	return nil
}
