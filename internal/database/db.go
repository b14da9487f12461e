package database

import (
	"fmt"
	"log"
	"time"

	"cpms/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init connects to the database, retrying while it comes up, and migrates the
// entity tables. The process must not start without a reachable store.
func Init(dsn string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		return nil, fmt.Errorf("connect to db after %d attempts: %w", maxAttempts, err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Migrate creates or alters the tables for every entity type.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Project{},
		&models.Task{},
		&models.Discipline{},
		&models.GroupFunction{},
		&models.DesignFunctionTemplate{},
		&models.PlanningTemplate{},
	)
}
