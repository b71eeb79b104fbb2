package db

import (
	"fmt"
	"sync/atomic"

	"github.com/casetrack-dev/casetrack/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

var testDBCounter atomic.Int64

// ConnectTestDatabase swaps the global connection for a fresh in-memory
// SQLite database and migrates it. Each call gets its own named database so
// tests never see each other's rows.
func ConnectTestDatabase() error {
	var err error

	name := fmt.Sprintf("file:casetrack_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))

	DB, err = gorm.Open(sqlite.Open(name), &gorm.Config{})

	if err != nil {
		return err
	}

	return MigrateDatabase()
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.TestCase{},
		&models.RevokedToken{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
