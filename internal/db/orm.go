package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	gormModels "flugbuech/tower/internal/models/gorm"
)

var PgDB *gorm.DB

// InitPostgresORM connects GORM to Postgres and migrates the registry
// tables.
func InitPostgresORM(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	if err := gdb.AutoMigrate(
		&gormModels.User{},
		&gormModels.Glider{},
		&gormModels.Location{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	PgDB = gdb
	return gdb, nil
}
