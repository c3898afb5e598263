package database

import (
	"fmt"

	"tennis_backend/internal/config"
	"tennis_backend/internal/logger"
	"tennis_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm инициализирует GORM с DSN из конфига
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей и доводит индексы.
// Уникальность email/телефона действует только среди не-удаленных
// аккаунтов, поэтому это partial unique index, а не gorm-тег.
func AutoMigrate(db *gorm.DB) error {
	// uuid_generate_v4 для первичных ключей
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("uuid-ossp extension failed: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.BlockedUser{},
		&models.RefreshToken{},
		&models.MatchResult{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	partialIndexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_active
			ON users (email) WHERE account_status != 'deleted'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_phone_active
			ON users (phone) WHERE account_status != 'deleted'`,
	}
	for _, stmt := range partialIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("partial index creation failed: %w", err)
		}
	}

	logger.Info("AutoMigrate completed")
	return nil
}
