// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/glasshouse/editions-backend/internal/config"
	"github.com/glasshouse/editions-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Edition{},
		&models.Token{},
		&models.Account{},
		&models.LedgerEvent{},
		&models.Checkout{},
		&models.ContractMetadata{},
		&models.MetadataAsset{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)",
		"CREATE INDEX IF NOT EXISTS idx_users_address ON users(address)",
		"CREATE INDEX IF NOT EXISTS idx_users_type_status ON users(user_type, status)",

		// Edition indexes
		"CREATE INDEX IF NOT EXISTS idx_editions_recipient ON editions(funding_recipient)",
		"CREATE INDEX IF NOT EXISTS idx_editions_created_at ON editions(created_at DESC)",

		// Token indexes
		"CREATE INDEX IF NOT EXISTS idx_tokens_owner ON tokens(owner)",
		"CREATE INDEX IF NOT EXISTS idx_tokens_edition ON tokens(edition_id)",

		// Event indexes
		"CREATE INDEX IF NOT EXISTS idx_ledger_events_edition ON ledger_events(edition_id, seq)",
		"CREATE INDEX IF NOT EXISTS idx_ledger_events_type ON ledger_events(type, seq)",
		"CREATE INDEX IF NOT EXISTS idx_ledger_events_created ON ledger_events(created_at DESC)",

		// Checkout indexes
		"CREATE INDEX IF NOT EXISTS idx_checkouts_buyer_status ON checkouts(buyer, status)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Bootstrap seeds the set-once collection identity and a default admin
// account. Both are no-ops when the rows already exist, so repeated boots
// never overwrite what the first boot wrote.
func Bootstrap(db *gorm.DB, cfg *config.Config) error {
	log.Println("Bootstrapping initial data...")

	var metaCount int64
	db.Model(&models.ContractMetadata{}).Where("key = ?", models.ContractMetadataKey).Count(&metaCount)

	if metaCount == 0 {
		meta := &models.ContractMetadata{
			Key:    models.ContractMetadataKey,
			Name:   cfg.Contract.Name,
			Symbol: cfg.Contract.Symbol,
			URI:    cfg.Contract.URI,
		}
		if err := db.Create(meta).Error; err != nil {
			return fmt.Errorf("failed to seed contract metadata: %w", err)
		}
		log.Printf("Contract metadata seeded: %s (%s)", meta.Name, meta.Symbol)
	}

	var adminCount int64
	db.Model(&models.User{}).Where("user_type = ?", models.UserTypeAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Username: "admin",
			Email:    "admin@glasshouse.example",
			Address:  "0x0000000000000000000000000000000000000001",
			UserType: models.UserTypeAdmin,
			Status:   models.UserStatusActive,
			ProfileData: models.JSONB{
				"first_name": "System",
				"last_name":  "Administrator",
			},
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	log.Println("Bootstrap completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
