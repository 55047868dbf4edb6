// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gamevault/gamestore-backend/internal/config"
	"github.com/gamevault/gamestore-backend/internal/models"
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

	// Enable UUID generation
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"pgcrypto\"").Error; err != nil {
		return fmt.Errorf("failed to create pgcrypto extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Publisher{},
		&models.Genre{},
		&models.Platform{},
		&models.Game{},
		&models.Comment{},
		&models.Order{},
		&models.OrderDetail{},
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
		// Game indexes backing the catalog filters
		"CREATE INDEX IF NOT EXISTS idx_games_price ON games(price)",
		"CREATE INDEX IF NOT EXISTS idx_games_created_at ON games(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_games_view_count ON games(view_count)",
		"CREATE INDEX IF NOT EXISTS idx_games_name_lower ON games(LOWER(name))",

		// Comment indexes
		"CREATE INDEX IF NOT EXISTS idx_comments_game_status ON comments(game_id, status)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_status ON orders(customer_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_order_details_game_key ON order_details(game_key)",

		// Audit log indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created_at ON audit_logs(created_at)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// SeedData installs the baseline taxonomy and the administrator account on
// an empty database.
func SeedData(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if userCount == 0 {
		admin := &models.User{
			Username: "admin",
			Email:    "admin@gamevault.store",
			Role:     models.UserRoleAdmin,
			Status:   models.UserStatusActive,
		}
		if err := admin.SetPassword("ChangeMe123!"); err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		log.Println("Seeded default admin user")
	}

	var platformCount int64
	if err := db.Model(&models.Platform{}).Count(&platformCount).Error; err != nil {
		return fmt.Errorf("failed to count platforms: %w", err)
	}
	if platformCount == 0 {
		for _, platformType := range []string{"PC", "PlayStation", "Xbox", "Nintendo Switch", "Mobile"} {
			if err := db.Create(&models.Platform{Type: platformType}).Error; err != nil {
				return fmt.Errorf("failed to seed platform %q: %w", platformType, err)
			}
		}
	}

	var genreCount int64
	if err := db.Model(&models.Genre{}).Count(&genreCount).Error; err != nil {
		return fmt.Errorf("failed to count genres: %w", err)
	}
	if genreCount == 0 {
		if err := seedGenres(db); err != nil {
			return err
		}
	}

	return nil
}

func seedGenres(db *gorm.DB) error {
	// Top-level genres with their subgenres
	tree := map[string][]string{
		"Strategy":   {"RTS", "TBS"},
		"RPG":        {},
		"Sports":     {"Races"},
		"Action":     {"FPS", "TPS"},
		"Adventure":  {},
		"Puzzle":     {},
		"Simulation": {},
	}

	for parent, children := range tree {
		genre := &models.Genre{Name: parent}
		if err := db.Create(genre).Error; err != nil {
			return fmt.Errorf("failed to seed genre %q: %w", parent, err)
		}
		for _, childName := range children {
			child := &models.Genre{Name: childName, ParentID: &genre.ID}
			if err := db.Create(child).Error; err != nil {
				return fmt.Errorf("failed to seed genre %q: %w", childName, err)
			}
		}
	}
	return nil
}
