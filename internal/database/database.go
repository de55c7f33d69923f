package database

import (
	"errors"
	"fmt"
	"os"

	"github.com/pezimbron/fieldops-service/internal/config"
	"github.com/pezimbron/fieldops-service/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize connects to database and runs migrations
func Initialize() (*gorm.DB, error) {
	cfg := config.LoadConfig()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "app.db"
	}

	var db *gorm.DB
	var err error

	gormLogger := logger.Default
	if cfg.App.Environment == "production" {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	gormConfig := &gorm.Config{
		Logger: gormLogger,
	}

	switch cfg.Database.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.Database.Username,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.DBName,
		)
		db, err = gorm.Open(mysql.Open(dsn), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL database: %v", err)
		}
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(dbPath), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to SQLite database: %v", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	if cfg.Database.Driver == "mysql" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database instance: %v", err)
		}

		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

		if err := sqlDB.Ping(); err != nil {
			return nil, fmt.Errorf("failed to ping database: %v", err)
		}
	}

	logrus.WithField("driver", cfg.Database.Driver).Info("database connected")

	if err := migrate(db); err != nil {
		return nil, err
	}

	if err := bootstrapAdminUser(db); err != nil {
		return nil, fmt.Errorf("failed to bootstrap admin account: %v", err)
	}

	logrus.Info("database migrated successfully")
	return db, nil
}

// InitWithConfig initializes database with provided config (useful for testing)
func InitWithConfig(cfg *config.Config) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	gormLogger := logger.Default
	if cfg.App.Environment == "production" {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	gormConfig := &gorm.Config{
		Logger: gormLogger,
	}

	switch cfg.Database.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.Database.Username,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.DBName,
		)
		db, err = gorm.Open(mysql.Open(dsn), gormConfig)
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(":memory:"), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %v", cfg.Database.Driver, err)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Job{},
		&models.Payment{},
		&models.Invoice{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %v", err)
	}
	return nil
}

// bootstrapAdminUser seeds the default operator account on first boot
func bootstrapAdminUser(db *gorm.DB) error {
	var existing models.User
	err := db.Where("email = ?", models.DefaultAdminEmail).First(&existing).Error
	if err == nil {
		logrus.WithField("user_id", existing.ID).Debug("admin account already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for existing admin account: %v", err)
	}

	admin := models.CreateDefaultAdmin()
	if err := admin.HashPassword(admin.Password); err != nil {
		return fmt.Errorf("failed to hash admin password: %v", err)
	}

	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin account: %v", err)
	}

	logrus.WithField("user_id", admin.ID).Info("admin account created")
	return nil
}
