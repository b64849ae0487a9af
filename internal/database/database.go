package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Ecclesia-Lucis/LightPath/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// Pure-Go SQLite driver, registered under the name "sqlite"
	_ "modernc.org/sqlite"
)

// driverName selects modernc.org/sqlite instead of the CGO mattn driver gorm's dialector defaults to
const driverName = "sqlite"

// Config holds database configuration options
type Config struct {
	// DatabasePath is the file path to the SQLite database
	// Example: "./data/lightpath.db" or ":memory:" for in-memory database
	DatabasePath string

	// LogLevel sets GORM logging verbosity
	// Silent = no logs, Error = errors only, Warn = warnings + errors, Info = all queries
	LogLevel logger.LogLevel

	// MaxIdleConns sets the maximum number of idle connections in the pool
	MaxIdleConns int

	// MaxOpenConns sets the maximum number of open connections to the database
	MaxOpenConns int

	// ConnMaxLifetime sets the maximum amount of time a connection may be reused (0 = forever)
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns sensible default configuration for production
func DefaultConfig(dbPath string) *Config {
	return &Config{
		DatabasePath:    dbPath,
		LogLevel:        logger.Warn,
		MaxIdleConns:    2,
		MaxOpenConns:    4,
		ConnMaxLifetime: time.Hour,
	}
}

// TestConfig returns configuration suitable for testing (in-memory database)
// A single long-lived connection is required: every new :memory: connection is a fresh empty database
func TestConfig() *Config {
	return &Config{
		DatabasePath:    ":memory:",
		LogLevel:        logger.Silent,
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: 0,
	}
}

// InitDB opens the database, configures the pool and runs migrations
func InitDB(config *Config, log *zap.Logger) (*gorm.DB, error) {
	if config == nil {
		config = DefaultConfig("./data/lightpath.db")
	}
	if log == nil {
		log = zap.NewNop()
	}

	inMemory := config.DatabasePath == ":memory:"
	if inMemory {
		// Same reason as TestConfig: the schema lives on one connection
		config.MaxOpenConns = 1
		config.MaxIdleConns = 1
		config.ConnMaxLifetime = 0
	} else {
		if err := ensureDBDirectory(config.DatabasePath, log); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: newGormLogger(log, config.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	log.Info("Opening SQLite database", zap.String("path", config.DatabasePath))
	db, err := gorm.Open(sqlite.New(sqlite.Config{
		DriverName: driverName,
		DSN:        config.DatabasePath,
	}), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database at %s: %w", config.DatabasePath, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	// SQLite disables foreign keys by default
	if err := db.Exec("PRAGMA foreign_keys = ON;").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign key constraints: %w", err)
	}

	if !inMemory {
		if err := db.Exec("PRAGMA journal_mode = WAL;").Error; err != nil {
			// Non-fatal, the default rollback journal still works
			log.Warn("Failed to enable WAL mode", zap.Error(err))
		}
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database initialized successfully")
	return db, nil
}

// runMigrations executes GORM AutoMigrate for all models
func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.ServerStart{},
	); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	return nil
}

// Close gracefully closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}

// Ping checks if the database connection is alive
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// ensureDBDirectory creates the directory for the database file if it doesn't exist
func ensureDBDirectory(dbPath string, log *zap.Logger) error {
	dir := filepath.Dir(dbPath)
	if dir == "." {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists but is not a directory", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	log.Info("Created database directory", zap.String("dir", dir))
	return nil
}
