package database

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/welldanyogia/inboxzero/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connection pool configuration
const (
	DefaultMaxIdleConns    = 10
	DefaultMaxOpenConns    = 100
	DefaultConnMaxLifetime = time.Hour
	DefaultConnMaxIdleTime = 10 * time.Minute
)

// Driver names
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options controls how Connect opens the database
type Options struct {
	// Production rejects sslmode=disable for PostgreSQL
	Production bool
	// LogLevel is the application log level; "debug" enables SQL logging
	LogLevel string
}

// Connect opens a PostgreSQL (postgres://, postgresql://) or SQLite (sqlite://path, file:) database
func Connect(databaseURL string, opts Options) (*gorm.DB, error) {
	driver, dsn, err := ParseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		if opts.Production {
			if err := validateSSLMode(dsn); err != nil {
				return nil, err
			}
		}
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(opts.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := configure(db, driver); err != nil {
		return nil, err
	}

	slog.Info("Connected to database successfully", slog.String("driver", driver))
	return db, nil
}

// ParseURL splits a database URL into a driver name and the DSN handed to that driver
func ParseURL(databaseURL string) (driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DriverPostgres, databaseURL, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("sqlite database path cannot be empty")
		}
		return DriverSQLite, path, nil
	case strings.HasPrefix(databaseURL, "file:"), databaseURL == ":memory:":
		return DriverSQLite, databaseURL, nil
	default:
		return "", "", fmt.Errorf("unsupported database URL scheme: expected postgres:// or sqlite://")
	}
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.Info
	case "warn", "info":
		return logger.Warn
	case "error":
		return logger.Error
	default:
		return logger.Silent
	}
}

// validateSSLMode ensures SSL is enabled in production
func validateSSLMode(databaseURL string) error {
	// Check if sslmode is explicitly disabled
	if strings.Contains(databaseURL, "sslmode=disable") {
		return fmt.Errorf("SSL mode cannot be disabled in production")
	}

	// If no sslmode specified, it's okay (defaults to prefer/require depending on server)
	return nil
}

// configure applies per-driver settings and closes db if they cannot be applied
func configure(db *gorm.DB, driver string) error {
	var err error
	if driver == DriverSQLite {
		err = configureSQLite(db)
	} else {
		err = configureConnectionPool(db)
	}
	if err != nil {
		if closeErr := Close(db); closeErr != nil {
			slog.Warn("failed to close database after setup error", slog.Any("error", closeErr))
		}
		return err
	}
	return nil
}

// configureConnectionPool sets up connection pool limits
func configureConnectionPool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool limits
	sqlDB.SetMaxIdleConns(DefaultMaxIdleConns)
	sqlDB.SetMaxOpenConns(DefaultMaxOpenConns)
	sqlDB.SetConnMaxLifetime(DefaultConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(DefaultConnMaxIdleTime)

	return nil
}

// configureSQLite pins SQLite to one connection so pragmas and in-memory databases are shared
func configureSQLite(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return nil
}

// Migrate runs auto-migration for all models
func Migrate(db *gorm.DB) error {
	slog.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Email{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("Database migrations completed successfully")
	return nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
