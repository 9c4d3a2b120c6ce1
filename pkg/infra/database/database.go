package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	connectTimeout   = 30 * time.Second
	migrationTimeout = 30 * time.Second
)

// DB represents the database connection
type DB struct {
	logger *logrus.Logger
	*gorm.DB
}

// Config holds database configuration
type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Path is the sqlite file, or a "file:" DSN such as an in-memory database.
	Path string
}

// NewDB opens the configured database, verifies connectivity and applies
// pending migrations.
func NewDB(logger *logrus.Logger, cfg *Config) (*DB, error) {
	dialector, err := dialectorFor(logger, cfg)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql DB: %w", err)
	}
	if cfg.Driver == DriverSQLite {
		// sqlite serialises writers anyway
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(60 * time.Second)
		logger.WithFields(logrus.Fields{
			"max_open_conns":     50,
			"max_idle_conns":     25,
			"conn_max_lifetime":  "5m",
			"conn_max_idle_time": "60s",
		}).Info("configured database connection pool")
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	db := &DB{logger: logger, DB: gormDB}
	if err := db.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func dialectorFor(logger *logrus.Logger, cfg *Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverPostgres:
		logger.WithFields(logrus.Fields{
			"host":    cfg.Host,
			"port":    cfg.Port,
			"db":      cfg.DBName,
			"user":    cfg.User,
			"sslmode": cfg.SSLMode,
		}).Info("connecting to database")
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
		return postgres.Open(dsn), nil
	case DriverSQLite, "":
		path := cfg.Path
		if path == "" {
			path = "folio.db"
		}
		if !isSQLiteURI(path) {
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("failed to create database directory: %w", err)
				}
			}
		}
		logger.WithField("path", path).Info("opening sqlite database")
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func isSQLiteURI(path string) bool {
	return strings.HasPrefix(path, "file:") || path == ":memory:"
}

func (db *DB) migrate() error {
	db.logger.WithField("timeout", migrationTimeout.String()).Info("applying database migrations")
	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	applied, err := NewMigrationsManager(db.DB, db.logger).ApplyPending(ctx)
	if err != nil {
		db.logger.WithError(err).Error("failed to apply database migrations")
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	db.logger.WithField("applied", len(applied)).Info("database migrations up to date")
	return nil
}

// Migrations exposes the manager for the migrate command.
func (db *DB) Migrations() *MigrationsManager {
	return NewMigrationsManager(db.DB, db.logger)
}

// Ping is used by the readiness probe.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
