package core

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type LogLevel int

const (
	LogLevelSilent LogLevel = iota + 1
	LogLevelError
	LogLevelWarn
	LogLevelInfo
)

// ParseLogLevel maps a config string onto a LogLevel. Unknown values are silent.
func ParseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	case "info", "debug":
		return LogLevelInfo
	default:
		return LogLevelSilent
	}
}

type DatabaseManager struct {
	DB       *gorm.DB
	SqlDB    *sql.DB
	LogLevel LogLevel
}

// Dialector picks the gorm driver from the dsn. "sqlite:" prefixed dsns open
// a local SQLite file (or ":memory:"), anything else is a MySQL dsn.
func Dialector(dsn string) gorm.Dialector {
	if path, ok := strings.CutPrefix(dsn, "sqlite:"); ok {
		return sqlite.Open(path)
	}
	return mysql.Open(dsn)
}

// NewDatabaseManager opens the pool (e.g. 10 conns).
func NewDatabaseManager(dsn string, maxConnection int, level LogLevel) (*DatabaseManager, error) {
	db, err := gorm.Open(Dialector(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(level)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}

	if maxConnection > 0 {
		sqlDB.SetMaxOpenConns(maxConnection)
		sqlDB.SetMaxIdleConns(maxConnection)
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping pool: %w", err)
	}

	return &DatabaseManager{DB: db, SqlDB: sqlDB, LogLevel: level}, nil
}

func gormLogLevel(level LogLevel) logger.LogLevel {
	switch level {
	case LogLevelError:
		return logger.Error
	case LogLevelWarn:
		return logger.Warn
	case LogLevelInfo:
		return logger.Info
	default:
		return logger.Silent
	}
}

// Exec runs fn against a session bound to ctx.
func (dm *DatabaseManager) Exec(ctx context.Context, fn func(db *gorm.DB) error) error {
	return fn(dm.DB.WithContext(ctx))
}

// Migrate creates or updates the tables for models.
func (dm *DatabaseManager) Migrate(ctx context.Context, models ...any) error {
	return dm.Exec(ctx, func(db *gorm.DB) error {
		return db.AutoMigrate(models...)
	})
}

// Close closes the pool
func (dm *DatabaseManager) Close() error {
	return dm.SqlDB.Close()
}
