package db

import (
	"fmt"
	"strings"

	"github.com/smallbiznis/landedcost/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const defaultSQLitePath = "landedcost.db"

// Dialect picks the gorm driver for DATABASE_TYPE. An empty type falls back to
// a local sqlite file.
func Dialect(cfg config.Config) (gorm.Dialector, error) {
	kind, dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	default:
		return sqlite.Open(dsn), nil
	}
}

// DSN returns the normalized driver name and its connection string.
func DSN(cfg config.Config) (string, string, error) {
	kind := strings.ToLower(strings.TrimSpace(cfg.DBType))
	switch kind {
	case "mysql":
		return kind, fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName), nil
	case "postgres", "postgresql":
		sslMode := strings.TrimSpace(cfg.DBSSLMode)
		if sslMode == "" {
			sslMode = "disable"
		}
		return "postgres", fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, sslMode), nil
	case "", "sqlite":
		path := strings.TrimSpace(cfg.DBPath)
		if path == "" {
			path = defaultSQLitePath
		}
		return "sqlite", path, nil
	default:
		return "", "", fmt.Errorf("unsupported database type %q", cfg.DBType)
	}
}
