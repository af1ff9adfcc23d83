package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// DBConfig describes the database to discover.
type DBConfig struct {
	Type         string `yaml:"type" json:"type" env:"WIZARD_DB_TYPE"`
	Host         string `yaml:"host" json:"host" env:"WIZARD_DB_HOST"`
	Port         int    `yaml:"port" json:"port" env:"WIZARD_DB_PORT"`
	Username     string `yaml:"username" json:"username" env:"WIZARD_DB_USERNAME"`
	Password     string `yaml:"password" json:"password" env:"WIZARD_DB_PASSWORD"`
	DatabaseName string `yaml:"database_name" json:"database_name" env:"WIZARD_DB_NAME"`
	DSN          string `yaml:"dsn" json:"dsn" env:"WIZARD_DB_DSN"` // optional explicit DSN
}

type ServerConfig struct {
	Port int `yaml:"port" json:"port" env:"WIZARD_PORT" env-default:"8080"`
}

// DiscoveryConfig holds the defaults applied to a freshly discovered schema.
type DiscoveryConfig struct {
	DefaultResolveDepth int `yaml:"default_resolve_depth" json:"default_resolve_depth" env:"WIZARD_RESOLVE_DEPTH" env-default:"1"`
	// Timeout bounds connecting and reading the catalog, in seconds.
	Timeout int `yaml:"timeout" json:"timeout" env:"WIZARD_TIMEOUT" env-default:"10"`
}

type LogConfig struct {
	Level       string `yaml:"level" json:"level" env:"WIZARD_LOG_LEVEL" env-default:"info"`
	Development bool   `yaml:"development" json:"development" env:"WIZARD_LOG_DEVELOPMENT"`
}

type AppConfig struct {
	Database  DBConfig        `yaml:"database" json:"database"`
	Server    ServerConfig    `yaml:"server" json:"server"`
	Discovery DiscoveryConfig `yaml:"discovery" json:"discovery"`
	Log       LogConfig       `yaml:"log" json:"log"`
}

// LoadFile loads YAML config from path. Environment variables override the file.
func LoadFile(path string) (AppConfig, error) {
	var cfg AppConfig
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv builds a config from environment variables and defaults alone.
func LoadEnv() (AppConfig, error) {
	var cfg AppConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

// NormalizeDriver maps common aliases to canonical keys (keeps backwards compat).
func NormalizeDriver(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "postgresql", "pg", "postgres":
		return "postgres"
	case "mysql", "mariadb":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite"
	case "mssql", "sqlserver":
		return "sqlserver"
	case "godror", "oracle":
		return "godror"
	default:
		return strings.ToLower(d)
	}
}

// BuildDriverAndDSN produces a driver name and DSN string for supported DB types.
func BuildDriverAndDSN(db DBConfig) (driver string, dsn string, err error) {
	// If explicit DSN provided, user must also set Type to choose driver or we guess
	t := NormalizeDriver(db.Type)

	if db.DSN != "" {
		return t, db.DSN, nil
	}

	switch t {
	case "postgres":
		driver = "postgres"
		// simple URL form
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			db.Username, db.Password, db.Host, db.Port, db.DatabaseName)
	case "mysql":
		driver = "mysql"
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			db.Username, db.Password, db.Host, db.Port, db.DatabaseName)
	case "sqlite":
		driver = "sqlite"
		if db.DatabaseName == "" {
			return "", "", fmt.Errorf("sqlite needs a file path in database_name")
		}
		dsn = fmt.Sprintf("file:%s?mode=ro", db.DatabaseName)
	case "sqlserver":
		driver = "sqlserver"
		dsn = fmt.Sprintf("sqlserver://%s:%s@%s:%d?database=%s",
			db.Username, db.Password, db.Host, db.Port, db.DatabaseName)
	case "godror":
		driver = "godror"
		// simple EZCONNECT style; may need adjustments per environment
		dsn = fmt.Sprintf("%s/%s@%s:%d/%s",
			db.Username, db.Password, db.Host, db.Port, db.DatabaseName)
	default:
		err = fmt.Errorf("unsupported database type: %s", db.Type)
	}
	return
}
