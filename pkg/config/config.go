package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"

	StoreBackendFile     = "file"
	StoreBackendSQLite   = "sqlite"
	StoreBackendPostgres = "postgres"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	DB        DBConfig
	JWT       JWTConfig
	Password  PasswordConfig
	Inventory InventoryConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("keepstock", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"KEEPSTOCK_APP_ENV" default:"development"`
	Port     string `envconfig:"KEEPSTOCK_APP_PORT" default:"8080"`
	LogLevel string `envconfig:"KEEPSTOCK_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig selects and locates the record store backend.
type StoreConfig struct {
	Backend string `envconfig:"KEEPSTOCK_STORE_BACKEND" default:"file"`
	DataDir string `envconfig:"KEEPSTOCK_STORE_DATA_DIR" default:"./data"`
}

func (s StoreConfig) validate() error {
	switch strings.ToLower(s.Backend) {
	case StoreBackendFile, StoreBackendSQLite, StoreBackendPostgres:
		return nil
	}
	return fmt.Errorf("unknown store backend %q", s.Backend)
}

// IsFile reports whether the JSON snapshot backend is selected.
func (s StoreConfig) IsFile() bool {
	return strings.EqualFold(s.Backend, StoreBackendFile)
}

type DBConfig struct {
	DSN        string `envconfig:"KEEPSTOCK_DB_DSN"`
	SQLitePath string `envconfig:"KEEPSTOCK_DB_SQLITE_PATH" default:"./data/keepstock.db"`

	AutoMigrate bool `envconfig:"KEEPSTOCK_DB_AUTO_MIGRATE" default:"true"`

	MaxOpenConns    int           `envconfig:"KEEPSTOCK_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"KEEPSTOCK_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"KEEPSTOCK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KEEPSTOCK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type JWTConfig struct {
	Secret            string `envconfig:"KEEPSTOCK_JWT_SECRET" default:"dev-only-secret"`
	Issuer            string `envconfig:"KEEPSTOCK_JWT_ISSUER" default:"keepstock"`
	ExpirationMinutes int    `envconfig:"KEEPSTOCK_JWT_EXPIRATION_MINUTES" default:"720"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"KEEPSTOCK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"KEEPSTOCK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"KEEPSTOCK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"KEEPSTOCK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"KEEPSTOCK_ARGON_KEY_LEN" default:"32"`
}

type InventoryConfig struct {
	LowStockThreshold int `envconfig:"KEEPSTOCK_LOW_STOCK_THRESHOLD" default:"10"`
	RecentBoxesLimit  int `envconfig:"KEEPSTOCK_RECENT_BOXES_LIMIT" default:"5"`
}
