package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type AppConfig struct {
	Env         string `env:"APP_ENV"      envDefault:"development"`
	Port        string `env:"PORT"         envDefault:"8088"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	Store       string `env:"APP_STORE"    envDefault:"postgres"` // postgres or memory
}

type DBConfig struct {
	Host            string        `env:"DB_HOST"     envDefault:"localhost"`
	Port            string        `env:"DB_PORT"     envDefault:"5432"`
	User            string        `env:"DB_USER"     envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD" envDefault:"password"`
	Name            string        `env:"DB_NAME"     envDefault:"crease_db"`
	SSLMode         string        `env:"DB_SSLMODE"  envDefault:"disable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS"    envDefault:"20"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS"    envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
}

type JWTConfig struct {
	AccessTokenSecret string `env:"JWT_ACCESS_TOKEN_SECRET" envDefault:"supersecret"`
}

type LogConfig struct {
	Level             string `env:"LOG_LEVEL"              envDefault:"info"`
	Encoding          string `env:"LOG_ENCODING"           envDefault:"json"` // json or console
	Development       bool   `env:"LOG_DEVELOPMENT"        envDefault:"false"`
	DisableCaller     bool   `env:"LOG_DISABLE_CALLER"     envDefault:"false"`
	DisableStacktrace bool   `env:"LOG_DISABLE_STACKTRACE" envDefault:"true"`
	Sampling          bool   `env:"LOG_SAMPLING"           envDefault:"false"`
}

type LiveConfig struct {
	ViewerBuffer int           `env:"LIVE_VIEWER_BUFFER" envDefault:"8"`
	WriteTimeout time.Duration `env:"LIVE_WRITE_TIMEOUT" envDefault:"3s"`
}

type OutboxConfig struct {
	Schedule  string `env:"OUTBOX_SCHEDULE"   envDefault:"*/30 * * * * *"` // cron with seconds
	BatchSize int    `env:"OUTBOX_BATCH_SIZE" envDefault:"50"`
}

type Config struct {
	App    AppConfig
	DB     DBConfig
	JWT    JWTConfig
	Log    LogConfig
	Live   LiveConfig
	Outbox OutboxConfig
}

// Global DB instance, accessible after ConnectDB() is called via Initialize.
// It stays nil with the memory store.
var DB *gorm.DB

var appConfig *Config
var once sync.Once

// LoadConfig reads .env (if present) and then the process environment into Config.
func LoadConfig() (*Config, error) {
	// It's okay if .env doesn't exist; production sets the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on system environment variables.")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	switch cfg.App.Store {
	case StorePostgres, StoreMemory:
	default:
		return nil, fmt.Errorf("APP_STORE must be %q or %q, got %q", StorePostgres, StoreMemory, cfg.App.Store)
	}
	if cfg.Outbox.BatchSize <= 0 {
		return nil, fmt.Errorf("OUTBOX_BATCH_SIZE must be positive, got %d", cfg.Outbox.BatchSize)
	}

	if cfg.JWT.AccessTokenSecret == "supersecret" {
		log.Println("WARNING: Using default JWT secret. Set JWT_ACCESS_TOKEN_SECRET for production.")
	}
	if cfg.DB.Password == "password" && cfg.App.Env == "production" {
		log.Println("WARNING: Using default DB password in production. Please set DB_PASSWORD environment variable.")
	}

	appConfig = cfg
	return cfg, nil
}

// ConnectDB establishes a connection to the database using the provided configuration.
// It sets the global DB variable.
func ConnectDB(cfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
	)

	gormConfig := &gorm.Config{}
	if cfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info) // Log SQL queries in development
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	DB = gormDB
	return gormDB, nil
}

// Initialize loads all configurations and connects to the database when the
// postgres store is selected. Call it once at the start of main.
func Initialize() error {
	var loadErr error
	once.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		if loadedCfg.App.Store != StorePostgres {
			return
		}
		if _, err = ConnectDB(*loadedCfg); err != nil {
			loadErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
			return
		}
	})
	return loadErr
}

// GetConfig returns the loaded application configuration.
func GetConfig() *Config {
	if appConfig == nil {
		log.Fatal("Configuration not loaded. Call config.Initialize() first.")
	}
	return appConfig
}
