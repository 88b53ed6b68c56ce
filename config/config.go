package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	BindAddress string `env:"BIND_ADDRESS" envDefault:"localhost"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"truthordare"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"truthordare123"`
	DBName     string `env:"DB_NAME" envDefault:"truthordare"`

	RedisHost      string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort      string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"tod:"`

	// CatalogFile loads cards from a JSON document instead of the database.
	CatalogFile string `env:"CATALOG_FILE"`
	// CatalogSeedFile is imported into the database at startup when set.
	CatalogSeedFile string `env:"CATALOG_SEED_FILE"`

	TruthLimit  int  `env:"GAME_TRUTH_LIMIT" envDefault:"3"`
	ForceAction bool `env:"GAME_FORCE_ACTION" envDefault:"true"`

	UnlockSecret   string        `env:"UNLOCK_SECRET" envDefault:"your-secret-key-change-in-production"`
	UnlockTokenTTL time.Duration `env:"UNLOCK_TOKEN_TTL" envDefault:"24h"`
	// AdminKeyHash is a bcrypt hash of the key guarding admin routes.
	// Admin routes are disabled when it is empty.
	AdminKeyHash string `env:"ADMIN_KEY_HASH"`
}

func Load() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	return cfg
}

func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TruthLimit < 1 {
		return nil, fmt.Errorf("GAME_TRUTH_LIMIT must be at least 1, got %d", cfg.TruthLimit)
	}
	return &cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.BindAddress, c.Port)
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func InitRedis(cfg *Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return client
}
