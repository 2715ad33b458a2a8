package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type HTTPServer struct {
	Addr              string        `yaml:"address" env:"HTTP_ADDR" env-default:":3000"`
	ReadTimeout       time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout      time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout       time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"120s"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"HTTP_READ_HEADER_TIMEOUT" env-default:"2s"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"mongo"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-default:"trendprints"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"disable"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"1m"`
}

type Mongo struct {
	URI          string        `yaml:"MONGO_URI" env:"MONGO_URI" env-default:"mongodb://127.0.0.1:27017"`
	Database     string        `yaml:"MONGO_DB" env:"MONGO_DB" env-default:"trendprints"`
	Transactions bool          `yaml:"MONGO_TRANSACTIONS" env:"MONGO_TRANSACTIONS" env-default:"false"`
	Timeout      time.Duration `yaml:"MONGO_TIMEOUT" env:"MONGO_TIMEOUT" env-default:"10s"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

// RateConfig bounds login attempts per email within a sliding window.
type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15s"`
}

// APIRate is the per client token bucket applied to every request.
type APIRate struct {
	RequestsPerSecond float64 `yaml:"RPS" env:"API_RPS" env-default:"20"`
	Burst             int     `yaml:"BURST" env:"API_BURST" env-default:"40"`
}

type Security struct {
	SessionSecret string        `yaml:"SESSION_SECRET" env:"SESSION_SECRET" env-required:"true"`
	SessionTTL    time.Duration `yaml:"SESSION_TTL" env:"SESSION_TTL" env-default:"24h"`
	CookieName    string        `yaml:"COOKIE_NAME" env:"COOKIE_NAME" env-default:"trendprints.sid"`
	CookieSecure  bool          `yaml:"COOKIE_SECURE" env:"COOKIE_SECURE" env-default:"false"`
	BcryptCost    int           `yaml:"BCRYPT_COST" env:"BCRYPT_COST" env-default:"10"`
}

// Admin holds the credentials of the account created when no admin exists.
type Admin struct {
	Username string `yaml:"ADMIN_USERNAME" env:"ADMIN_USERNAME" env-default:"admin"`
	Email    string `yaml:"ADMIN_EMAIL" env:"ADMIN_EMAIL" env-default:"admin@trendprints.com"`
	Password string `yaml:"ADMIN_PASSWORD" env:"ADMIN_PASSWORD"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

type SendGrid struct {
	APIKey    string `yaml:"API_KEY" env:"SENDGRID_API_KEY"`
	FromEmail string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"orders@trendprints.com"`
	FromName  string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"TrendPrints"`
}

type Otel struct {
	Enabled          bool    `yaml:"ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"trendprints-storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT" env-default:"http://localhost:4318/v1/traces"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Static struct {
	PublicDir  string `yaml:"PUBLIC_DIR" env:"STATIC_PUBLIC_DIR" env-default:"public"`
	UploadsDir string `yaml:"UPLOADS_DIR" env:"STATIC_UPLOADS_DIR" env-default:"uploads"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"ALLOWED_ORIGINS" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	Storage      Storage      `yaml:"storage"`
	Database     Database     `yaml:"database"`
	Mongo        Mongo        `yaml:"mongo"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	APIRate      APIRate      `yaml:"apiRate"`
	Security     Security     `yaml:"security"`
	Admin        Admin        `yaml:"admin"`
	Cache        CacheConfig  `yaml:"cache"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Otel         Otel         `yaml:"otel"`
	Static       Static       `yaml:"static"`
	CORS         CORS         `yaml:"cors"`
}

func MustLoad() *Config {

	// a missing .env file is fine, the environment may already be populated
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the YAML config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			configPath = "config/local.yaml"
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config: %s", err.Error())
	}

	return cfg

}

// LoadConfigFromPath reads the YAML file at path and applies environment overrides.
func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {

	switch c.Storage.Driver {
	case DriverMongo:
	case DriverPostgres:
		if c.Database.User == "" || c.Database.Password == "" {
			return errors.New("postgres driver requires PG_USER and PG_PASSWORD")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost %d out of range", c.Security.BcryptCost)
	}

	return nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(d.User), url.QueryEscape(d.Password), d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
