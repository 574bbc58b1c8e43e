package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultJWTSecret = "change-me-gold-pos-secret"

type Config struct {
	Env  string `envconfig:"NODE_ENV" default:"development"`
	Port int    `envconfig:"PORT" default:"3000"`

	DB struct {
		Host           string        `envconfig:"DB_HOST" default:"localhost"`
		Port           int           `envconfig:"DB_PORT" default:"3306"`
		User           string        `envconfig:"DB_USER" default:"root"`
		Password       string        `envconfig:"DB_PASSWORD" default:""`
		Name           string        `envconfig:"DB_NAME" default:"nekogold"`
		MaxOpenConns   int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
		ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"10s"`
		ConnectRetries int           `envconfig:"DB_CONNECT_RETRIES" default:"5"`
		LogLevel       string        `envconfig:"DB_LOG_LEVEL" default:"warn"`
	}

	Server struct {
		ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
		WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
		IdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
		CORSOrigins  []string      `envconfig:"CORS_ORIGINS" default:"*"`
		RateLimitRPS float64       `envconfig:"RATE_LIMIT_RPS" default:"20"`
		RateBurst    int           `envconfig:"RATE_LIMIT_BURST" default:"40"`
	}

	Frontend struct {
		StaticDir   string `envconfig:"STATIC_DIR" default:"./public"`
		DevAssetURL string `envconfig:"DEV_ASSET_URL" default:"http://localhost:5173"`
	}

	Uploads struct {
		Dir     string `envconfig:"UPLOAD_DIR" default:"./uploads"`
		BaseURL string `envconfig:"BASE_URL" default:""`
		MaxSize int64  `envconfig:"UPLOAD_MAX_BYTES" default:"10485760"`
	}

	AWS struct {
		Region          string `envconfig:"AWS_REGION" default:"eu-central-1"`
		AccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID"`
		SecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY"`
		S3Bucket        string `envconfig:"AWS_S3_BUCKET"`
	}

	Redis struct {
		Addr     string        `envconfig:"REDIS_ADDR"`
		Password string        `envconfig:"REDIS_PASSWORD"`
		TTL      time.Duration `envconfig:"SETTINGS_CACHE_TTL" default:"10m"`
	}

	Security struct {
		AdminGuard bool          `envconfig:"ADMIN_GUARD" default:"false"`
		JWTSecret  string        `envconfig:"JWT_SECRET" default:"change-me-gold-pos-secret"`
		TokenTTL   time.Duration `envconfig:"ADMIN_TOKEN_TTL" default:"12h"`
	}

	Assistant struct {
		GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
		Model        string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash-001"`
	}
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.IsProduction() && c.Security.AdminGuard && c.Security.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be changed when ADMIN_GUARD is enabled in production")
	}
	if c.DB.MaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.DB.MaxOpenConns)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// DSN builds the MySQL connection string. Times are read and written in UTC.
func (c *Config) DSN() string {
	dsn := mysql.NewConfig()
	dsn.User = c.DB.User
	dsn.Passwd = c.DB.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(c.DB.Host, strconv.Itoa(c.DB.Port))
	dsn.DBName = c.DB.Name
	dsn.ParseTime = true
	dsn.Timeout = c.DB.ConnectTimeout
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	return dsn.FormatDSN()
}
