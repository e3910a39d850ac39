package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration, loaded from configs/config.<env>.yaml
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	CORS     CORSConfig     `yaml:"cors"`
	Cache    CacheConfig    `yaml:"cache"`
	UI       UIConfig       `yaml:"ui"`
	Site     SiteConfig     `yaml:"site"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"` // gin mode: debug, release, test
	Env  string `yaml:"env"`
}

// DatabaseConfig Row Store connection settings
type DatabaseConfig struct {
	Driver          string `yaml:"driver"` // mysql | sqlite
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	DBName          string `yaml:"dbname"`
	Path            string `yaml:"path"` // sqlite file
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
	LogQueries      bool   `yaml:"log_queries"`
}

// GetDSN builds the MySQL DSN
func (d DatabaseConfig) GetDSN() string {
	cfg := mysqldriver.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", d.Host, d.Port)
	cfg.DBName = d.DBName
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// RedisConfig Redis connection settings
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// CORSConfig CORS settings
type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

// CacheConfig read-through cache TTLs
type CacheConfig struct {
	ListTTL     time.Duration `yaml:"list_ttl"`
	ResponseTTL time.Duration `yaml:"response_ttl"`
}

// UIConfig timings and layout constants for transient UI state
type UIConfig struct {
	NoticeDuration  time.Duration `yaml:"notice_duration"`
	DownloadDelay   time.Duration `yaml:"download_delay"`
	MasonryColumns  int           `yaml:"masonry_columns"`
	SessionIdleTTL  time.Duration `yaml:"session_idle_ttl"`
	DefaultLanguage string        `yaml:"default_language"`
}

// IsDevelopment reports whether the server runs in a local/dev environment
func (c *Config) IsDevelopment() bool {
	switch c.Server.Env {
	case "", "local", "dev", "development":
		return true
	}
	return false
}

// Default returns a config usable without any file
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, Mode: "debug", Env: "local"},
		Database: DatabaseConfig{
			Driver:          "mysql",
			Host:            "localhost",
			Port:            3306,
			User:            "drovic",
			DBName:          "drovic",
			Path:            "drovic.db",
			MaxIdleConns:    5,
			MaxOpenConns:    20,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{Host: "localhost", Port: 6379, PoolSize: 10},
		CORS:  CORSConfig{AllowOrigins: "http://localhost:3000"},
		Cache: CacheConfig{ListTTL: time.Minute, ResponseTTL: 30 * time.Second},
		UI: UIConfig{
			NoticeDuration:  3 * time.Second,
			DownloadDelay:   2 * time.Second,
			MasonryColumns:  4,
			SessionIdleTTL:  30 * time.Minute,
			DefaultLanguage: "en",
		},
		Site: DefaultSite(),
	}
}

// Load reads the YAML file at path over the defaults and applies env overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(cfg)

	if cfg.UI.MasonryColumns < 1 {
		cfg.UI.MasonryColumns = 4
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Env, "APP_ENV")
	setString(&cfg.Server.Mode, "GIN_MODE")
	setInt(&cfg.Server.Port, "PORT")

	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DBName, "DB_NAME")
	setString(&cfg.Database.Path, "DB_PATH")

	setString(&cfg.Redis.Host, "REDIS_HOST")
	setInt(&cfg.Redis.Port, "REDIS_PORT")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	if v := os.Getenv("REDIS_ENABLED"); v != "" {
		cfg.Redis.Enabled, _ = strconv.ParseBool(v)
	}

	setString(&cfg.CORS.AllowOrigins, "CORS_ALLOW_ORIGINS")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// LogResolved returns the non-secret settings for a startup log line
func LogResolved(cfg *Config) map[string]interface{} {
	return map[string]interface{}{
		"env":          cfg.Server.Env,
		"port":         cfg.Server.Port,
		"db_driver":    cfg.Database.Driver,
		"db_host":      cfg.Database.Host,
		"redis":        cfg.Redis.Enabled,
		"notice_ttl":   cfg.UI.NoticeDuration.String(),
		"download_ttl": cfg.UI.DownloadDelay.String(),
	}
}
