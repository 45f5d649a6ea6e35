package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	MySQL     MySQLConfig     `mapstructure:"mysql"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Swagger   SwaggerConfig   `mapstructure:"swagger"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type MySQLConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

// CacheConfig controls read-through caching of seminar and user views.
type CacheConfig struct {
	SeminarTTL time.Duration `mapstructure:"seminar_ttl"`
	UserTTL    time.Duration `mapstructure:"user_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or pretty
}

// RateLimitConfig limits requests per second per client IP on the auth endpoints.
// Zero disables the limiter.
type RateLimitConfig struct {
	SigninRPS float64 `mapstructure:"signin_rps"`
	Burst     int     `mapstructure:"burst"`
}

type SwaggerConfig struct {
	Host string `mapstructure:"host"`
}

// Load reads configuration from an optional file and SEMINAR_* environment
// variables. Precedence: env > file > defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("mysql.dsn", "user:password@tcp(localhost:3306)/seminar?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("mysql.max_open_conns", 25)
	v.SetDefault("mysql.max_idle_conns", 10)
	v.SetDefault("mysql.conn_max_lifetime", "1h")
	v.SetDefault("mysql.auto_migrate", true)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.access_token_ttl", "24h")

	v.SetDefault("cache.seminar_ttl", "30s")
	v.SetDefault("cache.user_ttl", "5m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("ratelimit.signin_rps", 5)
	v.SetDefault("ratelimit.burst", 10)

	v.SetDefault("swagger.host", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SEMINAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret must be set")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return errors.New("config: auth.jwt_secret must be at least 16 characters")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return errors.New("config: auth.access_token_ttl must be positive")
	}
	if c.Server.Port == "" {
		return errors.New("config: server.port must be set")
	}
	if c.MySQL.DSN == "" {
		return errors.New("config: mysql.dsn must be set")
	}
	switch c.Log.Format {
	case "json", "pretty":
	default:
		return fmt.Errorf("config: unknown log.format %q", c.Log.Format)
	}
	return nil
}
