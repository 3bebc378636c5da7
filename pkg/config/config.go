package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	devJWTSecret = "supersecretjwtkey"
)

type Config struct {
	Port           string
	Env            string
	JWTSecret      string
	PostgresURL    string
	MongoURI       string
	MetricsPort    string
	AllowedOrigins []string
	LogLevel       string
	AutoMigrate    bool
	MaxOpenConns   int
	MaxIdleConns   int
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://localhost:8080",
	"http://localhost:8081",
}

// Load reads configuration from the environment, after loading a .env file if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, assuming environment variables are set.")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "3001")
	v.SetDefault("METRICS_PORT", "9090")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("AUTO_MIGRATE", false)
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	env := v.GetString("ENV")
	if env == "" {
		env = v.GetString("NODE_ENV")
	}
	if env == "" {
		env = EnvDevelopment
	}

	cfg := &Config{
		Port:           v.GetString("PORT"),
		Env:            env,
		JWTSecret:      v.GetString("JWT_SECRET"),
		PostgresURL:    v.GetString("POSTGRES_CONN_STR"),
		MongoURI:       v.GetString("MONGO_URI"),
		MetricsPort:    v.GetString("METRICS_PORT"),
		AllowedOrigins: parseOrigins(v.GetString("ALLOWED_ORIGINS")),
		LogLevel:       v.GetString("LOG_LEVEL"),
		AutoMigrate:    v.GetBool("AUTO_MIGRATE"),
		MaxOpenConns:   v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:   v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		logrus.Warn("JWT_SECRET not set, using development default")
		cfg.JWTSecret = devJWTSecret
	}

	return cfg
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.PostgresURL == "" {
		return errors.New("POSTGRES_CONN_STR environment variable not set")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable not set")
	}
	if c.IsProduction() && c.JWTSecret == devJWTSecret {
		return errors.New("JWT_SECRET must be changed in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func parseOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		origins := make([]string, len(defaultOrigins))
		copy(origins, defaultOrigins)
		return origins
	}

	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
