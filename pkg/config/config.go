package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	API     APIConfig
	Catalog CatalogConfig
	Search  SearchConfig
	Redis   RedisConfig
	CORS    CORSConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// APIConfig controls the optional static API-key gate.
type APIConfig struct {
	Key         string
	KeyRequired bool
}

// CatalogConfig points the scraper at the schedule-of-classes service.
type CatalogConfig struct {
	BaseURL      string
	Timeout      time.Duration
	CacheEnabled bool
	CacheTTL     time.Duration
}

// SearchConfig bounds the schedule search.
type SearchConfig struct {
	MaxCourses    int
	MaxExpansions int
	DefaultTop    int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.API = APIConfig{
		Key:         v.GetString("API_KEY"),
		KeyRequired: v.GetBool("API_KEY_REQUIRED"),
	}

	cfg.Catalog = CatalogConfig{
		BaseURL:      v.GetString("CATALOG_BASE_URL"),
		Timeout:      parseDuration(v.GetString("CATALOG_TIMEOUT"), 15*time.Second),
		CacheEnabled: v.GetBool("CATALOG_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("CATALOG_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Search = SearchConfig{
		MaxCourses:    v.GetInt("SEARCH_MAX_COURSES"),
		MaxExpansions: v.GetInt("SEARCH_MAX_EXPANSIONS"),
		DefaultTop:    v.GetInt("SEARCH_DEFAULT_TOP"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("API_KEY", "")
	v.SetDefault("API_KEY_REQUIRED", false)

	v.SetDefault("CATALOG_BASE_URL", "https://app.testudo.umd.edu/soc/search")
	v.SetDefault("CATALOG_TIMEOUT", "15s")
	v.SetDefault("CATALOG_CACHE_ENABLED", false)
	v.SetDefault("CATALOG_CACHE_TTL", "10m")

	v.SetDefault("SEARCH_MAX_COURSES", 10)
	v.SetDefault("SEARCH_MAX_EXPANSIONS", 200000)
	v.SetDefault("SEARCH_DEFAULT_TOP", 1)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_METRICS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
