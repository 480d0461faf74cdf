package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigFileEnvVar points at an optional YAML file layered between defaults and env.
const ConfigFileEnvVar = "CONFIG_FILE"

// Config holds application configuration.
type Config struct {
	Port            string   `koanf:"port"`
	Env             string   `koanf:"env"`
	CORSAllowOrigin []string `koanf:"-"`
	CORSRaw         string   `koanf:"cors_allow_origins"`

	CatalogSource    string        `koanf:"catalog_source"`
	ObjectStoreType  string        `koanf:"object_store"`
	LocalStoreDir    string        `koanf:"local_store_dir"`
	AWSRegion        string        `koanf:"aws_region"`
	S3Bucket         string        `koanf:"s3_bucket"`
	S3Prefix         string        `koanf:"s3_prefix"`
	DatabaseURL      string        `koanf:"database_url"`
	DBMaxOpenConns   int           `koanf:"db_max_open_conns"`
	DBMaxIdleConns   int           `koanf:"db_max_idle_conns"`
	DBConnLifetime   time.Duration `koanf:"db_conn_max_lifetime"`
	DBConnIdleTime   time.Duration `koanf:"db_conn_max_idle_time"`
	DBPingTimeout    time.Duration `koanf:"db_ping_timeout"`
	CatalogCacheSize int           `koanf:"catalog_cache_size"`
	CatalogCacheTTL  time.Duration `koanf:"catalog_cache_ttl"`

	LLMProvider  string `koanf:"llm_provider"`
	LLMModel     string `koanf:"llm_model"`
	OpenAIAPIKey string `koanf:"openai_api_key"`

	TopN           int     `koanf:"top_n"`
	DiscoveryRatio float64 `koanf:"discovery_ratio"`

	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

func defaults() Config {
	return Config{
		Port:             "8080",
		Env:              "dev",
		CORSRaw:          "http://localhost:5173",
		CatalogSource:    "object",
		ObjectStoreType:  "local",
		LocalStoreDir:    "./data/catalog",
		CatalogCacheSize: 64,
		CatalogCacheTTL:  5 * time.Minute,
		LLMProvider:      "none",
		LLMModel:         "gpt-4o-mini",
		TopN:             5,
		DiscoveryRatio:   0.15,
		RateLimitRPS:     5,
		RateLimitBurst:   20,
		LogLevel:         "info",
		LogFormat:        "json",
	}
}

// Load reads configuration from defaults, an optional YAML file, local .env
// files and the environment, in increasing order of precedence.
func Load() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}
	if path := strings.TrimSpace(os.Getenv(ConfigFileEnvVar)); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	for key, val := range readEnvFiles(".env", "cmd/.env") {
		if err := k.Set(key, val); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}
	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return normalize(cfg)
}

// envKey maps PORT to port, S3_BUCKET to s3_bucket and so on. Unknown
// variables still land in koanf but never reach Config.
func envKey(key string) string {
	return strings.ToLower(key)
}

func normalize(cfg Config) (Config, error) {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.ObjectStoreType = normalizeStoreType(cfg.ObjectStoreType)
	cfg.CatalogSource = normalizeCatalogSource(cfg.CatalogSource)
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	cfg.CORSAllowOrigin = splitAndTrim(cfg.CORSRaw)

	if cfg.TopN < 0 {
		return Config{}, fmt.Errorf("TOP_N must be >= 0, got %d", cfg.TopN)
	}
	if cfg.DiscoveryRatio < 0 || cfg.DiscoveryRatio > 1 {
		return Config{}, fmt.Errorf("DISCOVERY_RATIO must be within [0,1], got %v", cfg.DiscoveryRatio)
	}
	if cfg.CatalogSource == "postgres" && strings.TrimSpace(cfg.DatabaseURL) == "" {
		return Config{}, fmt.Errorf("CATALOG_SOURCE=postgres requires DATABASE_URL")
	}
	if cfg.ObjectStoreType == "s3" && strings.TrimSpace(cfg.S3Bucket) == "" {
		return Config{}, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
	}
	if cfg.CatalogCacheSize < 0 {
		cfg.CatalogCacheSize = 0
	}
	return cfg, nil
}

// LLMEnabled reports whether a remote explanation provider is configured.
func (c Config) LLMEnabled() bool {
	return c.LLMProvider == "openai" && strings.TrimSpace(c.OpenAIAPIKey) != ""
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeCatalogSource(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg", "db":
		return "postgres"
	default:
		return "object"
	}
}
