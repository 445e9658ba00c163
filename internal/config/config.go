package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config es la configuración raíz del servicio.
// Env-first: todo se puede setear por variables de entorno; CONFIG_PATH
// apunta a un yaml opcional para dev local.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Blob       BlobConfig       `yaml:"blob"`
	Classifier ClassifierConfig `yaml:"classifier"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig agrupa los settings del http.Server.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig: si DSN viene vacío, el servicio corre con repos in-memory.
type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"DB_DSN"`
}

// BlobConfig: storage S3-compatible para fotos. Endpoint vacío = blob in-memory.
type BlobConfig struct {
	Endpoint        string `yaml:"endpoint"          env:"BLOB_ENDPOINT"`
	AccessKeyID     string `yaml:"access_key_id"     env:"BLOB_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"BLOB_SECRET_ACCESS_KEY"`
	Bucket          string `yaml:"bucket"            env:"BLOB_BUCKET"            env-default:"pupper-images"`
	UseSSL          bool   `yaml:"use_ssl"           env:"BLOB_USE_SSL"           env-default:"false"`
	PublicBaseURL   string `yaml:"public_base_url"   env:"BLOB_PUBLIC_BASE_URL"`
}

// ClassifierConfig: servicio de detección de labels para fotos subidas.
// BaseURL vacío = clasificación deshabilitada (se acepta todo).
type ClassifierConfig struct {
	BaseURL       string        `yaml:"base_url"       env:"CLASSIFIER_BASE_URL"`
	Timeout       time.Duration `yaml:"timeout"        env:"CLASSIFIER_TIMEOUT"        env-default:"10s"`
	MinConfidence float64       `yaml:"min_confidence" env:"CLASSIFIER_MIN_CONFIDENCE" env-default:"70"`
}

// RateLimitConfig: cuota por IP. Off por default.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"             env:"RATE_LIMIT_ENABLED"  env-default:"false"`
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"      env-default:"20"`
	Burst             int     `yaml:"burst"               env:"RATE_LIMIT_BURST"    env-default:"50"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
	App    string `yaml:"app"    env:"APP_NAME"   env-default:"pupper-api"`
}

// Load arma la config desde CONFIG_PATH (yaml, opcional) + env.
func Load() (Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
