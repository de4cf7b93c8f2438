package db

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "config/config.yaml"

type DatabaseConfig struct {
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	Username string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME"`
}

type ServerConfig struct {
	Addr     string `yaml:"addr" env:"SERVER_ADDR"`
	CertFile string `yaml:"cert" env:"SERVER_TLS_CERT"`
	KeyFile  string `yaml:"key" env:"SERVER_TLS_KEY"`
}

type AuthConfig struct {
	Enabled  bool          `yaml:"enabled" env:"AUTH_ENABLED"`
	Secret   string        `yaml:"secret" env:"AUTH_SECRET"`
	TokenTTL time.Duration `yaml:"token_ttl" env:"AUTH_TOKEN_TTL"`
}

type LendingConfig struct {
	// 貸出期間（日）。due_date 未指定時に使う
	LoanDays int `yaml:"loan_days" env:"LENDING_LOAN_DAYS"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

type Config struct {
	Version string         `yaml:"version"`
	Mode    string         `yaml:"mode" env:"APP_MODE"`
	Server  ServerConfig   `yaml:"server"`
	DB      DatabaseConfig `yaml:"database"`
	Auth    AuthConfig     `yaml:"auth"`
	Lending LendingConfig  `yaml:"lending"`
	Log     LogConfig      `yaml:"log"`
}

// LoadConfig reads the YAML file at path, then applies .env and environment
// overrides. A missing file is not an error as long as the environment
// supplies what is needed.
func LoadConfig(path string) (*Config, error) {
	cfg := defaults()

	buf, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("設定ファイルのパース失敗: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// 環境変数だけで動かす場合
	default:
		return nil, fmt.Errorf("設定ファイルの読み込み失敗: %w", err)
	}

	// .env は任意
	_ = godotenv.Load()

	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("環境変数の読み込み失敗: %w", err)
	}

	if cfg.Mode != "dev" && cfg.Mode != "release" {
		return nil, fmt.Errorf("unknown mode %q (dev|release)", cfg.Mode)
	}
	if cfg.Auth.Enabled && cfg.Auth.Secret == "" {
		return nil, errors.New("auth.secret is required when auth is enabled")
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Mode:    "dev",
		Server:  ServerConfig{Addr: ":8080"},
		DB:      DatabaseConfig{Host: "127.0.0.1", Port: 3306},
		Auth:    AuthConfig{TokenTTL: 24 * time.Hour},
		Lending: LendingConfig{LoanDays: 14},
		Log:     LogConfig{Level: "info"},
	}
}
