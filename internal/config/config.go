package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" env:"SURVEYCRAFT_ADDR" env-default:":8080"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" env:"SURVEYCRAFT_DB_PATH" env-default:"data/surveycraft.db"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"SURVEYCRAFT_JWT_SECRET" env-default:"surveycraft-dev-secret"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"SURVEYCRAFT_TOKEN_TTL" env-default:"720h"`
}

// Load reads the optional YAML file named by CONFIG_PATH, then applies
// environment overrides. With no file set, environment and defaults apply.
func Load() (*Config, error) {
	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env config: %w", err)
	}
	return &cfg, nil
}
