package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	ServerPort string `env:"SERVER_PORT" env-default:"8080"`

	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"linguachat"`
	DBPassword string `env:"DB_PASSWORD" env-default:"linguachat_dev_password"`
	DBName     string `env:"DB_NAME" env-default:"linguachat"`

	JWTSecret string `env:"JWT_SECRET" env-default:"dev-secret-change-me"`

	AnthropicAPIKey string        `env:"ANTHROPIC_API_KEY"`
	TranslateModel  string        `env:"TRANSLATE_MODEL" env-default:"claude-3-5-haiku-latest"`
	// TranslateTimeout bounds a single translation call; the send path
	// degrades to an untranslated message when it elapses.
	TranslateTimeout time.Duration `env:"TRANSLATE_TIMEOUT" env-default:"10s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
