package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type JWTConfig struct {
	SecretKey      string        `mapstructure:"secretKey"`
	Issuer         string        `mapstructure:"issuer"`
	Audience       string        `mapstructure:"audience"`
	AccessTokenTTL time.Duration `mapstructure:"accessTokenTTL"`
}

type Config struct {
	Mode         string `mapstructure:"mode"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Password string `mapstructure:"password"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort    string        `mapstructure:"HTTPPort"`
		MetricsPort string        `mapstructure:"metricsPort"`
		Timeout     time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	JWT JWTConfig `mapstructure:"jwt"`
}

// InitConfig loads configuration from a config.yml on disk, falling back to the
// embedded copy. Secrets (JWT signing key, database password) are taken from the
// process environment and override anything in the file.
func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}

	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.JWT.SecretKey = secret
	}
	if config.JWT.SecretKey == "" {
		// Without a signing key every issued token would be forgeable.
		return Config{}, errors.New("JWT_SECRET_KEY is not set")
	}
	if password := os.Getenv("POSTGRES_PASSWORD"); password != "" {
		config.Repositories.Postgres.Password = password
	}

	return config, nil
}
