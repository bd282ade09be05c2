package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultJWTSecret = "local-dev-jwt-secret-key-123"

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	Agent         AgentConfig   `yaml:"agent"`
}

// AgentConfig holds the cadences of the per-user background workers. The
// urgent interval is reserved for a future escalation policy and is not used
// by the current worker loop.
type AgentConfig struct {
	CheckInterval       time.Duration `yaml:"check_interval"`
	UrgentCheckInterval time.Duration `yaml:"urgent_check_interval"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("CLH_ADDR", ":8080"),
		JWTSecret:     getEnv("CLH_JWT_SECRET", defaultJWTSecret),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("CLH_DATABASE_PATH", "platform.db"),
		TokenDuration: 168 * time.Hour,
		Agent: AgentConfig{
			CheckInterval:       time.Hour,
			UrgentCheckInterval: 15 * time.Minute,
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that would be unsafe or nonsensical to boot
// with. The default JWT secret is only tolerated in development.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be positive")
	}
	if c.Agent.CheckInterval <= 0 || c.Agent.UrgentCheckInterval <= 0 {
		return fmt.Errorf("agent intervals must be positive")
	}
	if c.JWTSecret == defaultJWTSecret && getEnv("CLH_ENV", "development") != "development" {
		return fmt.Errorf("jwt_secret must be set outside development")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
