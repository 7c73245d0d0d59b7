package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env             string `env:"ENV" envDefault:"development"`
	Port            string `env:"PORT" envDefault:"8081"`
	MongoUsername   string `env:"MONGO_USERNAME,required"`
	MongoPassword   string `env:"MONGO_PASSWORD,required"`
	MongoCluster    string `env:"MONGO_CLUSTER,required"`
	MongoAppName    string `env:"MONGO_APP_NAME,required"`
	MongoDatabase   string `env:"MONGO_DATABASE" envDefault:"esg_dashboard"`
	JWTSecret       string `env:"JWT_SECRET,required"`
	ReportThreshold int    `env:"REPORT_THRESHOLD" envDefault:"80"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// MongoURI builds the Atlas connection string from the individual credential
// parts.
func (c *Config) MongoURI() string {
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=%s",
		c.MongoUsername, c.MongoPassword, c.MongoCluster, c.MongoAppName)
}

// Load reads .env when present, then parses the environment into a Config.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.ReportThreshold < 0 || cfg.ReportThreshold > 100 {
		return nil, fmt.Errorf("REPORT_THRESHOLD must be between 0 and 100, got %d", cfg.ReportThreshold)
	}

	return cfg, nil
}
