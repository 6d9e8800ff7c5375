package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config stores the application configuration.
type Config struct {
	ServerPort   int    `envconfig:"SERVER_PORT" default:"8080"`
	StoreBackend string `envconfig:"STORE_BACKEND" default:"file"` // memory, file or postgres
	DataDir      string `envconfig:"DATA_DIR" default:"./data"`
	DatabaseURL  string `envconfig:"DATABASE_URL"`
	CORSOrigin   string `envconfig:"CORS_ORIGIN" default:"http://localhost:5173"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"LOG_FORMAT" default:"json"`
	MockLatency  bool   `envconfig:"MOCK_LATENCY" default:"true"`
}

// Load reads the configuration from environment variables.
func Load(cfg *Config) error {
	return envconfig.Process("", cfg)
}
