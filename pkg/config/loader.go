package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load populates cfg from environment variables using `env` struct tags:
//
//	type Config struct {
//	    HTTPPort int      `env:"SEARCH_HTTP_PORT" envDefault:"8010"`
//	    Brokers  []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
