package config

import "time"

// Config holds runtime settings for the SkillSwap CLI.
type Config struct {
	APIBaseURL          string
	HealthAddr          string
	OnlineCheckInterval time.Duration
	DatabaseFile        string
	RequestTimeout      time.Duration
	LogLevel            string
}

func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api"
	c.HealthAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabaseFile = "skillswap.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig applies defaults, environment, JSON and flags in that order.
// Invalid input panics.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
