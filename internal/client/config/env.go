package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/skillswap/internal/flagx"
)

func parseEnv(c *Config) {
	if err := flagx.LoadDotEnv(); err != nil {
		panic(err)
	}

	flagx.EnvString(&c.APIBaseURL, "SKILLSWAP_API_URL")
	flagx.EnvString(&c.HealthAddr, "SKILLSWAP_HEALTH_ADDR")
	flagx.EnvString(&c.DatabaseFile, "SKILLSWAP_DB_FILE")
	flagx.EnvString(&c.LogLevel, "SKILLSWAP_CLI_LOG_LEVEL")
	envDuration(&c.OnlineCheckInterval, "SKILLSWAP_CHECK_INTERVAL")
	envDuration(&c.RequestTimeout, "SKILLSWAP_REQUEST_TIMEOUT")
}

// envDuration sets *dst from a Go duration string such as "5s".
func envDuration(dst *time.Duration, name string) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	*dst = d
}
