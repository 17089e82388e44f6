package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/skillswap/internal/flagx"
	"github.com/dmitrijs2005/skillswap/internal/timex"
)

// JsonConfig is the on-disk shape of the CLI configuration file. Absent or
// zero fields leave the current value untouched.
type JsonConfig struct {
	APIBaseURL          string         `json:"api_url"`
	HealthAddr          string         `json:"health_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	DatabaseFile        string         `json:"database_file"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	LogLevel            string         `json:"log_level"`
}

func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags("SKILLSWAP_CLI_CONFIG")
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.APIBaseURL, jc.APIBaseURL)
	set(&cfg.HealthAddr, jc.HealthAddr)
	set(&cfg.DatabaseFile, jc.DatabaseFile)
	set(&cfg.LogLevel, jc.LogLevel)
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
