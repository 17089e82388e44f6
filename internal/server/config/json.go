package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/skillswap/internal/flagx"
)

// JsonConfig is the on-disk shape of the configuration file. Absent or empty
// fields leave the current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP string   `json:"endpoint_addr_http"`
	EndpointAddrGRPC string   `json:"endpoint_addr_grpc"`
	DatabaseDSN      string   `json:"database_dsn"`
	BasePath         string   `json:"base_path"`
	CORSOrigins      []string `json:"cors_origins"`
	LogLevel         string   `json:"log_level"`
	S3RootUser       string   `json:"s3_root_user"`
	S3RootPassword   string   `json:"s3_root_password"`
	S3Bucket         string   `json:"s3_bucket"`
	S3Region         string   `json:"s3_region"`
	S3BaseEndpoint   string   `json:"s3_base_endpoint"`
}

// parseJson overlays values from the file named by -c/-config or
// SKILLSWAP_CONFIG. It panics on an unreadable or malformed file.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags("SKILLSWAP_CONFIG")
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	set(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.BasePath, c.BasePath)
	set(&config.LogLevel, c.LogLevel)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if len(c.CORSOrigins) > 0 {
		config.CORSOrigins = c.CORSOrigins
	}
}
