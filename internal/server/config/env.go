package config

import (
	"github.com/dmitrijs2005/skillswap/internal/flagx"
)

// parseEnv loads .env (if present) and applies SKILLSWAP_* variables.
func parseEnv(c *Config) {
	if err := flagx.LoadDotEnv(); err != nil {
		panic(err)
	}

	flagx.EnvString(&c.EndpointAddrHTTP, "SKILLSWAP_HTTP_ADDR")
	flagx.EnvString(&c.EndpointAddrGRPC, "SKILLSWAP_GRPC_ADDR")
	flagx.EnvString(&c.DatabaseDSN, "SKILLSWAP_DATABASE_DSN")
	flagx.EnvString(&c.BasePath, "SKILLSWAP_BASE_PATH")
	flagx.EnvString(&c.LogLevel, "SKILLSWAP_LOG_LEVEL")
	flagx.EnvString(&c.S3RootUser, "SKILLSWAP_S3_ROOT_USER")
	flagx.EnvString(&c.S3RootPassword, "SKILLSWAP_S3_ROOT_PASSWORD")
	flagx.EnvString(&c.S3Bucket, "SKILLSWAP_S3_BUCKET")
	flagx.EnvString(&c.S3Region, "SKILLSWAP_S3_REGION")
	flagx.EnvString(&c.S3BaseEndpoint, "SKILLSWAP_S3_BASE_ENDPOINT")

	origins := ""
	flagx.EnvString(&origins, "SKILLSWAP_CORS_ORIGINS")
	if origins != "" {
		c.CORSOrigins = splitOrigins(origins)
	}
}
