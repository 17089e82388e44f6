package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/skillswap/internal/flagx"
)

// parseFlags populates Config from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8000")
//	-g string   gRPC health bind address
//	-d string   PostgreSQL DSN
//	-b string   API base path (e.g. "/api")
//	-o string   comma-separated CORS origins
//	-l string   log level (debug, info, warn, error)
//	-s3-user, -s3-password, -s3-bucket, -s3-region, -s3-endpoint
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-b", "-o", "-l",
		"-s3-user", "-s3-password", "-s3-bucket", "-s3-region", "-s3-endpoint"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.BasePath, "b", config.BasePath, "API base path")
	origins := fs.String("o", strings.Join(config.CORSOrigins, ","), "CORS allowed origins, comma-separated")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	fs.StringVar(&config.S3RootUser, "s3-user", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "s3-password", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "s3-bucket", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "s3-region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "s3-endpoint", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CORSOrigins = splitOrigins(*origins)
}
