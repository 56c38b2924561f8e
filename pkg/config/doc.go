// Package config loads application configuration from environment variables
// into tagged structs.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
// LoadEnv reads one or more .env files into the process environment
// (defaulting to ./.env, which may be absent), and Load parses the
// environment into any struct using `env` field tags. Each configuration
// type is parsed once per process and cached; ResetCache exists for tests.
//
// # Usage
//
//	type S3Config struct {
//		Bucket string `env:"UPLOADKIT_S3_BUCKET,required"`
//		Region string `env:"UPLOADKIT_S3_REGION" envDefault:"us-east-1"`
//	}
//
//	var cfg S3Config
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// MustLoad panics on failure, for configuration the application cannot start
// without.
package config
