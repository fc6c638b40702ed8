package config

import (
	"os"
	"time"
)

// parseEnv overlays Config values from environment variables. Variables are
// typically provided through a .env file loaded by the entrypoint.
//
// Recognized variables:
//
//	ADDRESS           HTTP bind address
//	DATABASE_DSN      PostgreSQL DSN
//	SECRET_KEY        session cookie HMAC secret
//	SESSION_VALIDITY  session lifetime as a Go duration string ("24h")
//	ARTIFACT_DIR      local artifact directory
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
func parseEnv(config *Config) {
	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("SESSION_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.SessionValidityDuration = d
		}
	}
	if v := os.Getenv("ARTIFACT_DIR"); v != "" {
		config.ArtifactDir = v
	}
	if v := os.Getenv("S3_ROOT_USER"); v != "" {
		config.S3RootUser = v
	}
	if v := os.Getenv("S3_ROOT_PASSWORD"); v != "" {
		config.S3RootPassword = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		config.S3Bucket = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		config.S3Region = v
	}
	if v := os.Getenv("S3_BASE_ENDPOINT"); v != "" {
		config.S3BaseEndpoint = v
	}
}
