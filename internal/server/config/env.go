package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config values from environment variables, loading a .env
// file first when one is present. A missing .env file is not an error.
//
// Recognized variables:
//
//	AFYALINK_HTTP_ADDR, AFYALINK_DATABASE_DSN, AFYALINK_SECRET_KEY,
//	AFYALINK_CREDENTIAL_VALIDITY (duration), AFYALINK_STORE_TIMEOUT (duration),
//	AFYALINK_READ_RETRIES, AFYALINK_AUTH_MODE, AFYALINK_AUTH_BASE_URL,
//	AFYALINK_AUTH_ANON_KEY, AFYALINK_S3_USER, AFYALINK_S3_PASSWORD,
//	AFYALINK_S3_BUCKET, AFYALINK_S3_REGION, AFYALINK_S3_ENDPOINT,
//	AFYALINK_CORS_ORIGIN
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString := func(key string, target *string) {
		if v, ok := os.LookupEnv(key); ok {
			*target = v
		}
	}
	setDuration := func(key string, target *time.Duration) {
		if v, ok := os.LookupEnv(key); ok {
			if d, err := time.ParseDuration(v); err == nil {
				*target = d
			}
		}
	}

	setString("AFYALINK_HTTP_ADDR", &config.EndpointAddrHTTP)
	setString("AFYALINK_DATABASE_DSN", &config.DatabaseDSN)
	setString("AFYALINK_SECRET_KEY", &config.SecretKey)
	setDuration("AFYALINK_CREDENTIAL_VALIDITY", &config.CredentialValidityDuration)
	setDuration("AFYALINK_STORE_TIMEOUT", &config.StoreTimeout)
	if v, ok := os.LookupEnv("AFYALINK_READ_RETRIES"); ok {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.ReadRetries = n
		}
	}
	setString("AFYALINK_AUTH_MODE", &config.AuthMode)
	setString("AFYALINK_AUTH_BASE_URL", &config.AuthBaseURL)
	setString("AFYALINK_AUTH_ANON_KEY", &config.AuthAnonKey)
	setString("AFYALINK_S3_USER", &config.S3RootUser)
	setString("AFYALINK_S3_PASSWORD", &config.S3RootPassword)
	setString("AFYALINK_S3_BUCKET", &config.S3Bucket)
	setString("AFYALINK_S3_REGION", &config.S3Region)
	setString("AFYALINK_S3_ENDPOINT", &config.S3BaseEndpoint)
	setString("AFYALINK_CORS_ORIGIN", &config.CORSAllowOrigin)
}
