package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/afyalink/afyalink/internal/flagx"
	"github.com/afyalink/afyalink/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. It uses timex.Duration
// for interval fields, which accepts both string values such as "10s" and
// integer nanoseconds. After unmarshalling, its fields are copied into the
// runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP           string         `json:"endpoint_addr_http"`
	DatabaseDSN                string         `json:"database_dsn"`
	SecretKey                  string         `json:"secret_key"`
	CredentialValidityDuration timex.Duration `json:"credential_validity_duration"`
	StoreTimeout               timex.Duration `json:"store_timeout"`
	ReadRetries                uint64         `json:"read_retries"`
	AuthMode                   string         `json:"auth_mode"`
	AuthBaseURL                string         `json:"auth_base_url"`
	AuthAnonKey                string         `json:"auth_anon_key"`
	S3RootUser                 string         `json:"s3_root_user"`
	S3RootPassword             string         `json:"s3_root_password"`
	S3Bucket                   string         `json:"s3_bucket"`
	S3Region                   string         `json:"s3_region"`
	S3BaseEndpoint             string         `json:"s3_base_endpoint"`
	CORSAllowOrigin            string         `json:"cors_allow_origin"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config flags; when
// neither is set, no JSON file is loaded. An unreadable or invalid file
// panics, since the operator explicitly asked for it.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.CredentialValidityDuration = time.Duration(c.CredentialValidityDuration.Duration)
	config.StoreTimeout = time.Duration(c.StoreTimeout.Duration)
	config.ReadRetries = c.ReadRetries
	config.AuthMode = c.AuthMode
	config.AuthBaseURL = c.AuthBaseURL
	config.AuthAnonKey = c.AuthAnonKey
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.CORSAllowOrigin = c.CORSAllowOrigin
}
