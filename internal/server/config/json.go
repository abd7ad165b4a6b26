package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mkragh/cereald/internal/flagx"
	"github.com/mkragh/cereald/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "168h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	JWTIssuer             string         `json:"jwt_issuer"`
	JWTAudience           string         `json:"jwt_audience"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	SeedDataFile          string         `json:"seed_data_file"`
	SeedAdminPassword     string         `json:"seed_admin_password"`
	SeedUserPassword      string         `json:"seed_user_password"`
	DBConnectAttempts     int            `json:"db_connect_attempts"`
	DBConnectDelay        timex.Duration `json:"db_connect_delay"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path is taken from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.JWTIssuer = c.JWTIssuer
	config.JWTAudience = c.JWTAudience
	config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	config.SeedDataFile = c.SeedDataFile
	config.SeedAdminPassword = c.SeedAdminPassword
	config.SeedUserPassword = c.SeedUserPassword
	config.DBConnectAttempts = c.DBConnectAttempts
	config.DBConnectDelay = time.Duration(c.DBConnectDelay.Duration)
}
