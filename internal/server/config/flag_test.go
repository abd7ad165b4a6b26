package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseFlags_OverridesDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin",
		"-a", ":9090",
		"-d", "postgres://u:p@localhost:5432/catalog",
		"-s", "flag_secret",
		"-i", "issuer-x",
		"-u", "audience-y",
		"-t", "24",
		"-f", "seed.csv",
		"-n", "3",
		"-w", "1",
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://u:p@localhost:5432/catalog", cfg.DatabaseDSN)
	assert.Equal(t, "flag_secret", cfg.SecretKey)
	assert.Equal(t, "issuer-x", cfg.JWTIssuer)
	assert.Equal(t, "audience-y", cfg.JWTAudience)
	assert.Equal(t, 24*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, "seed.csv", cfg.SeedDataFile)
	assert.Equal(t, 3, cfg.DBConnectAttempts)
	assert.Equal(t, time.Second, cfg.DBConnectDelay)
}

func Test_parseFlags_KeepsDefaultsWhenUnset(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, 5, cfg.DBConnectAttempts)
}
