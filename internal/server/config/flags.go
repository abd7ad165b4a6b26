package config

import (
	"flag"
	"os"
	"time"

	"github.com/mkragh/cereald/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-i string   JWT issuer label
//	-u string   JWT audience label
//	-t int      session token validity, hours
//	-f string   seed CSV file path
//	-p string   seeded admin password
//	-n int      database connect attempts at startup
//	-w int      delay between connect attempts, seconds
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers and then converted to
//     time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-i", "-u", "-t", "-f", "-p", "-n", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.JWTIssuer, "i", config.JWTIssuer, "JWT issuer label")
	fs.StringVar(&config.JWTAudience, "u", config.JWTAudience, "JWT audience label")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token_validity_duration (in hours)")

	fs.StringVar(&config.SeedDataFile, "f", config.SeedDataFile, "seed CSV file path")
	fs.StringVar(&config.SeedAdminPassword, "p", config.SeedAdminPassword, "seeded admin password")

	dbConnectAttempts := fs.Int("n", config.DBConnectAttempts, "database connect attempts")
	dbConnectDelay := fs.Int("w", int(config.DBConnectDelay.Seconds()), "delay between connect attempts (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Hour
	config.DBConnectAttempts = *dbConnectAttempts
	config.DBConnectDelay = time.Duration(*dbConnectDelay) * time.Second
}
