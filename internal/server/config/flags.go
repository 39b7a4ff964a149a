package config

import (
	"github.com/spf13/pflag"
)

// Flag names understood by LoadConfig.
const (
	FlagConfigFile = "config"
	FlagEnvFile    = "env-file"
	FlagHTTPAddr   = "http-addr"
	FlagGRPCAddr   = "grpc-addr"
	FlagDSN        = "database-dsn"
	FlagSecretKey  = "secret-key"
	FlagTokenTTL   = "token-ttl"
	FlagLogLevel   = "log-level"
)

// RegisterFlags defines the server flags on fs.
//
// Supported flags (short forms):
//
//	-c string   YAML or JSON config file
//	-a string   HTTP bind address (e.g., ":8000")
//	-g string   gRPC bind address (e.g., ":50051")
//	-d string   database URL
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//
// Only flags set explicitly on the command line override other sources.
func RegisterFlags(fs *pflag.FlagSet) {
	d := &Config{}
	d.LoadDefaults()

	fs.StringP(FlagConfigFile, "c", "", "path to a YAML or JSON config file")
	fs.String(FlagEnvFile, ".env", "dotenv file loaded into the environment if present")
	fs.StringP(FlagHTTPAddr, "a", d.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringP(FlagGRPCAddr, "g", d.EndpointAddrGRPC, "gRPC address and port for the health service")
	fs.StringP(FlagDSN, "d", d.DatabaseDSN, "database URL")
	fs.StringP(FlagSecretKey, "s", d.SecretKey, "secret key")
	fs.IntP(FlagTokenTTL, "t", int(d.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.String(FlagLogLevel, d.LogLevel, "log level (debug, info, warn, error)")
}
