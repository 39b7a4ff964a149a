package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	keyConfigFile          = "config"
	keyEnvFile             = "env_file"
	keyAppName             = "app_name"
	keyEnvironment         = "environment"
	keyHTTPAddr            = "http_addr"
	keyGRPCAddr            = "grpc_addr"
	keyAPIPrefix           = "api_prefix"
	keyDatabaseDSN         = "database_dsn"
	keySecretKey           = "secret_key"
	keyAuthAlgorithm       = "auth_algorithm"
	keyTokenTTLMinutes     = "token_ttl_minutes"
	keyAllowOrigins        = "allow_origins"
	keyCORSAllowAll        = "cors_allow_all"
	keyLogLevel            = "log_level"
	keyAutoMigrate         = "auto_migrate"
	keyHealthCheckInterval = "health_check_interval"
)

// envNames lists the environment variables read for each key, first match wins.
var envNames = map[string][]string{
	keyConfigFile:          {"CONFIG"},
	keyAppName:             {"APP_NAME"},
	keyEnvironment:         {"ENVIRONMENT"},
	keyHTTPAddr:            {"HTTP_ADDR"},
	keyGRPCAddr:            {"GRPC_ADDR"},
	keyAPIPrefix:           {"API_PREFIX"},
	keyDatabaseDSN:         {"DATABASE_URL", "DATABASE_DSN"},
	keySecretKey:           {"AUTH_SECRET_KEY"},
	keyAuthAlgorithm:       {"AUTH_ALGORITHM"},
	keyTokenTTLMinutes:     {"AUTH_TOKEN_TTL_MINUTES"},
	keyAllowOrigins:        {"ALLOW_ORIGINS"},
	keyCORSAllowAll:        {"CORS_ALLOW_ALL"},
	keyLogLevel:            {"LOG_LEVEL"},
	keyAutoMigrate:         {"AUTO_MIGRATE"},
	keyHealthCheckInterval: {"HEALTH_CHECK_INTERVAL"},
}

var flagKeys = map[string]string{
	FlagConfigFile: keyConfigFile,
	FlagEnvFile:    keyEnvFile,
	FlagHTTPAddr:   keyHTTPAddr,
	FlagGRPCAddr:   keyGRPCAddr,
	FlagDSN:        keyDatabaseDSN,
	FlagSecretKey:  keySecretKey,
	FlagTokenTTL:   keyTokenTTLMinutes,
	FlagLogLevel:   keyLogLevel,
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file, then the environment (after loading the
// .env file), and finally explicitly set command-line flags. flags may be
// nil.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, names := range envNames {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	envFile := ".env"
	if flags != nil {
		if f := flags.Lookup(FlagEnvFile); f != nil {
			envFile = f.Value.String()
		}
	}
	if err := loadDotEnv(envFile); err != nil {
		return nil, err
	}

	if path := v.GetString(keyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		AppName:                     v.GetString(keyAppName),
		Environment:                 v.GetString(keyEnvironment),
		EndpointAddrHTTP:            v.GetString(keyHTTPAddr),
		EndpointAddrGRPC:            v.GetString(keyGRPCAddr),
		APIPrefix:                   strings.TrimRight(v.GetString(keyAPIPrefix), "/"),
		DatabaseDSN:                 v.GetString(keyDatabaseDSN),
		SecretKey:                   v.GetString(keySecretKey),
		AuthAlgorithm:               v.GetString(keyAuthAlgorithm),
		AccessTokenValidityDuration: time.Duration(v.GetInt(keyTokenTTLMinutes)) * time.Minute,
		CORSAllowOrigins:            originList(v.Get(keyAllowOrigins)),
		CORSAllowAll:                v.GetBool(keyCORSAllowAll),
		LogLevel:                    v.GetString(keyLogLevel),
		AutoMigrate:                 v.GetBool(keyAutoMigrate),
		HealthCheckInterval:         v.GetDuration(keyHealthCheckInterval),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := &Config{}
	d.LoadDefaults()

	v.SetDefault(keyAppName, d.AppName)
	v.SetDefault(keyEnvironment, d.Environment)
	v.SetDefault(keyHTTPAddr, d.EndpointAddrHTTP)
	v.SetDefault(keyGRPCAddr, d.EndpointAddrGRPC)
	v.SetDefault(keyAPIPrefix, d.APIPrefix)
	v.SetDefault(keyDatabaseDSN, d.DatabaseDSN)
	v.SetDefault(keySecretKey, d.SecretKey)
	v.SetDefault(keyAuthAlgorithm, d.AuthAlgorithm)
	v.SetDefault(keyTokenTTLMinutes, int(d.AccessTokenValidityDuration.Minutes()))
	v.SetDefault(keyAllowOrigins, strings.Join(d.CORSAllowOrigins, ","))
	v.SetDefault(keyCORSAllowAll, d.CORSAllowAll)
	v.SetDefault(keyLogLevel, d.LogLevel)
	v.SetDefault(keyAutoMigrate, d.AutoMigrate)
	v.SetDefault(keyHealthCheckInterval, d.HealthCheckInterval)
}

// loadDotEnv copies variables from a dotenv file into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// originList accepts a comma separated string (environment) or a list
// (config file).
func originList(raw any) []string {
	var parts []string
	switch val := raw.(type) {
	case string:
		parts = strings.Split(val, ",")
	case []string:
		parts = val
	case []any:
		for _, p := range val {
			parts = append(parts, fmt.Sprint(p))
		}
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
