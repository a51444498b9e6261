// Package config loads settings for the simplequery command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "SIMPLEQUERY"
	configName = ".simplequery"
)

// Keys understood in config files and, upper-cased with the SIMPLEQUERY_
// prefix, in the environment.
const (
	KeyDatabaseURL = "database_url"
	KeyLogLevel    = "log_level"
)

// Config holds the command configuration.
type Config struct {
	DatabaseURL string
	LogLevel    string
}

// Load reads configuration with this precedence: environment, .env.local,
// .env, config file, defaults. The config file is .simplequery.yaml in the
// working directory, $HOME or $HOME/.config/simplequery. A missing file is
// not an error.
func Load(fs afero.Fs) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
		v.AddConfigPath(filepath.Join(home, ".config", "simplequery"))
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault(KeyDatabaseURL, "sqlite:///:memory:")
	v.SetDefault(KeyLogLevel, "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	dotenv, err := readDotenv(fs, ".env", ".env.local")
	if err != nil {
		return nil, err
	}
	for _, key := range []string{KeyDatabaseURL, KeyLogLevel} {
		envKey := envPrefix + "_" + strings.ToUpper(key)
		if _, set := os.LookupEnv(envKey); set {
			continue
		}
		if val, ok := dotenv[envKey]; ok {
			v.Set(key, val)
		}
	}

	return &Config{
		DatabaseURL: v.GetString(KeyDatabaseURL),
		LogLevel:    v.GetString(KeyLogLevel),
	}, nil
}

// readDotenv parses the given files in order; later files override earlier
// ones. Missing files are skipped.
func readDotenv(fs afero.Fs, names ...string) (map[string]string, error) {
	out := map[string]string{}
	for _, name := range names {
		ok, err := afero.Exists(fs, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		f, err := fs.Open(name)
		if err != nil {
			return nil, err
		}
		vals, err := godotenv.Parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		for k, val := range vals {
			out[k] = val
		}
	}
	return out, nil
}

// Level maps LogLevel to a slog level. Unknown values fall back to info.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
