// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigFile names the configuration file when --config is not given.
	EnvConfigFile = "X509_BLOB_CONFIG_FILE"
	// EnvDSN overrides the configured database connection string.
	EnvDSN = "X509_BLOB_DSN"
)

const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// DatabaseConfig locates the certificate table.
//
// DSN wins when set. Otherwise a connection string is assembled from the
// individual fields, and only when User is set.
type DatabaseConfig struct {
	DSN      string `json:"dsn" yaml:"dsn"`
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
	Name     string `json:"name" yaml:"name"`
	SSLMode  string `json:"sslmode" yaml:"sslmode"`
	Query    string `json:"query" yaml:"query"`
	Limit    int    `json:"limit" yaml:"limit"`
}

// ConnString returns the connection string to use, or "" when none is configured.
func (d DatabaseConfig) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	if d.User == "" {
		return ""
	}

	host := d.Host
	if d.Port > 0 {
		host = net.JoinHostPort(d.Host, fmt.Sprint(d.Port))
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   host,
		Path:   "/" + d.Name,
	}
	if d.Password == "" {
		u.User = url.User(d.User)
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	return u.String()
}

// Config holds the settings of a classification run.
type Config struct {
	Database DatabaseConfig `json:"database" yaml:"database"`
	// Input is a JSON or YAML record file used instead of the database.
	Input       string `json:"input" yaml:"input"`
	Workers     int    `json:"workers" yaml:"workers"`
	MetricsFile string `json:"metricsFile" yaml:"metricsFile"`
	LogFormat   string `json:"logFormat" yaml:"logFormat"`
}

type configFormat int

const (
	configFormatJSON configFormat = iota
	configFormatYAML
)

// detectConfigFormat determines the configuration format from the file extension.
func detectConfigFormat(configPath string) configFormat {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// loadConfig builds the run configuration.
//
// Configuration Priority:
//  1. Default values are set
//  2. X509_BLOB_CONFIG_FILE is checked if configPath is empty
//  3. Config file values override defaults
//  4. X509_BLOB_DSN overrides the database connection string
//
// Command line flags are applied on top by the caller.
func loadConfig(configPath string) (*Config, error) {
	config := &Config{}

	// Set defaults
	config.Database.Host = "localhost"
	config.Database.Name = "website_data"
	config.Workers = 1
	config.LogFormat = logFormatText

	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := unmarshalConfig(data, config, detectConfigFormat(configPath)); err != nil {
			return nil, err
		}

		if config.Workers <= 0 {
			config.Workers = 1
		}
		if config.LogFormat == "" {
			config.LogFormat = logFormatText
		}
	}

	if dsn := os.Getenv(EnvDSN); dsn != "" {
		config.Database.DSN = dsn
	}

	return config, nil
}

// validate rejects settings no run can use.
func (c *Config) validate() error {
	switch c.LogFormat {
	case logFormatText, logFormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}
	if c.Input == "" && c.Database.ConnString() == "" {
		return ErrNoSource
	}
	return nil
}
