// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigEnv names the environment variable holding the configuration file path.
const ConfigEnv = "TLS_TRUST_VERIFIER_CONFIG"

// RootsEnv names the environment variable that overrides the trust bundle path.
const RootsEnv = "TLS_TRUST_VERIFIER_ROOTS"

const defaultTimeoutSeconds = 10

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config holds the verifier defaults shared by every subcommand.
//
// Values are taken from the defaults, then from the configuration file,
// then from the environment. Command-line flags override all of them.
type Config struct {
	// Roots: Path of the trust bundle (PEM, DER or PKCS#7)
	Roots string `json:"roots" yaml:"roots"`
	// LogList: Path of a Certificate Transparency log list (v3 JSON schema)
	LogList string `json:"logList,omitempty" yaml:"logList,omitempty"`
	// Timeout: Dial and handshake timeout in seconds for --connect
	Timeout int `json:"timeoutSeconds" yaml:"timeoutSeconds"`

	// Output: Reporting options
	Output struct {
		// JSON: Emit JSON reports and JSON log lines
		JSON bool `json:"json" yaml:"json"`
		// Verbose: Emit debug log lines
		Verbose bool `json:"verbose" yaml:"verbose"`
	} `json:"output" yaml:"output"`

	// ClientAuth: Client authentication defaults
	ClientAuth struct {
		// Policy: One of require, optional, none or deny
		Policy string `json:"policy" yaml:"policy"`
	} `json:"clientAuth" yaml:"clientAuth"`
}

// detectConfigFormat determines the configuration file format based on file extension.
// Extension matching is case-insensitive; anything other than .yaml or .yml is JSON.
func detectConfigFormat(configPath string) configFormat {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
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

// loadConfig loads the configuration from a JSON or YAML file or applies defaults.
//
// Parameters:
//   - configPath: Path to the configuration file (optional, can be empty)
//
// Returns:
//   - *Config: Loaded configuration with defaults applied
//   - error: Error if the file cannot be read or parsed
//
// Configuration Priority:
//  1. Default values are set
//  2. TLS_TRUST_VERIFIER_CONFIG is checked if configPath is empty
//  3. Config file values override defaults
//  4. TLS_TRUST_VERIFIER_ROOTS overrides the trust bundle path
func loadConfig(configPath string) (*Config, error) {
	config := &Config{}
	config.Timeout = defaultTimeoutSeconds
	config.ClientAuth.Policy = policyRequire

	if configPath == "" {
		configPath = os.Getenv(ConfigEnv)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := unmarshalConfig(data, config, detectConfigFormat(configPath)); err != nil {
			return nil, err
		}

		if config.Timeout <= 0 {
			config.Timeout = defaultTimeoutSeconds
		}
		if config.ClientAuth.Policy == "" {
			config.ClientAuth.Policy = policyRequire
		}
	}

	if roots := os.Getenv(RootsEnv); roots != "" {
		config.Roots = roots
	}

	return config, nil
}
