// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectConfigFormat(t *testing.T) {
	tests := []struct {
		path string
		want configFormat
	}{
		{"config.json", configFormatJSON},
		{"config.yaml", configFormatYAML},
		{"CONFIG.YML", configFormatYAML},
		{"config", configFormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, detectConfigFormat(tt.path))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
		return path
	}

	jsonPath := write("config.json", `{"roots":"/etc/roots.pem","timeoutSeconds":3,"output":{"json":true},"clientAuth":{"policy":"optional"}}`)
	yamlPath := write("config.yaml", "roots: ./roots.pem\nlogList: ./log_list.json\noutput:\n  verbose: true\ntimeoutSeconds: -1\n")
	badPath := write("bad.json", `{"roots":`)

	tests := []struct {
		name     string
		path     string
		env      map[string]string
		wantErr  bool
		validate func(t *testing.T, c *Config)
	}{
		{
			name: "Defaults",
			validate: func(t *testing.T, c *Config) {
				assert.Empty(t, c.Roots)
				assert.Equal(t, defaultTimeoutSeconds, c.Timeout)
				assert.Equal(t, policyRequire, c.ClientAuth.Policy)
				assert.False(t, c.Output.JSON)
			},
		},
		{
			name: "JSON_File",
			path: jsonPath,
			validate: func(t *testing.T, c *Config) {
				assert.Equal(t, "/etc/roots.pem", c.Roots)
				assert.Equal(t, 3, c.Timeout)
				assert.True(t, c.Output.JSON)
				assert.Equal(t, policyOptional, c.ClientAuth.Policy)
			},
		},
		{
			name: "YAML_File_Invalid_Timeout_Defaulted",
			path: yamlPath,
			validate: func(t *testing.T, c *Config) {
				assert.Equal(t, "./roots.pem", c.Roots)
				assert.Equal(t, "./log_list.json", c.LogList)
				assert.True(t, c.Output.Verbose)
				assert.Equal(t, defaultTimeoutSeconds, c.Timeout)
				assert.Equal(t, policyRequire, c.ClientAuth.Policy)
			},
		},
		{
			name: "Path_From_Env",
			env:  map[string]string{ConfigEnv: jsonPath},
			validate: func(t *testing.T, c *Config) {
				assert.Equal(t, "/etc/roots.pem", c.Roots)
			},
		},
		{
			name: "Roots_Env_Overrides_File",
			path: jsonPath,
			env:  map[string]string{RootsEnv: "/override.pem"},
			validate: func(t *testing.T, c *Config) {
				assert.Equal(t, "/override.pem", c.Roots)
			},
		},
		{name: "Missing_File", path: filepath.Join(dir, "missing.json"), wantErr: true},
		{name: "Malformed_File", path: badPath, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigEnv, "")
			t.Setenv(RootsEnv, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			config, err := loadConfig(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, config)
		})
	}
}
