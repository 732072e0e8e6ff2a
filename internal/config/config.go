// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the sonar-report configuration file, applies
// environment variable overrides and resolves project aliases.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Environment variables (SONAR_URL, SONAR_TOKEN, SONAR_TIMEOUT)
//  2. Configuration file
//  3. Built-in defaults
//
// A configuration file looks like:
//
//	server:
//	  url: "https://sonar.example.com"
//	  token: "squ_xxxxxxxxxxxx"
//	projects:
//	  my-project: "com.example:my-project"
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	reporterrors "github.com/sirseerhq/sonar-report/internal/errors"
	"gopkg.in/yaml.v3"
)

// Load reads the configuration file at configPath, applies environment
// overrides and validates the result. If configPath is empty, it searches
// standard locations:
//   - sonar-config.yaml (current directory)
//   - sonar-config.yml (current directory)
//   - ~/.sonar-report/config.yaml
//
// Every failure wraps errors.ErrConfig.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	path := configPath
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return nil, fmt.Errorf("no config file found (looked for %s in the current directory and ~/.sonar-report/config.yaml). Run `sonar-report init` to generate one: %w",
				DefaultFileName, reporterrors.ErrConfig)
		}
	}

	if err := loadConfigFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Server.URL = strings.TrimRight(strings.TrimSpace(cfg.Server.URL), "/")
	cfg.Server.Token = strings.TrimSpace(cfg.Server.Token)
	if cfg.Projects == nil {
		cfg.Projects = make(map[string]string)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile returns the first existing file among the standard locations.
func findConfigFile() string {
	candidates := []string{
		DefaultFileName,
		"sonar-config.yml",
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		candidates = append(candidates, filepath.Join(home, ".sonar-report", "config.yaml"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file not found: %s. Run `sonar-report init` to generate a template: %w", path, reporterrors.ErrConfig)
		}
		return fmt.Errorf("failed to read config file %s: %v: %w", path, err, reporterrors.ErrConfig)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %v: %w", path, err, reporterrors.ErrConfig)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("config file %s must be a YAML mapping at the top level: %w", path, reporterrors.ErrConfig)
	}

	if err := doc.Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %v: %w", path, err, reporterrors.ErrConfig)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) error {
	if u := os.Getenv(EnvURL); u != "" {
		cfg.Server.URL = u
	}
	if token := os.Getenv(EnvToken); token != "" {
		cfg.Server.Token = token
	}
	if timeout := os.Getenv(EnvTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("%s=%q is not a valid duration: %w", EnvTimeout, timeout, reporterrors.ErrConfig)
		}
		cfg.Server.Timeout = d
	}
	return nil
}

// Validate checks that the server URL and token are present and usable.
// All problems are reported together so a user can fix the file in one pass.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.URL == "" {
		problems = append(problems, fmt.Sprintf("'server.url' is missing (or set the %s environment variable)", EnvURL))
	} else if u, err := url.Parse(c.Server.URL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		problems = append(problems, fmt.Sprintf("'server.url' must be an absolute http(s) URL, got %q", c.Server.URL))
	}
	if c.Server.Token == "" {
		problems = append(problems, fmt.Sprintf("'server.token' is missing (or set the %s environment variable)", EnvToken))
	}
	if c.Server.Timeout <= 0 {
		problems = append(problems, fmt.Sprintf("'server.timeout' must be positive, got %s", c.Server.Timeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(problems, "; "), reporterrors.ErrConfig)
	}
	return nil
}

// ResolveProject returns the project key for an alias. Input that is not a
// configured alias is returned unchanged so raw project keys work too; the
// server decides whether the key exists.
func (c *Config) ResolveProject(name string) string {
	if key, ok := c.Projects[name]; ok {
		return key
	}
	return name
}
