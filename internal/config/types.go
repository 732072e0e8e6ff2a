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

// Package config types define the configuration structures used throughout
// sonar-report. These types represent settings loaded from the YAML
// configuration file and overridden by environment variables.
package config

import "time"

// Config represents the complete configuration for sonar-report.
// It is resolved once at startup and passed explicitly to every component.
type Config struct {
	Server   ServerConfig      `yaml:"server"`
	Projects map[string]string `yaml:"projects"`
}

// ServerConfig contains the connection settings for the SonarQube server.
// URL is stored without a trailing slash.
type ServerConfig struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// Default values
const (
	DefaultTimeout  = 30 * time.Second
	DefaultFileName = "sonar-config.yaml"
)

// Environment variables that override file values.
const (
	EnvURL     = "SONAR_URL"
	EnvToken   = "SONAR_TOKEN"
	EnvTimeout = "SONAR_TIMEOUT"
)

// DefaultConfig returns a Config with an empty server section, the default
// request timeout and no project aliases.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Timeout: DefaultTimeout,
		},
		Projects: make(map[string]string),
	}
}
