package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ServiceSettings describes one service in services.yaml.
type ServiceSettings struct {
	Enabled     bool   `yaml:"enabled"`
	Port        int    `yaml:"port"`
	Description string `yaml:"description"`
}

// ServicesConfig maps service IDs to their settings.
type ServicesConfig struct {
	Services map[string]*ServiceSettings `yaml:"services"`
}

// IsEnabled reports whether a service is enabled.
func (c *ServicesConfig) IsEnabled(id string) bool {
	settings, ok := c.Services[id]
	return ok && settings.Enabled
}

// Port returns the configured port for a service, or 0 when unknown.
func (c *ServicesConfig) Port(id string) int {
	if settings, ok := c.Services[id]; ok {
		return settings.Port
	}
	return 0
}

// LoadServicesConfig loads the services configuration from config/services.yaml.
func LoadServicesConfig() (*ServicesConfig, error) {
	return LoadServicesConfigFromPath(filepath.Join("config", "services.yaml"))
}

// LoadServicesConfigFromPath loads the services configuration from a specific path.
func LoadServicesConfigFromPath(path string) (*ServicesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read services config: %w", err)
	}

	var cfg ServicesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse services config: %w", err)
	}

	for id, settings := range cfg.Services {
		if settings.Port == 0 {
			return nil, fmt.Errorf("service %s: port is required", id)
		}
	}

	return &cfg, nil
}

// LoadServicesConfigOrDefault loads services config or returns the default
// when the file is absent.
func LoadServicesConfigOrDefault() *ServicesConfig {
	cfg, err := LoadServicesConfig()
	if err != nil {
		return DefaultServicesConfig()
	}
	return cfg
}

// DefaultServicesConfig returns the default configuration with all services
// enabled on their conventional local ports.
func DefaultServicesConfig() *ServicesConfig {
	return &ServicesConfig{
		Services: map[string]*ServiceSettings{
			"auth": {
				Enabled:     true,
				Port:        3001,
				Description: "Registration and login issuing bearer tokens",
			},
			"inventory": {
				Enabled:     true,
				Port:        3002,
				Description: "Per-user grocery inventory with AI enrichment",
			},
			"recipes": {
				Enabled:     true,
				Port:        3003,
				Description: "Recipe generation and food info prediction",
			},
		},
	}
}
