package core

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jo-hoe/rokkastyle/internal/store"
	"github.com/jo-hoe/rokkastyle/internal/style"
)

type Store struct {
	Type             string `yaml:"type"`
	ConnectionString string `yaml:"connectionString"`
}

type ServiceConfig struct {
	Port   int                `yaml:"port"`
	Store  Store              `yaml:"store"`
	Styles []style.ImageStyle `yaml:"styles"`
}

// LoadConfig loads configuration from the specified YAML file
func LoadConfig(configPath string) (*ServiceConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var config ServiceConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if config.Store.Type == "" {
		config.Store.Type = store.TypeSQLite
	}
	if config.Store.Type == store.TypeSQLite && config.Store.ConnectionString == "" {
		config.Store.ConnectionString = ":memory:"
	}

	if err := validateStyles(config.Styles); err != nil {
		return nil, fmt.Errorf("invalid style configuration: %w", err)
	}

	return &config, nil
}

// validateStyles ensures all styles have a unique, non-empty name. Names are
// compared the way style.Compile names the stack, i.e. trimmed.
func validateStyles(styles []style.ImageStyle) error {
	seenNames := make(map[string]bool)

	for i, s := range styles {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("style at index %d has empty name", i)
		}

		if seenNames[name] {
			return fmt.Errorf("duplicate style name: %s", name)
		}
		seenNames[name] = true

		for j, e := range s.Effects {
			if e.ID == "" {
				return fmt.Errorf("style %s: effect at index %d has empty id", s.Name, j)
			}
		}
	}

	return nil
}
