package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration for a runner variant.
// Search order: customPath -> ~/.arcade/configs/<variant>.yaml -> ./configs/<variant>.yaml -> embedded default.
// Files only need to name the keys they override; everything else keeps the variant default.
func Load(variant, customPath string) (RunnerConfig, error) {
	base, ok := DefaultFor(variant)
	if !ok {
		return RunnerConfig{}, fmt.Errorf("unknown runner variant %q", variant)
	}

	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath, base)
		if err != nil {
			return RunnerConfig{}, err
		}
		return cfg, nil
	}

	filename := variant + ".yaml"

	// Try user config directory, then local configs directory.
	// Unreadable or invalid files here are skipped, not fatal.
	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path, base); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := base
	if err := yaml.Unmarshal(GetDefaultYAML(variant), &cfg); err != nil {
		return base, nil // Fallback to hardcoded if embed fails
	}
	if err := cfg.Validate(); err != nil {
		return base, nil
	}
	return cfg, nil
}

// loadFile decodes a YAML file on top of base and validates the result.
func loadFile(path string, base RunnerConfig) (RunnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunnerConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return RunnerConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders a config as YAML.
func Marshal(cfg RunnerConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
