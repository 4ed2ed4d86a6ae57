// Package config loads runtime settings from defaults, an optional YAML file
// and KZG_ prefixed environment variables, in increasing priority.
package config

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

// Config holds the coordinator settings.
type Config struct {
	Log struct {
		// Level is a zap level name: debug, info, warn or error.
		Level string `koanf:"level"`
		// Encoding selects the zap encoder, console or json.
		Encoding string `koanf:"encoding"`
	} `koanf:"log"`
	Schema struct {
		// Validation toggles JSON schema validation of contribution files.
		Validation bool `koanf:"validation"`
	} `koanf:"schema"`
	// Workers caps the number of OS threads used for point operations;
	// 0 keeps the runtime default.
	Workers int `koanf:"workers"`
}

var defaults = map[string]interface{}{
	"log.level":         "info",
	"log.encoding":      "console",
	"schema.validation": true,
	"workers":           0,
}

// Load builds the configuration. An empty path skips the file layer;
// environment variables like KZG_LOG_LEVEL override everything else.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider("KZG_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "KZG_")), "_", ".")
	}), nil); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
