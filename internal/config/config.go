package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/m-mizutani/goerr/v2"
)

// Config is the application configuration. Precedence: defaults,
// then TOML file, then REPODECK_* environment variables.
type Config struct {
	Token   string `koanf:"token"`
	BaseURL string `koanf:"base_url"`

	Log struct {
		Level  string `koanf:"level"`
		Format string `koanf:"format"`
		Output string `koanf:"output"`
	} `koanf:"log"`
}

// Load reads configuration from configPath, or from the default
// locations when configPath is empty.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	_ = k.Load(confmap.Provider(map[string]interface{}{
		"log.level":  "info",
		"log.format": "text",
	}, "."), nil)

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, goerr.Wrap(err, "failed to load config file", goerr.V("path", configPath))
		}
	} else {
		defaultPaths := []string{"./repodeck.toml", "$HOME/.config/repodeck/repodeck.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	_ = k.Load(env.Provider("REPODECK_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "REPODECK_")), "_", ".", -1)
	}), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal config")
	}

	return &cfg, nil
}
