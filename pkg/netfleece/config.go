package netfleece

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the CLI and capture-listener configuration file shape.
type Config struct {
	// Resolve selects the default reference resolution mode for decoded
	// output: "none", "inplace", or "expand".
	Resolve string `yaml:"resolve"`

	// Pretty indents JSON output when true.
	Pretty bool `yaml:"pretty"`

	// Listen is the capture listener's bind address (e.g. "127.0.0.1:9982").
	// Empty disables the listener.
	Listen string `yaml:"listen"`

	// ClassAliases maps fully-qualified .NET class names to a short display
	// name, used to shorten verbose generic/assembly-qualified names for
	// readability.
	ClassAliases map[string]string `yaml:"class_aliases"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{Resolve: "expand", Pretty: true}
}

// LoadConfig reads and parses a YAML config file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("netfleece: read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("netfleece: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveModeFromString maps a config/flag string to a ResolveMode.
func ResolveModeFromString(s string) (ResolveMode, error) {
	switch s {
	case "", "none":
		return ResolveNone, nil
	case "inplace":
		return ResolveInPlace, nil
	case "expand":
		return ResolveExpand, nil
	default:
		return ResolveNone, fmt.Errorf("netfleece: unknown resolve mode %q", s)
	}
}
