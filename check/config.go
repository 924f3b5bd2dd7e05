package check

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up by the CLI.
const DefaultConfigFile = ".parsco.yaml"

// Config represents the checker configuration: which grammar handles
// which file extensions. It is read from YAML, or from TOML when the file
// name ends in .toml.
type Config struct {
	Name     string              `yaml:"name" toml:"name"`
	Grammars map[string][]string `yaml:"grammars" toml:"grammars"`
	LogLevel string              `yaml:"log_level" toml:"log_level"`
}

// DefaultConfig maps every built-in grammar to its usual extensions.
func DefaultConfig() Config {
	return Config{
		Name: "parsco",
		Grammars: map[string][]string{
			"hello": {".hello"},
			"ipv4":  {".ip", ".ipv4"},
			"json":  {".json"},
		},
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML or TOML configuration. Fields left out of the file
// keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	loaded, err := decodeConfig(f, isTOML(path))
	if err != nil {
		return config, fmt.Errorf("error parsing %s: %w", path, err)
	}

	if loaded.Name != "" {
		config.Name = loaded.Name
	}
	if loaded.Grammars != nil {
		config.Grammars = loaded.Grammars
	}
	if loaded.LogLevel != "" {
		config.LogLevel = loaded.LogLevel
	}
	return config, nil
}

func isTOML(path string) bool {
	return filepath.Ext(path) == ".toml"
}

func decodeConfig(r io.Reader, asTOML bool) (Config, error) {
	var config Config
	if asTOML {
		err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&config)
		return config, err
	}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	err := decoder.Decode(&config)
	return config, err
}

// WriteConfig writes config to path, replacing any existing file. The
// format follows the file extension as in LoadConfig.
func WriteConfig(path string, config Config) error {
	marshal := yaml.Marshal
	if isTOML(path) {
		marshal = toml.Marshal
	}
	d, err := marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}

// GrammarFor returns the grammar configured for path's extension. When
// several grammars claim the extension the alphabetically first wins.
func (c Config) GrammarFor(path string) (string, bool) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", false
	}

	names := make([]string, 0, len(c.Grammars))
	for name := range c.Grammars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, e := range c.Grammars[name] {
			if e == ext {
				return name, true
			}
		}
	}
	return "", false
}
