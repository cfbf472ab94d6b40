// Package config holds the settings of the spi command line tool. Settings
// are read from a TOML file and can be overridden from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvTrace is the environment variable that switches all tracing on or off.
const EnvTrace = "SPI_TRACE"

// MaxCallDepthLimit is the largest accepted run.max_call_depth. Deeper
// interpreted recursion would exhaust the Go stack first.
const MaxCallDepthLimit = 100000

const (
	FormatText = "text"
	FormatYAML = "yaml"
)

type Config struct {
	Trace TraceConfig `toml:"trace"`
	Run   RunConfig   `toml:"run"`
}

// TraceConfig selects which pipeline stages log what they are doing.
type TraceConfig struct {
	Parser      bool `toml:"parser"`
	Analyzer    bool `toml:"analyzer"`
	Interpreter bool `toml:"interpreter"`
}

type RunConfig struct {
	// Format is the output format of the final variable bindings, "text" or "yaml".
	Format       string `toml:"format"`
	MaxCallDepth int    `toml:"max_call_depth"`
	Color        bool   `toml:"color"`
}

func Default() *Config {
	return &Config{
		Run: RunConfig{
			Format:       FormatText,
			MaxCallDepth: 1000,
			Color:        true,
		},
	}
}

// Load reads the TOML file at path on top of the defaults. Keys that
// don't belong to any setting are an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys in config file %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOptional is like Load, but returns the defaults if path doesn't exist.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) Validate() error {
	switch c.Run.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("run.format must be %q or %q, got %q", FormatText, FormatYAML, c.Run.Format)
	}

	if c.Run.MaxCallDepth < 1 {
		return fmt.Errorf("run.max_call_depth must be at least 1, got %d", c.Run.MaxCallDepth)
	}
	if c.Run.MaxCallDepth > MaxCallDepthLimit {
		return fmt.Errorf("run.max_call_depth must be at most %d, got %d", MaxCallDepthLimit, c.Run.MaxCallDepth)
	}

	return nil
}

// ApplyEnv overrides the trace settings from SPI_TRACE, if it is set.
func (c *Config) ApplyEnv() error {
	v, ok := os.LookupEnv(EnvTrace)
	if !ok || v == "" {
		return nil
	}

	on, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", EnvTrace, err)
	}

	c.Trace.Parser = on
	c.Trace.Analyzer = on
	c.Trace.Interpreter = on

	return nil
}
