// Package config assembles generator options from a TOML file, an optional
// .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/panyam/stanpyro/codegen"
	"github.com/panyam/stanpyro/core"
)

const (
	IndentEnvVar      = "STANPYRO_INDENT"
	LineMarkersEnvVar = "STANPYRO_LINE_MARKERS"
)

// Config is the resolved configuration for one run.
type Config struct {
	Options  codegen.Options
	LogLevel core.LogLevel
}

// fileConfig mirrors the TOML layout:
//
//	log_level = "debug"
//
//	[codegen]
//	indent_unit = "  "
//	emit_line_markers = true
//
//	[codegen.helpers]
//	assign = "_pyro_assign"
type fileConfig struct {
	LogLevel string          `toml:"log_level"`
	Codegen  codegen.Options `toml:"codegen"`
}

func Default() *Config {
	return &Config{Options: codegen.DefaultOptions(), LogLevel: core.GetLogLevel()}
}

// Load reads path (skipped when empty) and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.Options = cfg.Options.WithDefaults()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%s: unknown config keys %v", path, undecoded)
	}
	c.Options = fc.Codegen
	if fc.LogLevel != "" {
		if c.LogLevel, err = core.ParseLogLevel(fc.LogLevel); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(IndentEnvVar); v != "" {
		unit, err := parseIndent(v)
		if err != nil {
			return fmt.Errorf("%s: %w", IndentEnvVar, err)
		}
		c.Options.IndentUnit = unit
	}
	if v := os.Getenv(LineMarkersEnvVar); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", LineMarkersEnvVar, err)
		}
		c.Options.EmitLineMarkers = on
	}
	if v := os.Getenv(core.LogLevelEnvVar); v != "" {
		level, err := core.ParseLogLevel(v)
		if err != nil {
			return fmt.Errorf("%s: %w", core.LogLevelEnvVar, err)
		}
		c.LogLevel = level
	}
	return nil
}

// parseIndent accepts a space count or "tab".
func parseIndent(v string) (string, error) {
	if strings.EqualFold(v, "tab") {
		return "\t", nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("indent must be a positive number of spaces or \"tab\", got %q", v)
	}
	return strings.Repeat(" ", n), nil
}

// LoadEnvFiles loads the given dotenv files into the environment. Missing
// files are skipped; variables already set are not overridden.
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
		core.Debug("loaded env file %s", f)
	}
	return nil
}
