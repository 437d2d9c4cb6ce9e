package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	modeGreeting = "greeting"
	modeCommand  = "command"
	modeResponse = "response"
)

type config struct {
	Mode           string
	MaxLiteralSize uint32
	Debug          bool
}

// fileConfig maps the keys of the TOML configuration file.
type fileConfig struct {
	Mode           string `toml:"mode"`
	MaxLiteralSize uint32 `toml:"max_literal_size"`
	Debug          bool   `toml:"debug"`
}

func defaultConfig() config {
	return config{Mode: modeCommand}
}

// loadConfig reads a TOML file on top of the default configuration.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load imapcodec config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config{}, fmt.Errorf("load imapcodec config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("mode") {
		cfg.Mode = strings.ToLower(strings.TrimSpace(raw.Mode))
	}
	if meta.IsDefined("max_literal_size") {
		cfg.MaxLiteralSize = raw.MaxLiteralSize
	}
	if meta.IsDefined("debug") {
		cfg.Debug = raw.Debug
	}
	return cfg, cfg.validate()
}

func (cfg *config) validate() error {
	switch cfg.Mode {
	case modeGreeting, modeCommand, modeResponse:
		return nil
	default:
		return fmt.Errorf("invalid mode %q: must be %v, %v or %v", cfg.Mode, modeGreeting, modeCommand, modeResponse)
	}
}
