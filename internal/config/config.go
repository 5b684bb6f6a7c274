// Package config loads pokerhands.hcl.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokerhands/internal/game"
)

// DefaultFile is read when no --config flag is given.
const DefaultFile = "pokerhands.hcl"

// History drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Config is the complete configuration.
type Config struct {
	Server  ServerSettings
	Game    GameSettings
	History HistorySettings
}

type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

type GameSettings struct {
	Seed    int64    `hcl:"seed,optional"`
	Players []string `hcl:"players,optional"`
}

type HistorySettings struct {
	Driver string `hcl:"driver,optional"`
	Path   string `hcl:"path,optional"`
	DSN    string `hcl:"dsn,optional"`
}

// file mirrors the HCL layout; every block is optional.
type file struct {
	Server  *ServerSettings  `hcl:"server,block"`
	Game    *GameSettings    `hcl:"game,block"`
	History *HistorySettings `hcl:"history,block"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Game: GameSettings{
			Players: []string{"alice", "bob", "carol", "dave"},
		},
		History: HistorySettings{
			Driver: DriverMemory,
			Path:   "hands",
		},
	}
}

// Load reads filename, filling anything it leaves out from Default. A missing
// file is not an error.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", filename, diags.Error())
	}

	var raw file
	if diags := gohcl.DecodeBody(f.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %s", filename, diags.Error())
	}

	if s := raw.Server; s != nil {
		if s.Address != "" {
			cfg.Server.Address = s.Address
		}
		if s.Port != 0 {
			cfg.Server.Port = s.Port
		}
		if s.LogLevel != "" {
			cfg.Server.LogLevel = s.LogLevel
		}
	}
	if g := raw.Game; g != nil {
		cfg.Game.Seed = g.Seed
		if g.Players != nil {
			cfg.Game.Players = g.Players
		}
	}
	if h := raw.History; h != nil {
		if h.Driver != "" {
			cfg.History.Driver = h.Driver
		}
		if h.Path != "" {
			cfg.History.Path = h.Path
		}
		cfg.History.DSN = h.DSN
	}
	return cfg, nil
}

// Validate checks values that decoding alone cannot.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.Server.LogLevel)
	}
	if len(c.Game.Players) > game.MaxPlayers {
		return fmt.Errorf("game: %d players configured, at most %d", len(c.Game.Players), game.MaxPlayers)
	}
	for i, name := range c.Game.Players {
		if slices.Contains(c.Game.Players[:i], name) {
			return fmt.Errorf("game: player %q listed twice", name)
		}
	}
	switch c.History.Driver {
	case DriverMemory:
	case DriverFile:
		if c.History.Path == "" {
			return fmt.Errorf("history: file driver needs a path")
		}
	case DriverPostgres:
		if c.History.DSN == "" {
			return fmt.Errorf("history: postgres driver needs a dsn")
		}
	default:
		return fmt.Errorf("history: unknown driver %q", c.History.Driver)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
