// Package config loads match configuration from HCL files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/liwamdaman/azul/internal/bot"
)

// Human marks a seat played from the terminal rather than by a bot.
const Human = "human"

// Config is a complete match file.
type Config struct {
	Match *MatchSettings `hcl:"match,block"`
	Seats []SeatConfig   `hcl:"seat,block"`
}

// MatchSettings holds batch and engine settings.
type MatchSettings struct {
	Games    int    `hcl:"games,optional"`
	Seed     int64  `hcl:"seed,optional"`
	Workers  int    `hcl:"workers,optional"`
	Timeout  string `hcl:"timeout,optional"`
	Rotate   *bool  `hcl:"rotate,optional"`
	Strict   bool   `hcl:"strict,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// SeatConfig is one player, in seating order.
type SeatConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"`
}

const (
	defaultGames    = 100
	defaultTimeout  = "30s"
	defaultLogLevel = "info"
	defaultStrategy = bot.StrategyGreedy
)

// Default returns the configuration used when no file exists: a greedy bot
// against a strategic one.
func Default() *Config {
	c := &Config{
		Seats: []SeatConfig{
			{Name: "greedy", Strategy: bot.StrategyGreedy},
			{Name: "strategic", Strategy: bot.StrategyStrategic},
		},
	}
	c.applyDefaults()
	return c
}

// Load reads a match file. A missing file yields Default().
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Match == nil {
		c.Match = &MatchSettings{}
	}
	m := c.Match
	if m.Games == 0 {
		m.Games = defaultGames
	}
	if m.Timeout == "" {
		m.Timeout = defaultTimeout
	}
	if m.Rotate == nil {
		rotate := true
		m.Rotate = &rotate
	}
	if m.LogLevel == "" {
		m.LogLevel = defaultLogLevel
	}
	for i := range c.Seats {
		if c.Seats[i].Strategy == "" {
			c.Seats[i].Strategy = defaultStrategy
		}
	}
}

// Validate checks the configuration is playable.
func (c *Config) Validate() error {
	if c.Match.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Match.Games)
	}
	if c.Match.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Match.Workers)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	switch c.Match.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Match.LogLevel)
	}

	if n := len(c.Seats); n < 2 || n > 4 {
		return fmt.Errorf("a match needs 2 to 4 seats, got %d", n)
	}
	seen := make(map[string]bool)
	for _, seat := range c.Seats {
		if seen[seat.Name] {
			return fmt.Errorf("seat %s: duplicate name", seat.Name)
		}
		seen[seat.Name] = true
		if seat.Strategy != Human && !bot.IsKnown(seat.Strategy) {
			return fmt.Errorf("seat %s: invalid strategy %s", seat.Name, seat.Strategy)
		}
	}
	return nil
}

// TimeoutDuration parses the per-game timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Match.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Match.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout cannot be negative: %s", d)
	}
	return d, nil
}

// Names returns the seat names in seating order.
func (c *Config) Names() []string {
	names := make([]string, len(c.Seats))
	for i, s := range c.Seats {
		names[i] = s.Name
	}
	return names
}

// Strategies returns the seat strategies in seating order.
func (c *Config) Strategies() []string {
	strategies := make([]string, len(c.Seats))
	for i, s := range c.Seats {
		strategies[i] = s.Strategy
	}
	return strategies
}

// HasHuman reports whether any seat is played from the terminal.
func (c *Config) HasHuman() bool {
	for _, s := range c.Seats {
		if s.Strategy == Human {
			return true
		}
	}
	return false
}
