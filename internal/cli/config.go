package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// ColorMode controls when styled output is used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // color when stdout is a terminal
	ColorAlways                  // always use color
	ColorNever                   // never use color
)

// ParseColorMode converts a --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Config holds all configuration for a single xilprintf run.
type Config struct {
	Format   string
	Args     []string
	Newline  bool
	Prefix   string
	Visible  bool
	Board    bool
	Color    ColorMode
	LogLevel log.Level
}

// Validate checks that the config is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.Color < ColorAuto || c.Color > ColorNever {
		return fmt.Errorf("invalid color mode: %d", c.Color)
	}
	return nil
}
