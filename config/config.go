// Package config defines configuration settings for relight and functions
// for loading them from a file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/dpinela/relight/grammar"
	"github.com/dpinela/relight/highlight"
	"github.com/dpinela/relight/internal/color"
	"github.com/pkg/errors"
)

// Config holds the tab settings and the display style for each semantic
// text format.
type Config struct {
	TabWidth  int
	TextStyle struct {
		Normal, VisualWhitespace, Keyword, DataType, Decimal, BaseN, Float,
		Char, String, Comment, Alert, Error, Function, RegionMarker, Others Style
	}
}

// Style describes the appearance of one text format in the configuration
// file. Unset colors use the output device's defaults.
type Style struct {
	Foreground, Background  *color.Color
	Bold, Italic, Underline bool
}

// Load finds and reads the primary configuration file for the current
// user, at relight/config.toml in the appropriate configuration directory.
// It always returns a usable *Config, even if it also returns a non-nil
// error.
func Load() (*Config, error) {
	c := defaults()
	dir, err := os.UserConfigDir()
	if err != nil {
		return c, errors.WithMessage(err, "error loading config file")
	}
	return loadInto(c, filepath.Join(dir, "relight", "config.toml"))
}

// LoadPath reads the configuration file at the given path. Like Load, it
// always returns a usable *Config.
func LoadPath(path string) (*Config, error) { return loadInto(defaults(), path) }

func loadInto(c *Config, path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("error loading config file: %w", err)
	}
	defer f.Close()
	if _, err := toml.NewDecoder(f).Decode(c); err != nil {
		return c, errors.WithMessage(err, "error loading config file")
	}
	if c.TabWidth <= 0 {
		c.TabWidth = 4
	}
	return c, nil
}

func defaults() *Config {
	c := &Config{TabWidth: 4}
	c.TextStyle.Keyword = Style{Bold: true}
	c.TextStyle.DataType = Style{Foreground: &color.Color{R: 0, G: 150, B: 150}}
	c.TextStyle.Decimal = Style{Foreground: &color.Color{R: 0, G: 100, B: 200}}
	c.TextStyle.BaseN = Style{Foreground: &color.Color{R: 0, G: 100, B: 200}}
	c.TextStyle.Float = Style{Foreground: &color.Color{R: 0, G: 100, B: 200}}
	c.TextStyle.Char = Style{Foreground: &color.Color{R: 150, G: 0, B: 150}}
	c.TextStyle.String = Style{Foreground: &color.Color{R: 0, G: 0, B: 200}}
	c.TextStyle.Comment = Style{Foreground: &color.Color{R: 0, G: 200, B: 0}}
	c.TextStyle.Alert = Style{Foreground: &color.Color{R: 230, G: 0, B: 0}, Bold: true}
	c.TextStyle.Error = Style{Foreground: &color.Color{R: 230, G: 0, B: 0}, Underline: true}
	c.TextStyle.Function = Style{Foreground: &color.Color{R: 100, G: 60, B: 200}}
	c.TextStyle.RegionMarker = Style{Foreground: &color.Color{R: 120, G: 120, B: 120}}
	c.TextStyle.Others = Style{Foreground: &color.Color{R: 180, G: 120, B: 0}}
	return c
}

// Configure installs the configured styles and tab settings on a
// highlighter.
func (c *Config) Configure(h *highlight.Highlighter) {
	for f, s := range c.formatStyles() {
		h.ConfigureFormat(f, convert(s))
	}
	h.SetTabSettings(highlight.TabSettings{TabWidth: c.TabWidth})
}

func (c *Config) formatStyles() map[grammar.Format]Style {
	t := &c.TextStyle
	return map[grammar.Format]Style{
		grammar.Normal:           t.Normal,
		grammar.VisualWhitespace: t.VisualWhitespace,
		grammar.Keyword:          t.Keyword,
		grammar.DataType:         t.DataType,
		grammar.Decimal:          t.Decimal,
		grammar.BaseN:            t.BaseN,
		grammar.Float:            t.Float,
		grammar.Char:             t.Char,
		grammar.String:           t.String,
		grammar.Comment:          t.Comment,
		grammar.Alert:            t.Alert,
		grammar.Error:            t.Error,
		grammar.Function:         t.Function,
		grammar.RegionMarker:     t.RegionMarker,
		grammar.Others:           t.Others,
	}
}

func convert(s Style) highlight.Style {
	out := highlight.Style{Bold: s.Bold, Italic: s.Italic, Underline: s.Underline}
	if s.Foreground != nil {
		out.Foreground = highlight.RGB(s.Foreground.R, s.Foreground.G, s.Foreground.B)
	}
	if s.Background != nil {
		out.Background = highlight.RGB(s.Background.R, s.Background.G, s.Background.B)
	}
	return out
}
