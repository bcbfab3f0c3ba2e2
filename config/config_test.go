package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dpinela/relight/grammar"
	"github.com/dpinela/relight/highlight"
	"github.com/dpinela/relight/internal/color"
)

const testConfig = `
tabwidth = 2

[textstyle.keyword]
foreground = "#569cd6"
bold = true

[textstyle.comment]
foreground = "#6a9955"
italic = true
`

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(p, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadPath(t *testing.T) {
	c, err := LoadPath(writeConfig(t, testConfig))
	if err != nil {
		t.Fatal(err)
	}
	if c.TabWidth != 2 {
		t.Errorf("TabWidth = %d, want 2", c.TabWidth)
	}
	k := c.TextStyle.Keyword
	if k.Foreground == nil || *k.Foreground != (color.Color{R: 0x56, G: 0x9c, B: 0xd6}) {
		t.Errorf("Keyword.Foreground = %v, want #569cd6", k.Foreground)
	}
	if !k.Bold {
		t.Error("Keyword.Bold not set")
	}
	if cm := c.TextStyle.Comment; !cm.Italic {
		t.Error("Comment.Italic not set")
	}
	// Formats the file doesn't mention keep their defaults.
	if s := c.TextStyle.String; s.Foreground == nil || *s.Foreground != (color.Color{R: 0, G: 0, B: 200}) {
		t.Errorf("String.Foreground = %v, want the default", s.Foreground)
	}
}

func TestLoadPathMissingFileKeepsDefaults(t *testing.T) {
	c, err := LoadPath(filepath.Join(t.TempDir(), "nonexistent.toml"))
	if err == nil {
		t.Error("expected an error for a missing file")
	}
	if c == nil {
		t.Fatal("LoadPath returned a nil config")
	}
	if c.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want the default 4", c.TabWidth)
	}
	if !c.TextStyle.Keyword.Bold {
		t.Error("default Keyword style lost")
	}
}

func TestLoadPathBadColor(t *testing.T) {
	_, err := LoadPath(writeConfig(t, "[textstyle.keyword]\nforeground = \"red\"\n"))
	if err == nil {
		t.Error("expected an error for a non-hex color")
	}
}

func TestConfigure(t *testing.T) {
	c, err := LoadPath(writeConfig(t, testConfig))
	if err != nil {
		t.Fatal(err)
	}
	h := highlight.New(grammar.C())
	c.Configure(h)
	k := h.Format(grammar.Keyword)
	if !k.Bold || k.Foreground != highlight.RGB(0x56, 0x9c, 0xd6) {
		t.Errorf("configured Keyword style = %+v", *k)
	}
	if got := h.TabSettings().TabWidth; got != 2 {
		t.Errorf("tab width = %d, want 2", got)
	}
}
