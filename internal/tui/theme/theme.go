// Package theme loads the editor's color palettes.
package theme

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultName is used when no theme is configured or the configured one
// does not exist.
const DefaultName = "mocha"

//go:embed embedded/*.toml
var embeddedThemes embed.FS

var (
	ErrMissingGridColor = errors.New("missing grid color")
	ErrInvalidColor     = errors.New("color must be #rrggbb")
	ErrConflictContrast = errors.New("conflict color must differ from both block colors")
)

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`
	BgHighlight string `toml:"bg_highlight"` // header row
	BgSelection string `toml:"bg_selection"` // cursor
	Fg          string `toml:"fg"`
	FgMuted     string `toml:"fg_muted"` // empty cells, hints
	Accent      string `toml:"accent"`   // title, borders
	Morning     string `toml:"morning"`
	Afternoon   string `toml:"afternoon"`
	Conflict    string `toml:"conflict"` // double-booked sellers
	Warning     string `toml:"warning"`  // carried seller, advisories

	// Modal overrides; empty values fall back to the base colors.
	BaseBg      string `toml:"base_bg"`
	ModalBorder string `toml:"modal_border"`
	TextPrimary string `toml:"text_primary"`
	TextMuted   string `toml:"text_muted"`
	Highlight   string `toml:"highlight"`
}

// Load returns the embedded theme called name. An empty or unknown name
// loads DefaultName.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(name)
	if !IsAvailable(name) {
		name = DefaultName
	}
	data, err := embeddedThemes.ReadFile(path.Join("embedded", name+".toml"))
	if err != nil {
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}
	return decode(name, data)
}

// decode parses a palette and checks the colors the grid cannot do without.
func decode(name string, data []byte) (*Theme, error) {
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	if err := t.validateGrid(); err != nil {
		return nil, fmt.Errorf("theme %q: %w", name, err)
	}
	t.applyDefaults()
	return &t, nil
}

// validateGrid requires the block and conflict colors and keeps conflicts
// distinguishable from either block.
func (t *Theme) validateGrid() error {
	grid := []struct{ key, hex string }{
		{"morning", t.Morning},
		{"afternoon", t.Afternoon},
		{"conflict", t.Conflict},
	}
	for _, c := range grid {
		if c.hex == "" {
			return fmt.Errorf("%w: %s", ErrMissingGridColor, c.key)
		}
		if !isHex(c.hex) {
			return fmt.Errorf("%s %q: %w", c.key, c.hex, ErrInvalidColor)
		}
	}
	conflict := strings.ToLower(t.Conflict)
	if conflict == strings.ToLower(t.Morning) || conflict == strings.ToLower(t.Afternoon) {
		return ErrConflictContrast
	}
	return nil
}

func isHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// ModalPalette provides the modal-specific colors derived from the theme.
type ModalPalette struct {
	BaseBg      string
	ModalBorder string
	TextPrimary string
	TextMuted   string
	Highlight   string
}

// Modal returns the modal colors, falling back to the base colors for
// anything the palette leaves out.
func (t *Theme) Modal() ModalPalette {
	return ModalPalette{
		BaseBg:      coalesce(t.BaseBg, t.BgHighlight, t.Bg),
		ModalBorder: coalesce(t.ModalBorder, t.Accent),
		TextPrimary: coalesce(t.TextPrimary, t.Fg),
		TextMuted:   coalesce(t.TextMuted, t.FgMuted),
		Highlight:   coalesce(t.Highlight, t.BgSelection, t.Accent),
	}
}

func (t *Theme) applyDefaults() {
	m := t.Modal()
	t.BaseBg, t.ModalBorder, t.TextPrimary, t.TextMuted, t.Highlight =
		m.BaseBg, m.ModalBorder, m.TextPrimary, m.TextMuted, m.Highlight
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available lists the embedded themes, DefaultName first.
func Available() []string {
	entries, err := fs.ReadDir(embeddedThemes, "embedded")
	if err != nil {
		return []string{DefaultName}
	}
	names := []string{DefaultName}
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".toml")
		if name != DefaultName {
			names = append(names, name)
		}
	}
	slices.Sort(names[1:])
	return names
}

// IsAvailable reports whether name is an embedded theme, ignoring case.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(name))
}
