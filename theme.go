package rowan

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Theme is the color set the renderer consults when drawing widget nodes.
// Plain rect and text nodes carry their own colors and ignore the theme.
type Theme struct {
	ButtonFg      Color `toml:"button_fg"`
	ButtonBg      Color `toml:"button_bg"`
	ButtonFocusFg Color `toml:"button_focus_fg"`
	ButtonFocusBg Color `toml:"button_focus_bg"`

	InputFg      Color `toml:"input_fg"`
	InputBg      Color `toml:"input_bg"`
	InputFocusFg Color `toml:"input_focus_fg"`
	InputFocusBg Color `toml:"input_focus_bg"`

	ListFg         Color `toml:"list_fg"`
	ListBg         Color `toml:"list_bg"`
	ListSelectedFg Color `toml:"list_selected_fg"`
	ListSelectedBg Color `toml:"list_selected_bg"`
}

// DefaultTheme returns the built-in dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		ButtonFg:      Color{220, 220, 220},
		ButtonBg:      Color{60, 60, 70},
		ButtonFocusFg: Color{20, 20, 25},
		ButtonFocusBg: Color{120, 180, 250},

		InputFg:      Color{230, 230, 230},
		InputBg:      Color{40, 40, 48},
		InputFocusFg: Color{255, 255, 255},
		InputFocusBg: Color{55, 55, 70},

		ListFg:         Color{200, 200, 200},
		ListBg:         Color{35, 35, 42},
		ListSelectedFg: Color{15, 15, 20},
		ListSelectedBg: Color{130, 190, 255},
	}
}

// LoadTheme parses a TOML theme document and returns the default theme with
// the document's colors applied on top. Colors are spelled as "#rrggbb"
// strings:
//
//	button_bg       = "#3c3c46"
//	button_focus_bg = "#78b4fa"
//
// Keys absent from the document keep their default values.
func LoadTheme(data []byte) (*Theme, error) {
	t := DefaultTheme()
	if err := toml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("rowan: parse theme: %w", err)
	}
	return t, nil
}
