package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

// Theme contains all configurable visual styles.
type Theme struct {
	Name string

	// Board colors, keyed by the screen buffer color
	Colors map[core.Color]lipgloss.Style

	// Menu and board list styles
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	ItemNormal   lipgloss.Style
	ItemActive   lipgloss.Style
	ItemDone     lipgloss.Style
	Description  lipgloss.Style
	Help         lipgloss.Style
	Border       lipgloss.Color
	HeaderBg     lipgloss.Color
	SelectedFg   lipgloss.Color
	SelectedBg   lipgloss.Color
	EmptyMessage lipgloss.Style
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// palette builds board colors from ANSI color strings in core.Color order:
// red, green, yellow, blue, magenta, cyan, white, orange, gray, dim.
func palette(red, green, yellow, blue, magenta, cyan, white, orange, gray, dim string) map[core.Color]lipgloss.Style {
	return map[core.Color]lipgloss.Style{
		core.ColorDefault: lipgloss.NewStyle(),
		core.ColorRed:     fg(red),
		core.ColorGreen:   fg(green),
		core.ColorYellow:  fg(yellow).Bold(true),
		core.ColorBlue:    fg(blue),
		core.ColorMagenta: fg(magenta),
		core.ColorCyan:    fg(cyan),
		core.ColorWhite:   fg(white),
		core.ColorOrange:  fg(orange),
		core.ColorGray:    fg(gray),
		core.ColorDim:     fg(dim),
	}
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Name:   "default",
		Colors: palette("1", "2", "3", "4", "5", "6", "7", "208", "245", "238"),

		Title:        fg("229").Bold(true),
		Subtitle:     fg("245"),
		ItemNormal:   fg("252"),
		ItemActive:   fg("226").Bold(true),
		ItemDone:     fg("2"),
		Description:  fg("245"),
		Help:         fg("241"),
		Border:       lipgloss.Color("240"),
		HeaderBg:     lipgloss.Color("236"),
		SelectedFg:   lipgloss.Color("229"),
		SelectedBg:   lipgloss.Color("57"),
		EmptyMessage: fg("241").Italic(true).Padding(2, 4),
	}
}

// NeonTheme returns a neon-style theme.
func NeonTheme() Theme {
	theme := DefaultTheme()
	theme.Name = "neon"
	theme.Colors = palette("199", "118", "227", "33", "171", "87", "255", "214", "244", "237")
	theme.Title = fg("87").Bold(true)
	theme.ItemActive = fg("199").Bold(true)
	theme.ItemDone = fg("118")
	theme.SelectedBg = lipgloss.Color("53")
	return theme
}

// PastelTheme returns a softer pastel theme.
func PastelTheme() Theme {
	theme := DefaultTheme()
	theme.Name = "pastel"
	theme.Colors = palette("218", "157", "229", "153", "183", "123", "255", "223", "250", "240")
	theme.Title = fg("183").Bold(true)
	theme.ItemActive = fg("218").Bold(true)
	theme.ItemDone = fg("157")
	theme.SelectedFg = lipgloss.Color("235")
	theme.SelectedBg = lipgloss.Color("153")
	return theme
}

// MonoTheme returns a grayscale theme.
func MonoTheme() Theme {
	theme := DefaultTheme()
	theme.Name = "mono"
	theme.Colors = palette("255", "250", "255", "245", "240", "235", "255", "250", "243", "238")
	theme.Title = fg("255").Bold(true)
	theme.ItemActive = fg("255").Bold(true).Underline(true)
	theme.ItemDone = fg("250")
	theme.SelectedFg = lipgloss.Color("232")
	theme.SelectedBg = lipgloss.Color("250")
	return theme
}

// ThemeByName returns a theme by name. Unknown names fall back to the
// default theme.
func ThemeByName(name string) (Theme, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return DefaultTheme(), true
	case "neon":
		return NeonTheme(), true
	case "pastel":
		return PastelTheme(), true
	case "mono", "monochrome":
		return MonoTheme(), true
	default:
		return DefaultTheme(), false
	}
}

// WithOverrides returns a copy of t with board colors replaced. Keys are
// color names ("red", "gray", ...); values are lipgloss colors ("1",
// "#ff5f5f"). Unknown names are ignored.
func (t Theme) WithOverrides(colors map[string]string) Theme {
	if len(colors) == 0 {
		return t
	}
	out := make(map[core.Color]lipgloss.Style, len(t.Colors))
	for c, s := range t.Colors {
		out[c] = s
	}
	for name, value := range colors {
		c, ok := core.ParseColor(name)
		if !ok || c == core.ColorDefault {
			continue
		}
		out[c] = fg(value)
	}
	t.Colors = out
	return t
}

// Style returns the board style for a screen color.
func (t Theme) Style(c core.Color) lipgloss.Style {
	if s, ok := t.Colors[c]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
