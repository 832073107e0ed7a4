package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for the TUI and exported images.
type Theme struct {
	Name       string
	SpinUp     lipgloss.Color
	SpinDown   lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	UpRGBA     color.RGBA
	DownRGBA   color.RGBA
	BgRGBA     color.RGBA
}

// Available themes
var (
	ThemeFerrite = Theme{
		Name:       "ferrite",
		SpinUp:     lipgloss.Color("#00ffff"),
		SpinDown:   lipgloss.Color("#ff00ff"),
		Accent:     lipgloss.Color("#ffff00"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		UpRGBA:     color.RGBA{0x00, 0xff, 0xff, 0xff},
		DownRGBA:   color.RGBA{0xff, 0x00, 0xff, 0xff},
		BgRGBA:     color.RGBA{0x0a, 0x0a, 0x0a, 0xff},
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		SpinUp:     lipgloss.Color("#00ff00"),
		SpinDown:   lipgloss.Color("#003300"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		UpRGBA:     color.RGBA{0x00, 0xff, 0x00, 0xff},
		DownRGBA:   color.RGBA{0x00, 0x33, 0x00, 0xff},
		BgRGBA:     color.RGBA{0x00, 0x11, 0x00, 0xff},
	}

	ThemeMono = Theme{
		Name:       "mono",
		SpinUp:     lipgloss.Color("#ffffff"),
		SpinDown:   lipgloss.Color("#222222"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		UpRGBA:     color.RGBA{0xff, 0xff, 0xff, 0xff},
		DownRGBA:   color.RGBA{0x22, 0x22, 0x22, 0xff},
		BgRGBA:     color.RGBA{0x00, 0x00, 0x00, 0xff},
	}

	ThemeThermal = Theme{
		Name:       "thermal",
		SpinUp:     lipgloss.Color("#ff4444"),
		SpinDown:   lipgloss.Color("#2244cc"),
		Accent:     lipgloss.Color("#ffcc00"),
		Background: lipgloss.Color("#16161d"),
		Text:       lipgloss.Color("#f0f0f0"),
		Muted:      lipgloss.Color("#555566"),
		UpRGBA:     color.RGBA{0xff, 0x44, 0x44, 0xff},
		DownRGBA:   color.RGBA{0x22, 0x44, 0xcc, 0xff},
		BgRGBA:     color.RGBA{0x16, 0x16, 0x1d, 0xff},
	}

	// Default theme
	CurrentTheme = ThemeFerrite

	// All available themes
	Themes = []Theme{
		ThemeFerrite,
		ThemeRetroGreen,
		ThemeMono,
		ThemeThermal,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeFerrite
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
