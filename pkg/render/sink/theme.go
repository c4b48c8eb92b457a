package sink

// Theme is the color scheme of an SVG rendering.
type Theme struct {
	Name       string
	Background string
	Text       string
	Edge       string
	Root       string   // fill of the root box
	Palette    []string // branch colors indexed by ColorIndex
}

// LightTheme is the default theme.
var LightTheme = Theme{
	Name:       "light",
	Background: "#ffffff",
	Text:       "#1f2328",
	Edge:       "#8c959f",
	Root:       "#ddf4ff",
	Palette: []string{
		"#ffd8a8", "#b2f2bb", "#a5d8ff", "#fcc2d7", "#d0bfff",
		"#ffec99", "#99e9f2", "#ffc9c9", "#c0eb75", "#eebefa",
	},
}

// DarkTheme is a dark variant of LightTheme.
var DarkTheme = Theme{
	Name:       "dark",
	Background: "#0d1117",
	Text:       "#e6edf3",
	Edge:       "#6e7681",
	Root:       "#1f6feb",
	Palette: []string{
		"#9a3412", "#166534", "#1e40af", "#9d174d", "#5b21b6",
		"#854d0e", "#155e75", "#991b1b", "#3f6212", "#86198f",
	},
}

// Themes lists the built-in themes by name.
var Themes = map[string]Theme{
	LightTheme.Name: LightTheme,
	DarkTheme.Name:  DarkTheme,
}

// fill returns the box color for a color index.
func (t Theme) fill(colorIndex int) string {
	if colorIndex < 0 || len(t.Palette) == 0 {
		return t.Root
	}
	return t.Palette[colorIndex%len(t.Palette)]
}
