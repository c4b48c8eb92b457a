package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// stdout receives all human-facing command output.
var stdout io.Writer = os.Stdout

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorMuted  = lipgloss.Color("240")
	colorText   = lipgloss.Color("255")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleLink    = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorMuted)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleValue       = lipgloss.NewStyle().Foreground(colorText)
	styleCommand     = lipgloss.NewStyle().Foreground(colorLink)
	styleCached      = lipgloss.NewStyle().Foreground(colorOK)
)

// status prints one line prefixed with a colored marker.
func status(marker string, color lipgloss.Color, format string, args ...any) {
	fmt.Fprintln(stdout, lipgloss.NewStyle().Foreground(color).Render(marker)+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status("✓", colorOK, format, args...) }
func printError(format string, args ...any)   { status("✗", colorFail, format, args...) }
func printWarning(format string, args ...any) { status("!", colorWarn, format, args...) }
func printInfo(format string, args ...any)    { status("›", colorMuted, format, args...) }

func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+styleValue.Render(path))
}

// printArtifact prints a written output file with its format and size.
func printArtifact(path string, size int) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+styleValue.Render(path)+" "+
		StyleDim.Render(fmt.Sprintf("(%s, %s)", format, formatSize(size))))
}

// formatSize renders a byte count for humans: 512 B, 12.3 kB, 1.4 MB.
func formatSize(n int) string {
	switch {
	case n < 1000:
		return fmt.Sprintf("%d B", n)
	case n < 1000*1000:
		return fmt.Sprintf("%.1f kB", float64(n)/1000)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1000*1000))
	}
}

// layoutSummary is the one-line description printed after a layout.
type layoutSummary struct {
	mode      tree.Mode
	placed    int
	collapsed int // placed nodes whose children are hidden
	left      int // depth-1 branches on each side (horizontal modes)
	right     int
	width     float64
	height    float64
	cached    bool
}

func summarize(l *mindmap.Layout, cached bool) layoutSummary {
	s := layoutSummary{
		mode:   l.Mode,
		placed: len(l.Nodes),
		width:  l.Bounds.Width,
		height: l.Bounds.Height,
		cached: cached,
	}
	for i := range l.Nodes {
		n := &l.Nodes[i]
		if n.Collapsed {
			s.collapsed++
		}
		if n.Depth == 1 {
			switch n.Direction {
			case tree.DirectionLeft:
				s.left++
			case tree.DirectionRight:
				s.right++
			}
		}
	}
	return s
}

// String renders the summary without styling, e.g.
// "auto · 5 nodes · 1 collapsed · 2 left / 1 right · 440×152".
func (s layoutSummary) String() string {
	parts := []string{string(s.mode), fmt.Sprintf("%d nodes", s.placed)}
	if s.collapsed > 0 {
		parts = append(parts, fmt.Sprintf("%d collapsed", s.collapsed))
	}
	if !s.mode.IsVertical() && s.left+s.right > 0 {
		parts = append(parts, fmt.Sprintf("%d left / %d right", s.left, s.right))
	}
	parts = append(parts, fmt.Sprintf("%g×%g", s.width, s.height))
	return strings.Join(parts, " · ")
}

func printLayoutSummary(s layoutSummary) {
	line := "  " + StyleDim.Render(s.String())
	if s.cached {
		line += StyleDim.Render(" · ") + styleCached.Render("cached")
	}
	fmt.Fprintln(stdout, line)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
