package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/io"
	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// Outline styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorText)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorMuted)
)

// exploreCommand creates the interactive explorer.
func (c *CLI) exploreCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "explore [map.json|map.yaml]",
		Short: "Browse a mind map and toggle collapsed branches",
		Long: `Browse a mind map in the terminal.

The outline lists every visible topic in layout order with its computed box.
Enter collapses or expands the selected branch and lays the map out again;
m cycles the layout mode. On exit the collapsed ids are printed in the form
accepted by --collapse.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), args[0], &flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) runExplore(ctx context.Context, input string, flags *layoutFlags) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	opts, err := flags.apply(cfg.Layout)
	if err != nil {
		return err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	data, err := io.ReadFile(input)
	if err != nil {
		return err
	}
	m, err := pipeline.NewMeasurer(opts.Measurer)
	if err != nil {
		return err
	}

	engine := mindmap.New(m, mindmap.WithOptions(opts.Layout), mindmap.WithLogger(c.Logger))
	if err := engine.Load(data); err != nil {
		return err
	}
	engine.SetCollapsed(opts.Collapsed)

	model, err := newExploreModel(engine, input)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("explorer: %w", err)
	}

	if em, ok := final.(exploreModel); ok {
		if ids := em.engine.Collapse().IDs(); len(ids) > 0 {
			printNextStep("Render this view", fmt.Sprintf("mindmap render %s --mode %s --collapse %s", input, em.layout.Mode, joinIDs(ids)))
		}
	}
	return nil
}

// =============================================================================
// exploreModel - Interactive outline
// =============================================================================

// exploreModel is the bubbletea model of the explorer. Every collapse
// toggle or mode change runs a fresh layout pass on the engine.
type exploreModel struct {
	engine *mindmap.Engine
	layout *mindmap.Layout
	title  string
	cursor int
	offset int
	height int
	err    error
}

func newExploreModel(e *mindmap.Engine, title string) (exploreModel, error) {
	l, err := e.Layout()
	if err != nil {
		return exploreModel{}, err
	}
	return exploreModel{engine: e, layout: l, title: title, height: 20}, nil
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.layout.Nodes)-1 {
				m.cursor++
			}
		case "enter", " ":
			n := m.layout.Nodes[m.cursor]
			if n.HasChildren {
				m.engine.Toggle(n.ID)
				m = m.relayout(n.ID)
			}
		case "m":
			opts := m.engine.Options()
			i := slices.Index(tree.Modes, opts.Mode)
			opts.Mode = tree.Modes[(i+1)%len(tree.Modes)]
			m.engine.SetOptions(opts)
			m = m.relayout(m.layout.Nodes[m.cursor].ID)
		case "c":
			m.engine.Collapse().Clear()
			m = m.relayout(m.layout.Nodes[m.cursor].ID)
		}
		m.scroll()
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
		m.scroll()
	}
	return m, nil
}

// relayout runs a layout pass and keeps the cursor on node id.
func (m exploreModel) relayout(id int) exploreModel {
	l, err := m.engine.Layout()
	if err != nil {
		m.err = err
		return m
	}
	m.err = nil
	m.layout = l
	m.cursor = 0
	for i := range l.Nodes {
		if l.Nodes[i].ID == id {
			m.cursor = i
			break
		}
	}
	return m
}

func (m *exploreModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("mode %s · %d nodes · %d collapsed",
		m.layout.Mode, len(m.layout.Nodes), m.engine.Collapse().Len())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ collapse/expand  m mode  c expand all  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.layout.Nodes))
	for i := m.offset; i < end; i++ {
		n := &m.layout.Nodes[i]
		line := outlineLine(n)
		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		case n.Collapsed:
			b.WriteString(listDimStyle.Render("  " + line))
		default:
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(m.layout.Nodes) > 0 {
		n := &m.layout.Nodes[m.cursor]
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  #%d  x=%g y=%g  %gx%g  %d line(s)",
			n.ID, n.X, n.Y, n.Width, n.Height, len(n.Lines))))
		if n.HasLink {
			b.WriteString("  " + StyleLink.Render(n.URL))
		}
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(StyleWarning.Render("  " + m.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

// outlineLine renders one node as an indented outline entry.
func outlineLine(n *mindmap.Node) string {
	marker := "·"
	switch {
	case n.Collapsed:
		marker = "+"
	case n.HasChildren:
		marker = "-"
	}
	line := strings.Repeat("  ", n.Depth) + marker + " " + n.Topic
	if n.Direction != tree.DirectionNone {
		line += "  " + string(n.Direction)
	}
	return line
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
