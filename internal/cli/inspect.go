package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/modviz/modviz/pkg/depgraph"
	"github.com/modviz/modviz/pkg/depgraph/transform"
	"github.com/modviz/modviz/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newInspectCmd creates the inspect command, an interactive browser over the
// filtered graph's nodes.
func newInspectCmd(configPath *string) *cobra.Command {
	var opts filterOpts

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse a dependency graph interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), *configPath, args[0], &opts)
		},
	}

	addFilterFlags(cmd, &opts)
	return cmd
}

func runInspect(ctx context.Context, configPath, input string, opts *filterOpts) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}

	c, err := openCache(ctx, cfg.Cache, opts.noCache)
	if err != nil {
		return err
	}
	defer c.Close()

	po := pipelineOptions(ctx, cfg, opts)
	result, err := pipeline.NewRunner(c, nil).Execute(ctx, data, po)
	if err != nil {
		return err
	}

	model := NewNodeListModel(result.Graph, cfg.HostPrefix)
	if len(model.Rows) == 0 {
		printInfo("Graph is empty, nothing to inspect")
		return nil
	}

	_, err = tea.NewProgram(model).Run()
	return err
}

// =============================================================================
// NodeListModel - Interactive node browser
// =============================================================================

// NodeRow is one line of the node browser.
type NodeRow struct {
	ID       string // raw module identifier
	Label    string // simplified display label
	Depth    int    // BFS depth from the roots
	Parents  int
	Children int
}

// NodeListModel is the bubbletea model for browsing graph nodes.
type NodeListModel struct {
	Rows   []NodeRow
	Cursor int
	Height int
	Offset int
}

// NewNodeListModel builds the browser rows from the graph in first-seen
// node order.
func NewNodeListModel(g *depgraph.Graph, hostPrefix string) NodeListModel {
	depths := transform.Depths(g)

	rows := make([]NodeRow, 0, g.NodeCount())
	for _, id := range g.Nodes() {
		rows = append(rows, NodeRow{
			ID:       id,
			Label:    depgraph.Simplify(id, hostPrefix).Display("/"),
			Depth:    depths[id],
			Parents:  g.InDegree(id),
			Children: g.OutDegree(id),
		})
	}

	return NodeListModel{
		Rows:   rows,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Dependency Graph"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		line := fmt.Sprintf("%s%s", cursor, style.Render(r.Label))
		meta := fmt.Sprintf("  depth %d · %d in · %d out", r.Depth, r.Parents, r.Children)
		b.WriteString(line + listDimStyle.Render(meta) + "\n")
	}

	if m.Cursor < len(m.Rows) {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(m.Rows[m.Cursor].ID))
		b.WriteString("\n")
	}

	return b.String()
}
