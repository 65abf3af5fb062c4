package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/modviz/modviz/pkg/depgraph"
)

func browserModel(t *testing.T) NodeListModel {
	t.Helper()
	g := depgraph.BuildLines([]string{
		"github.com/acme/app@v1.0.0 github.com/acme/lib@v0.2.0",
		"github.com/acme/lib@v0.2.0 github.com/other/util@v3.1.0",
	})
	return NewNodeListModel(g, "github.com/")
}

func TestNewNodeListModel(t *testing.T) {
	m := browserModel(t)

	if len(m.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3", len(m.Rows))
	}
	if m.Rows[0].Label != "acme/app" {
		t.Errorf("Rows[0].Label = %q, want %q", m.Rows[0].Label, "acme/app")
	}
	if m.Rows[0].Depth != 0 || m.Rows[1].Depth != 1 || m.Rows[2].Depth != 2 {
		t.Errorf("depths = %d, %d, %d, want 0, 1, 2", m.Rows[0].Depth, m.Rows[1].Depth, m.Rows[2].Depth)
	}
	if m.Rows[1].Parents != 1 || m.Rows[1].Children != 1 {
		t.Errorf("middle node degrees = %d in / %d out, want 1 / 1", m.Rows[1].Parents, m.Rows[1].Children)
	}
}

func TestNodeListModelNavigation(t *testing.T) {
	m := browserModel(t)

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	up := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}

	next, _ := m.Update(down)
	m = next.(NodeListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d after down, want 1", m.Cursor)
	}

	next, _ = m.Update(up)
	m = next.(NodeListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after up, want 0", m.Cursor)
	}

	// Cannot move above the first row.
	next, _ = m.Update(up)
	m = next.(NodeListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, should stay at 0", m.Cursor)
	}
}

func TestNodeListModelQuit(t *testing.T) {
	m := browserModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}

func TestNodeListModelView(t *testing.T) {
	m := browserModel(t)

	view := m.View()
	if !strings.Contains(view, "acme/app") {
		t.Errorf("view missing first node label:\n%s", view)
	}
	if !strings.Contains(view, "github.com/acme/app@v1.0.0") {
		t.Errorf("view missing raw id of the selected node:\n%s", view)
	}
}

func TestNodeListModelScrolling(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "github.com/a/root github.com/a/dep" + string(rune('a'+i))
	}
	g := depgraph.BuildLines(lines)
	m := NewNodeListModel(g, "github.com/")
	m.Height = 5

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	for i := 0; i < 10; i++ {
		next, _ := m.Update(down)
		m = next.(NodeListModel)
	}

	if m.Cursor != 10 {
		t.Fatalf("Cursor = %d, want 10", m.Cursor)
	}
	if m.Offset != m.Cursor-m.Height+1 {
		t.Errorf("Offset = %d, cursor should stay in the visible window", m.Offset)
	}
}
