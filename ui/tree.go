package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/montrey/sift/toc"
)

// row is one visible line of the tree.
type row struct {
	node   *toc.ContextNode
	parent int // row index of the parent, -1 for roots
	depth  int
}

// TreeModel shows a rebuilt result tree and lets the user move through it.
type TreeModel struct {
	Roots    []*toc.ContextNode
	Selected int
	Width    int
	Height   int

	// ScrollOffset is the first visible row when the tree is taller than
	// the screen.
	ScrollOffset int

	rows []row
}

// NewTreeModel lays out roots and selects the first matched node.
func NewTreeModel(roots []*toc.ContextNode, width, height int) TreeModel {
	tm := TreeModel{Roots: roots, Width: width, Height: height}
	tm.rows = layout(roots)
	for i, r := range tm.rows {
		if r.node.Matched() {
			tm.Selected = i
			break
		}
	}
	tm.scrollIntoView()
	return tm
}

func layout(roots []*toc.ContextNode) []row {
	var rows []row
	var visit func(nodes []*toc.ContextNode, parent, depth int)
	visit = func(nodes []*toc.ContextNode, parent, depth int) {
		for _, n := range nodes {
			rows = append(rows, row{node: n, parent: parent, depth: depth})
			visit(n.Children, len(rows)-1, depth+1)
		}
	}
	visit(roots, -1, 0)
	return rows
}

// SelectedNode returns the node under the cursor, or nil for an empty tree.
func (m TreeModel) SelectedNode() *toc.ContextNode {
	if m.Selected < 0 || m.Selected >= len(m.rows) {
		return nil
	}
	return m.rows[m.Selected].node
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (TreeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.moveSelection(-1)
		case "down", "j":
			m.moveSelection(1)
		case "right", "l":
			m.enterSection()
		case "left", "h":
			m.leaveSection()
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	}
	m.scrollIntoView()
	return m, nil
}

func (m *TreeModel) moveSelection(delta int) {
	next := m.Selected + delta
	if next >= 0 && next < len(m.rows) {
		m.Selected = next
	}
}

func (m *TreeModel) enterSection() {
	next := m.Selected + 1
	if next < len(m.rows) && m.rows[next].parent == m.Selected {
		m.Selected = next
	}
}

func (m *TreeModel) leaveSection() {
	if m.Selected < len(m.rows) && m.rows[m.Selected].parent >= 0 {
		m.Selected = m.rows[m.Selected].parent
	}
}

func (m *TreeModel) scrollIntoView() {
	if m.Height <= 0 {
		return
	}
	if m.Selected < m.ScrollOffset {
		m.ScrollOffset = m.Selected
	}
	if m.Selected >= m.ScrollOffset+m.Height {
		m.ScrollOffset = m.Selected - m.Height + 1
	}
}

func (m TreeModel) View() string {
	if len(m.rows) == 0 {
		return dimStyle.Render("  no matches")
	}
	end := len(m.rows)
	if m.Height > 0 && m.ScrollOffset+m.Height < end {
		end = m.ScrollOffset + m.Height
	}
	lines := make([]string, 0, end-m.ScrollOffset)
	for i := m.ScrollOffset; i < end; i++ {
		lines = append(lines, m.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

func (m TreeModel) renderRow(i int) string {
	r := m.rows[i]
	cursor := "  "
	if i == m.Selected {
		cursor = selectedStyle.Render("> ")
	}
	line := cursor + strings.Repeat("  ", r.depth) + renderContextNode(r.node, i == m.Selected)
	if m.Width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.Width).Render(line)
	}
	return line
}

func renderContextNode(n *toc.ContextNode, selected bool) string {
	base := dimStyle
	if n.Matched() {
		base = titleStyle
	}
	if selected {
		base = selectedStyle
	}
	for _, s := range n.Highlight {
		if !s.Overflow {
			return Highlight(n.Text, s, base)
		}
	}
	return base.Render(n.Text)
}

// RenderTree draws a forest without a cursor, for non-interactive output.
func RenderTree(roots []*toc.ContextNode) string {
	rows := layout(roots)
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = strings.Repeat("  ", r.depth) + renderContextNode(r.node, false)
	}
	return strings.Join(lines, "\n")
}
