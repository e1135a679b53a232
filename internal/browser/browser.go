// Package browser implements a bubbletea viewer for a jsonvalue.Value
// tree, used by the CLI's -inspect flag. Rather than the teacher's
// ui/model.go (which revealed a fully pre-rendered, fixed-indent line
// list on a timer), this walks the tree with a cursor: objects and
// arrays start collapsed, enter/space toggles the node under the
// cursor, and up/down/pgup/pgdown move the cursor through whatever is
// currently visible. The viewport only ever shows what the user has
// chosen to expand.
package browser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adijmbt/queryjson/internal/jsonvalue"
)

// node is one entry of the tree: a label, a formatted scalar for
// leaves, and child nodes for Array/Object. expanded tracks whether the
// user has opened this node's children.
type node struct {
	key      string
	leaf     string
	isLeaf   bool
	expanded bool
	children []*node
}

func buildNode(key string, v jsonvalue.Value) *node {
	n := &node{key: key}
	switch v.Kind() {
	case jsonvalue.Object:
		fields, _ := v.AsObject()
		for k, val := range fields {
			n.children = append(n.children, buildNode(k, val))
		}
	case jsonvalue.Array:
		items, _ := v.AsArray()
		for i, val := range items {
			n.children = append(n.children, buildNode("["+strconv.Itoa(i)+"]", val))
		}
	default:
		n.isLeaf = true
		n.leaf = scalarText(v)
	}
	return n
}

func scalarText(v jsonvalue.Value) string {
	switch v.Kind() {
	case jsonvalue.Null:
		return "null"
	case jsonvalue.Bool:
		b, _ := v.AsBool()
		return strconv.FormatBool(b)
	case jsonvalue.Integer:
		i, _ := v.AsInteger()
		return strconv.FormatInt(i, 10)
	case jsonvalue.Double:
		d, _ := v.AsDouble()
		return strconv.FormatFloat(d, 'g', -1, 64)
	case jsonvalue.String:
		s, _ := v.AsString()
		return strconv.Quote(s)
	default:
		return ""
	}
}

// row is one visible line: the node it refers to and its nesting depth.
type row struct {
	n     *node
	depth int
}

// visibleRows flattens root into the rows currently on screen: a node's
// children only appear when the node itself is expanded.
func visibleRows(root *node) []row {
	var rows []row
	var walk func(n *node, depth int)
	walk = func(n *node, depth int) {
		rows = append(rows, row{n: n, depth: depth})
		if n.isLeaf || !n.expanded {
			return
		}
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return rows
}

type model struct {
	root     *node
	cursor   int
	viewport viewport.Model
	ready    bool
	style    lipgloss.Style
}

// NewModel builds a bubbletea model over value, rooted at a synthetic
// "root" label that starts expanded.
func NewModel(value jsonvalue.Value) tea.Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7D56F4")).
		Padding(1, 2)

	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color("#BD93F9")).
		Margin(1, 2)

	root := buildNode("root", value)
	root.expanded = true

	return &model{
		root:     root,
		viewport: vp,
		style:    containerStyle,
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		rows := visibleRows(m.root)

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(rows)-1 {
				m.cursor++
			}
		case "pgup":
			m.cursor -= m.viewport.Height
		case "pgdown":
			m.cursor += m.viewport.Height
		case "enter", " ":
			if cur := rows[m.cursor].n; !cur.isLeaf {
				cur.expanded = !cur.expanded
			}
		case "right", "l":
			if cur := rows[m.cursor].n; !cur.isLeaf && !cur.expanded {
				cur.expanded = true
			}
		case "left", "h":
			if cur := rows[m.cursor].n; !cur.isLeaf && cur.expanded {
				cur.expanded = false
			}
		}

		if m.cursor < 0 {
			m.cursor = 0
		}
		if max := len(visibleRows(m.root)) - 1; m.cursor > max {
			m.cursor = max
		}

	case tea.WindowSizeMsg:
		width := msg.Width - 6
		height := msg.Height - 6

		style := m.viewport.Style
		m.viewport = viewport.New(width, height)
		m.viewport.Style = style
		m.ready = true
	}
	return m, nil
}

func (m *model) View() string {
	if !m.ready {
		return ""
	}

	rows := visibleRows(m.root)

	cursorStyle := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#282A36")).
		Background(lipgloss.Color("#8BE9FD"))
	lineStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD"))

	var sb strings.Builder
	for i, r := range rows {
		marker := "  "
		if !r.n.isLeaf {
			if r.n.expanded {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}

		line := strings.Repeat("  ", r.depth) + marker + r.n.key
		if r.n.isLeaf {
			line += ": " + r.n.leaf
		}

		if i == m.cursor {
			sb.WriteString(cursorStyle.Render(line))
		} else {
			sb.WriteString(lineStyle.Render(line))
		}
		sb.WriteByte('\n')
	}
	m.viewport.SetContent(sb.String())
	m.scrollToCursor()

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#555555")).
		Padding(0, 1).
		Render(" queryjson browser ")

	status := lipgloss.NewStyle().
		Padding(0, 1).
		Render(fmt.Sprintf("Row %d/%d  |  enter/space: toggle  |  h/l: collapse/expand  |  q: quit",
			m.cursor+1, len(rows)))

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.viewport.View(),
		status,
	)
	return m.style.Render(view)
}

// scrollToCursor keeps the selected row within the viewport's visible
// window, scrolling the minimum amount necessary.
func (m *model) scrollToCursor() {
	if m.viewport.Height <= 0 {
		return
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}
