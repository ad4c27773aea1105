package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	pklbinary "github.com/pkl-community/pklbinary-go"
	"github.com/pkl-community/pklbinary-go/plain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	crumbStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// view opens the interactive browser over a decoded document.
func view(opts options) error {
	if opts.input == "-" {
		return fmt.Errorf("view mode needs an input file (stdin carries the keyboard)")
	}
	p := tea.NewProgram(newViewerModel(opts.input), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type row struct {
	label string
	val   any
}

// crumb is one level of the navigation stack.
type crumb struct {
	label    string
	rows     []row
	selected int
}

type viewerModel struct {
	filename string
	err      error
	stack    []crumb
	vp       viewport.Model
	ready    bool
}

type loadedMsg struct {
	doc any
	err error
}

func newViewerModel(filename string) *viewerModel {
	return &viewerModel{filename: filename}
}

func (m *viewerModel) Init() tea.Cmd {
	return m.load
}

func (m *viewerModel) load() tea.Msg {
	data, err := readInput(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	doc, err := plain.Decode(data)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{doc: doc}
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			m.move(-1)

		case "down", "j":
			m.move(1)

		case "g":
			m.moveTo(0)

		case "G":
			if cur := m.cur(); cur != nil {
				m.moveTo(len(cur.rows) - 1)
			}

		case "enter", "right", "l":
			m.descend()

		case "esc", "backspace", "left", "h":
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
				m.refresh()
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		rows := rowsOf(msg.doc)
		if rows == nil {
			// A scalar document still gets one row to look at.
			rows = []row{{label: "value", val: msg.doc}}
		}
		m.stack = []crumb{{label: "document", rows: rows}}
		m.refresh()

	case tea.WindowSizeMsg:
		chrome := 4 // title, breadcrumbs, blank, help
		if !m.ready {
			m.vp = viewport.New(msg.Width, max(1, msg.Height-chrome))
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = max(1, msg.Height-chrome)
		}
		m.refresh()
	}

	return m, nil
}

func (m *viewerModel) cur() *crumb {
	if len(m.stack) == 0 {
		return nil
	}
	return &m.stack[len(m.stack)-1]
}

func (m *viewerModel) move(delta int) {
	cur := m.cur()
	if cur == nil {
		return
	}
	m.moveTo(cur.selected + delta)
}

func (m *viewerModel) moveTo(i int) {
	cur := m.cur()
	if cur == nil || len(cur.rows) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(cur.rows)-1 {
		i = len(cur.rows) - 1
	}
	cur.selected = i
	m.refresh()
}

func (m *viewerModel) descend() {
	cur := m.cur()
	if cur == nil || len(cur.rows) == 0 {
		return
	}
	sel := cur.rows[cur.selected]
	rows := rowsOf(sel.val)
	if rows == nil {
		// Leaves have nothing to open.
		return
	}
	m.stack = append(m.stack, crumb{label: sel.label, rows: rows})
	m.refresh()
}

// refresh rebuilds the viewport content and keeps the selection in
// frame.
func (m *viewerModel) refresh() {
	cur := m.cur()
	if cur == nil || !m.ready {
		return
	}

	var b strings.Builder
	if len(cur.rows) == 0 {
		b.WriteString(helpStyle.Render("(empty)"))
	}
	for i, r := range cur.rows {
		if i == cur.selected {
			b.WriteString(selectedStyle.Render("> " + r.label + ": " + summary(r.val)))
		} else {
			b.WriteString("  " + labelStyle.Render(r.label) + ": " + summary(r.val))
		}
		b.WriteString("\n")
	}
	m.vp.SetContent(b.String())

	if cur.selected < m.vp.YOffset {
		m.vp.SetYOffset(cur.selected)
	}
	if cur.selected >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(cur.selected - m.vp.Height + 1)
	}
}

func (m *viewerModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if len(m.stack) == 0 || !m.ready {
		return "Loading document..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("pkl binary"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n")

	labels := make([]string, len(m.stack))
	for i, c := range m.stack {
		labels[i] = c.label
	}
	b.WriteString(crumbStyle.Render(strings.Join(labels, " > ")))
	b.WriteString("\n")

	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move • enter open • esc back • q quit"))
	return b.String()
}

// rowsOf lists the entries of a composite value, or nil for leaves.
func rowsOf(v any) []row {
	switch t := v.(type) {
	case *plain.Object:
		rows := make([]row, 0, len(t.Members))
		for _, mem := range t.Members {
			var label string
			switch mem.Kind {
			case pklbinary.CodeProperty:
				label = mem.Name
			case pklbinary.CodeEntry:
				label = "[" + plain.Key(mem.Key) + "]"
			case pklbinary.CodeElement:
				label = "[" + strconv.FormatInt(mem.Index, 10) + "]"
			}
			rows = append(rows, row{label: label, val: mem.Value})
		}
		return rows
	case []any:
		rows := make([]row, len(t))
		for i, el := range t {
			rows[i] = row{label: "[" + strconv.Itoa(i) + "]", val: el}
		}
		return rows
	case *plain.OrderedMap:
		rows := make([]row, 0, t.Len())
		for _, e := range t.Entries() {
			rows = append(rows, row{label: "[" + plain.Key(e.Key) + "]", val: e.Value})
		}
		return rows
	case plain.Pair:
		return []row{
			{label: "first", val: t.First},
			{label: "second", val: t.Second},
		}
	default:
		return nil
	}
}

// summary is the one-line preview shown next to a row label.
func summary(v any) string {
	switch t := v.(type) {
	case *plain.Object:
		name := t.Name
		if t.IsDynamic() {
			name = "object"
		}
		return fmt.Sprintf("%s (%d members)", name, len(t.Members))
	case []any:
		return fmt.Sprintf("list (%d)", len(t))
	case *plain.OrderedMap:
		return fmt.Sprintf("map (%d)", t.Len())
	case plain.Pair:
		return "pair"
	case []byte:
		return fmt.Sprintf("bytes (%d)", len(t))
	case string:
		return strconv.Quote(t)
	default:
		return plain.Key(t)
	}
}
