package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	gbln "github.com/gbln-format/gbln-go"
	"github.com/gbln-format/gbln-go/value"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func main() {
	file := flag.String("in", "", "GBLN file to explore")
	flag.Parse()

	if *file == "" && flag.NArg() > 0 {
		*file = flag.Arg(0)
	}
	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: gbln-explore <file.gbln>")
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(*file), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// row is one visible line of the tree.
type row struct {
	path  string
	key   string
	v     gbln.Value
	depth int
}

type explorerModel struct {
	err      error
	filename string
	doc      gbln.Value
	loaded   bool

	rows     []row
	expanded map[string]bool
	selected int
	offset   int
	height   int

	filter    textinput.Model
	filtering bool
}

func newModel(filename string) *explorerModel {
	ti := textinput.New()
	ti.Placeholder = "key substring"
	ti.Prompt = "/ "
	ti.Width = 40
	return &explorerModel{
		filename: filename,
		expanded: map[string]bool{"": true},
		height:   24,
		filter:   ti,
	}
}

type loadedMsg struct {
	err error
	doc gbln.Value
}

func (m *explorerModel) Init() tea.Cmd {
	return m.loadFile
}

func (m *explorerModel) loadFile() tea.Msg {
	doc, err := gbln.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{doc: doc}
}

func (m *explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.doc = msg.doc
		m.loaded = true
		m.rebuild()

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter", "esc":
				m.filtering = false
				m.filter.Blur()
				if msg.String() == "esc" {
					m.filter.SetValue("")
				}
				m.rebuild()
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.rebuild()
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.rows)-1 {
				m.selected++
			}

		case "enter", " ":
			if m.selected < len(m.rows) {
				r := m.rows[m.selected]
				if r.v.Kind().IsContainer() {
					m.expanded[r.path] = !m.expanded[r.path]
					m.rebuild()
				}
			}

		case "e":
			m.expandAll(m.doc, "")
			m.rebuild()

		case "c":
			m.expanded = map[string]bool{"": true}
			m.selected = 0
			m.rebuild()

		case "/":
			m.filtering = true
			m.filter.Focus()
			return m, textinput.Blink
		}
	}

	return m, nil
}

// rebuild flattens the tree into visible rows, honoring expand state
// and the key filter.
func (m *explorerModel) rebuild() {
	m.rows = m.rows[:0]
	m.appendRows(m.doc, "", "", 0)
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *explorerModel) appendRows(v gbln.Value, path, key string, depth int) {
	// Containers always show so filtered leaves keep their context.
	needle := strings.ToLower(m.filter.Value())
	if needle == "" || depth == 0 || v.Kind().IsContainer() ||
		strings.Contains(strings.ToLower(key), needle) {
		m.rows = append(m.rows, row{path: path, key: key, v: v, depth: depth})
	}

	if !v.Kind().IsContainer() || !m.expanded[path] {
		return
	}

	switch v.Kind() {
	case value.KindObject:
		keys := make([]string, 0, v.Len())
		for k := range v.AsObject() {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child, _ := v.Get(k)
			m.appendRows(child, path+"."+k, k, depth+1)
		}
	case value.KindArray:
		for i, elem := range v.AsArray() {
			m.appendRows(elem, fmt.Sprintf("%s[%d]", path, i), fmt.Sprintf("[%d]", i), depth+1)
		}
	}
}

func (m *explorerModel) expandAll(v gbln.Value, path string) {
	if !v.Kind().IsContainer() {
		return
	}
	m.expanded[path] = true
	switch v.Kind() {
	case value.KindObject:
		for k, child := range v.AsObject() {
			m.expandAll(child, path+"."+k)
		}
	case value.KindArray:
		for i, elem := range v.AsArray() {
			m.expandAll(elem, fmt.Sprintf("%s[%d]", path, i))
		}
	}
}

func (m *explorerModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.loaded {
		return "Loading document..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("GBLN Explorer"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	visible := m.height - 6
	if visible < 1 {
		visible = 1
	}
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+visible {
		m.offset = m.selected - visible + 1
	}

	end := m.offset + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		line := m.formatRow(m.rows[i])
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.filtering {
		b.WriteString(m.filter.View())
	} else {
		b.WriteString(helpStyle.Render("↑/↓ move • enter toggle • e expand all • c collapse • / filter • q quit"))
	}
	return b.String()
}

func (m *explorerModel) formatRow(r row) string {
	pad := strings.Repeat("  ", r.depth)

	label := ""
	if r.key != "" {
		label = keyStyle.Render(r.key) + " "
	}

	switch r.v.Kind() {
	case value.KindObject:
		marker := "+"
		if m.expanded[r.path] {
			marker = "-"
		}
		return fmt.Sprintf("%s%s %s%s", pad, marker, label,
			typeStyle.Render(fmt.Sprintf("object(%d)", r.v.Len())))
	case value.KindArray:
		marker := "+"
		if m.expanded[r.path] {
			marker = "-"
		}
		return fmt.Sprintf("%s%s %s%s", pad, marker, label,
			typeStyle.Render(fmt.Sprintf("array(%d)", r.v.Len())))
	default:
		return fmt.Sprintf("%s  %s%s %s", pad, label,
			typeStyle.Render(r.v.Kind().String()), scalar(r.v))
	}
}

func scalar(v gbln.Value) string {
	switch v.Kind() {
	case value.KindNull:
		return "null"
	case value.KindBool:
		return fmt.Sprintf("%t", v.AsBool())
	case value.KindInt:
		return fmt.Sprintf("%d", v.AsInt())
	case value.KindFloat:
		return fmt.Sprintf("%g", v.AsFloat())
	case value.KindString:
		return fmt.Sprintf("%q", v.AsString())
	default:
		return ""
	}
}
