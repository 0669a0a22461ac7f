package views

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vartree/internal/adapters/codec"
	"vartree/internal/adapters/tui/styles"
	"vartree/internal/application/commands"
	"vartree/internal/domain"
	"vartree/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Goto     key.Binding
	Search   key.Binding
	Copy     key.Binding
	CopyPath key.Binding
	Reload   key.Binding
	Edit     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("home", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end/G", "bottom"),
	),
	Goto: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "go to path"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy value"),
	),
	CopyPath: key.NewBinding(
		key.WithKeys("Y"),
		key.WithHelp("Y", "copy path"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// treeRow is one visible line of the tree
type treeRow struct {
	depth    int
	path     domain.Path
	key      domain.Value
	value    domain.Value
	position bool // key is a list position
}

func (r treeRow) expandable() bool {
	return r.value.IsContainer() && r.value.Len() > 0
}

// chrome is the number of lines around the tree: title, header, message,
// status bar, help line and padding.
const chrome = 11

// BrowserModel is the model for the tree browser view
type BrowserModel struct {
	ViewState
	source   ports.DocumentSource
	model    *domain.VariantModel
	rows     []treeRow
	expanded map[string]bool
	pager    *Paginator
	selected domain.Path // kept across a model reset
	copy     func(string) error
}

// NewBrowserModel creates a new browser over model. The browser follows
// model resets, keeping expanded nodes and the selection where they still
// exist.
func NewBrowserModel(source ports.DocumentSource, model *domain.VariantModel) *BrowserModel {
	m := &BrowserModel{
		source:   source,
		model:    model,
		expanded: make(map[string]bool),
		pager:    NewPaginator(20),
		copy:     clipboard.WriteAll,
	}
	model.OnReset(m.onReset)
	m.refresh()
	return m
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

func (m *BrowserModel) onReset(phase domain.ResetPhase) {
	switch phase {
	case domain.ResetBegin:
		if row, ok := m.selectedRow(); ok {
			m.selected = row.path
		}
	case domain.ResetEnd:
		m.refresh()
		if m.selected != nil {
			m.selectPath(m.selected)
			m.selected = nil
		}
	}
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case RevealMsg:
		m.Reveal(msg.Path)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			m.pager.CursorUp()
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			m.pager.CursorDown()
			return m, nil

		case key.Matches(msg, BrowserKeys.PageUp):
			m.pager.PrevPage()
			return m, nil

		case key.Matches(msg, BrowserKeys.PageDown):
			m.pager.NextPage()
			return m, nil

		case key.Matches(msg, BrowserKeys.Top):
			m.pager.SetCursor(0)
			return m, nil

		case key.Matches(msg, BrowserKeys.Bottom):
			m.pager.SetCursor(len(m.rows) - 1)
			return m, nil

		case key.Matches(msg, BrowserKeys.Left):
			m.collapseOrParent()
			return m, nil

		case key.Matches(msg, BrowserKeys.Right):
			if row, ok := m.selectedRow(); ok && row.expandable() {
				if m.expanded[row.path.String()] {
					m.pager.CursorDown()
				} else {
					m.setExpanded(row, true)
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Enter):
			if row, ok := m.selectedRow(); ok && row.expandable() {
				m.setExpanded(row, !m.expanded[row.path.String()])
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Copy):
			m.copyValue()
			return m, nil

		case key.Matches(msg, BrowserKeys.CopyPath):
			m.copyPath()
			return m, nil

		case key.Matches(msg, BrowserKeys.Reload):
			m.Reload()
			return m, nil

		case key.Matches(msg, BrowserKeys.Edit):
			return m, m.edit()

		case key.Matches(msg, BrowserKeys.Goto):
			return m, func() tea.Msg {
				return SwitchToGotoMsg{}
			}

		case key.Matches(msg, BrowserKeys.Search):
			return m, func() tea.Msg {
				return SwitchToSearchMsg{}
			}

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

// Reload reads the source again. The model reset refreshes the rows.
func (m *BrowserModel) Reload() {
	result, err := commands.NewReloadCommand(m.source, m.model).Execute(context.Background())
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.SetMessage(result.Message, false)
}

// Reveal expands every ancestor of path and selects it
func (m *BrowserModel) Reveal(path domain.Path) bool {
	if len(path) == 0 {
		m.pager.SetCursor(0)
		return true
	}
	for i := 1; i < len(path); i++ {
		m.expanded[path[:i].String()] = true
	}
	m.refresh()
	if !m.selectPath(path) {
		m.SetMessage(fmt.Sprintf("%s is not in the document", path), true)
		return false
	}
	return true
}

func (m *BrowserModel) edit() tea.Cmd {
	local, ok := m.source.(ports.LocalSource)
	if !ok || local.Path() == "-" {
		m.SetMessage(fmt.Sprintf("%s cannot be edited", m.source.Describe()), true)
		return nil
	}
	return func() tea.Msg {
		return OpenEditorMsg{Path: local.Path()}
	}
}

func (m *BrowserModel) copyValue() {
	row, ok := m.selectedRow()
	if !ok {
		return
	}
	text := row.value.String()
	if row.value.IsContainer() {
		data, err := codec.EncodeJSONIndent(row.value)
		if err != nil {
			m.SetMessage(err.Error(), true)
			return
		}
		text = string(data)
	}
	if err := m.copy(text); err != nil {
		m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	m.SetMessage(fmt.Sprintf("Copied value of %s", row.path), false)
}

func (m *BrowserModel) copyPath() {
	row, ok := m.selectedRow()
	if !ok {
		return
	}
	if err := m.copy(row.path.String()); err != nil {
		m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	m.SetMessage(fmt.Sprintf("Copied %s", row.path), false)
}

func (m *BrowserModel) collapseOrParent() {
	row, ok := m.selectedRow()
	if !ok {
		return
	}
	if m.expanded[row.path.String()] {
		m.setExpanded(row, false)
		return
	}
	if len(row.path) > 1 {
		m.selectPath(row.path[:len(row.path)-1])
	}
}

func (m *BrowserModel) setExpanded(row treeRow, open bool) {
	if open {
		m.expanded[row.path.String()] = true
	} else {
		delete(m.expanded, row.path.String())
	}
	m.refresh()
	m.selectPath(row.path)
}

func (m *BrowserModel) selectedRow() (treeRow, bool) {
	cursor := m.pager.Cursor()
	if cursor >= 0 && cursor < len(m.rows) {
		return m.rows[cursor], true
	}
	return treeRow{}, false
}

func (m *BrowserModel) selectPath(path domain.Path) bool {
	for i, row := range m.rows {
		if slices.Equal(row.path, path) {
			m.pager.SetCursor(i)
			return true
		}
	}
	return false
}

// refresh rebuilds the visible rows from the model
func (m *BrowserModel) refresh() {
	m.rows = m.rows[:0]
	m.appendRows(domain.ModelIndex{}, nil, 0)
	m.pager.SetTotal(len(m.rows))
}

func (m *BrowserModel) appendRows(parent domain.ModelIndex, parentPath domain.Path, depth int) {
	position := m.model.Underlying(parent).IsList()
	n := m.model.RowCount(parent)
	for r := 0; r < n; r++ {
		index := m.model.Index(r, 0, parent)
		if !index.IsValid() {
			continue
		}
		row := treeRow{
			depth:    depth,
			path:     slices.Clone(parentPath),
			key:      m.model.Data(index, domain.RoleDisplay),
			value:    m.model.Underlying(index),
			position: position,
		}
		if row.key.IsValid() {
			row.path = append(row.path, row.key.String())
		}
		m.rows = append(m.rows, row)

		if row.expandable() && m.expanded[row.path.String()] {
			m.appendRows(index, row.path, depth+1)
		}
	}
}

// SetSize updates the view dimensions
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(height - chrome)
}

// View renders the browser
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("vartree"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(m.source.Describe()))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(styles.MutedText.Render("(empty document)"))
		b.WriteString("\n")
	} else {
		start, end := m.pager.VisibleRange()
		keyWidth := m.keyWidth(start, end)
		b.WriteString(m.renderHeader(keyWidth))
		b.WriteString("\n")
		for i := start; i < end; i++ {
			b.WriteString(m.renderRow(m.rows[i], keyWidth, i == m.pager.Cursor()))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.messageBlock())

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(RenderHelpLine(
		BrowserKeys.Left, BrowserKeys.Right, BrowserKeys.Goto, BrowserKeys.Search,
		BrowserKeys.Copy, BrowserKeys.Reload, BrowserKeys.Help, BrowserKeys.Quit,
	))

	return styles.App.Render(b.String())
}

func (m *BrowserModel) keyWidth(start, end int) int {
	width := lipgloss.Width(m.headerLabel(0))
	for _, row := range m.rows[start:end] {
		width = max(width, lipgloss.Width(m.keyCell(row)))
	}
	if m.Width > 0 {
		width = min(width, m.Width/2)
	}
	return width
}

func (m *BrowserModel) headerLabel(section int) string {
	return m.model.HeaderData(section, domain.Horizontal, domain.RoleDisplay).String()
}

func (m *BrowserModel) renderHeader(keyWidth int) string {
	key := m.headerLabel(0)
	return styles.Header.Render(key) + strings.Repeat(" ", max(0, keyWidth-lipgloss.Width(key))+2) +
		styles.Header.Render(m.headerLabel(1))
}

func (m *BrowserModel) prefix(row treeRow) string {
	switch {
	case !row.expandable():
		return styles.TreeLeaf
	case m.expanded[row.path.String()]:
		return styles.TreeExpanded
	default:
		return styles.TreeCollapsed
	}
}

func (m *BrowserModel) keyCell(row treeRow) string {
	return strings.Repeat("  ", row.depth) + m.prefix(row) + row.key.String()
}

func (m *BrowserModel) renderRow(row treeRow, keyWidth int, selected bool) string {
	indent := strings.Repeat("  ", row.depth)
	keyText := truncate(row.key.String(), keyWidth-lipgloss.Width(indent)-2)
	pad := strings.Repeat(" ", max(0, keyWidth-lipgloss.Width(indent+m.prefix(row)+keyText))+2)

	valueText := row.value.String()
	if m.Width > 0 {
		valueText = truncate(valueText, m.Width-keyWidth-8)
	}

	if selected {
		return indent + m.prefix(row) + styles.NodeSelected.Render(keyText+pad+valueText)
	}

	keyStyle := styles.NodeKey
	if row.position {
		keyStyle = styles.NodePosition
	}
	valueStyle := styles.NodeScalar
	switch {
	case row.value.IsContainer():
		valueStyle = styles.NodeSummary
	case row.value.IsNull():
		valueStyle = styles.NodeNull
	}

	return indent + styles.TreeBranch.Render(m.prefix(row)) + keyStyle.Render(keyText) + pad + valueStyle.Render(valueText)
}

func (m *BrowserModel) renderStatus() string {
	path := domain.Path{}
	if row, ok := m.selectedRow(); ok {
		path = row.path
	}
	position := fmt.Sprintf("%d/%d", min(m.pager.Cursor()+1, len(m.rows)), len(m.rows))
	return styles.StatusKey.Render(position) + styles.StatusText.Render(path.String())
}

// Selected returns the path of the row under the cursor
func (m *BrowserModel) Selected() (domain.Path, bool) {
	row, ok := m.selectedRow()
	return row.path, ok
}
