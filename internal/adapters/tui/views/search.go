package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"vartree/internal/adapters/tui/styles"
	"vartree/internal/application/commands"
	"vartree/internal/domain"
)

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "reveal"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

const searchLimit = 50

// SearchModel is the model for the search view
type SearchModel struct {
	ViewState
	model   *domain.VariantModel
	input   textinput.Model
	results []commands.SearchResult
	query   string
	cursor  int
}

// NewSearchModel creates a new search view model
func NewSearchModel(model *domain.VariantModel) *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search keys and values..."
	input.Focus()

	return &SearchModel{
		model: model,
		input: input,
	}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset resets the search view
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.results = nil
	m.query = ""
	m.cursor = 0
	m.ClearMessage()
	m.input.Focus()
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, SearchKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if m.cursor >= 0 && m.cursor < len(m.results) {
				path := m.results[m.cursor].Path
				return m, func() tea.Msg {
					return RevealMsg{Path: path}
				}
			}
			return m, nil
		}
	}

	// Update input
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Trigger search on input change
	query := m.input.Value()
	if query == m.query {
		return m, cmd
	}
	m.query = query
	m.search(query)
	return m, cmd
}

// search runs on the UI goroutine. The browser swaps the shared document
// on reload, so the model is never read from a tea.Cmd.
func (m *SearchModel) search(query string) {
	m.results = nil
	m.cursor = 0
	m.ClearMessage()
	if len(query) < 2 {
		return
	}

	search := commands.NewSearchCommand(m.model, query)
	search.Limit = searchLimit
	results, err := search.Execute(context.Background())
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.results = results
}

// View renders the search view
func (m *SearchModel) View() string {
	v := NewViewBuilder().
		Title("Search").
		Line(m.input.View()).
		BlankLine().
		Message(m.Message, m.MessageErr)

	switch {
	case len(m.input.Value()) < 2:
		v.Muted("Type at least 2 characters")
	case len(m.results) == 0:
		v.Muted("No matches")
	default:
		for i, result := range m.results {
			line := fmt.Sprintf("%s = %s", result.Path, result.Value)
			if result.Value == "" {
				line = result.Path.String()
			}
			line = truncate(line, m.Width-6)
			if i == m.cursor {
				v.Line(styles.NodeSelected.Render(line))
			} else {
				v.Line(line)
			}
		}
	}

	return v.BlankLine().
		Help(SearchKeys.Up, SearchKeys.Down, SearchKeys.Select, SearchKeys.Cancel).
		String()
}

// Results returns the current search results
func (m *SearchModel) Results() []commands.SearchResult {
	return m.results
}
