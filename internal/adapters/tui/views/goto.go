package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"vartree/internal/adapters/tui/styles"
	"vartree/internal/application/commands"
	"vartree/internal/domain"
)

// GotoKeyMap defines key bindings for the go-to-path prompt
type GotoKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

var GotoKeys = GotoKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "go"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// GotoModel prompts for a path expression and reveals the node it names
type GotoModel struct {
	ViewState
	model *domain.VariantModel
	input textinput.Model
}

// NewGotoModel creates a new go-to-path view model
func NewGotoModel(model *domain.VariantModel) *GotoModel {
	input := textinput.New()
	input.Placeholder = ".partitions[0].device"
	input.Focus()

	return &GotoModel{
		model: model,
		input: input,
	}
}

// Init initializes the view
func (m *GotoModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the prompt, starting from current
func (m *GotoModel) Reset(current domain.Path) {
	m.ClearMessage()
	m.input.SetValue("")
	if len(current) > 0 {
		m.input.SetValue(current.String())
	}
	m.input.CursorEnd()
	m.input.Focus()
}

// Update handles messages for the view
func (m *GotoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, GotoKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, GotoKeys.Submit):
			result, err := commands.NewLookupCommand(m.model, m.input.Value()).Execute(context.Background())
			if err != nil {
				m.SetMessage(err.Error(), true)
				return m, nil
			}
			path := result.Path
			return m, func() tea.Msg {
				return RevealMsg{Path: path}
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt
func (m *GotoModel) View() string {
	return NewViewBuilder().
		Title("Go to path").
		Line(styles.InputLabel.Render("Path:") + " " + m.input.View()).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Muted(`Examples: .hostname  partitions.0.fs  ["key with spaces"]`).
		BlankLine().
		Help(GotoKeys.Submit, GotoKeys.Cancel).
		String()
}
