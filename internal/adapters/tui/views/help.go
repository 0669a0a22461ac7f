package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"vartree/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the help box, shown as an overlay above the browser
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("vartree help"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine(BrowserKeys.Up, BrowserKeys.Down))
	b.WriteString(helpLine(BrowserKeys.PageUp, BrowserKeys.PageDown))
	b.WriteString(helpLine(BrowserKeys.Top, BrowserKeys.Bottom))
	b.WriteString(helpLine(BrowserKeys.Left))
	b.WriteString(helpLine(BrowserKeys.Right))
	b.WriteString(helpLine(BrowserKeys.Enter))
	b.WriteString(helpLine(BrowserKeys.Goto))
	b.WriteString(helpLine(BrowserKeys.Search))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Actions"))
	b.WriteString("\n")
	b.WriteString(helpLine(BrowserKeys.Copy))
	b.WriteString(helpLine(BrowserKeys.CopyPath))
	b.WriteString(helpLine(BrowserKeys.Reload))
	b.WriteString(helpLine(BrowserKeys.Edit))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine(BrowserKeys.Help))
	b.WriteString(helpLine(BrowserKeys.Quit))
	b.WriteString("\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.HelpBox.Render(b.String())
}

// helpLine puts the keys and descriptions of bindings on one line
func helpLine(bindings ...key.Binding) string {
	var keys, descs []string
	for _, b := range bindings {
		keys = append(keys, b.Help().Key)
		descs = append(descs, b.Help().Desc)
	}
	return "  " + styles.HelpKey.Render(padRight(strings.Join(keys, " / "), 20)) +
		styles.HelpDesc.Render(strings.Join(descs, " / ")) + "\n"
}
