package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"vartree/internal/adapters/tui/views"
	"vartree/internal/domain"
	"vartree/internal/logger"
	"vartree/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewSearch
	ViewGoto
	ViewHelp
)

// App is the main TUI application model
type App struct {
	editor ports.EditorOpener

	state   ViewState
	browser *views.BrowserModel
	search  *views.SearchModel
	goTo    *views.GotoModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application over a loaded model. ed may be nil,
// which disables editing.
func NewApp(source ports.DocumentSource, model *domain.VariantModel, ed ports.EditorOpener) *App {
	return &App{
		editor:  ed,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(source, model),
		search:  views.NewSearchModel(model),
		goTo:    views.NewGotoModel(model),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.goTo.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		a.search.Reset()
		return a, a.search.Init()

	case views.SwitchToGotoMsg:
		a.state = ViewGoto
		current, _ := a.browser.Selected()
		a.goTo.Reset(current)
		return a, a.goTo.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	case views.RevealMsg:
		a.state = ViewBrowser
		a.browser.Reveal(msg.Path)
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			logger.Error("editor failed", "error", msg.err)
			a.browser.SetMessage(msg.err.Error(), true)
			return a, nil
		}
		a.browser.Reload()
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewGoto:
		_, cmd = a.goTo.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		a.browser.SetMessage("No editor configured", true)
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	logger.Info("opening editor", "path", path, "command", cmd.Path)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewSearch:
		return a.search.View()
	case ViewGoto:
		return a.goTo.View()
	case ViewHelp:
		return overlay.New(a.help, a.browser, overlay.Center, overlay.Center, 0, 0).View()
	default:
		return a.browser.View()
	}
}
