package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"vartree/internal/domain"
)

func installerState() domain.Value {
	return domain.Map(
		domain.Entry{Key: "branding", Value: domain.Map(
			domain.Entry{Key: "productName", Value: domain.Scalar("Generic Linux")},
			domain.Entry{Key: "version", Value: domain.Scalar("2019.1")},
		)},
		domain.Entry{Key: "partitions", Value: domain.List(
			domain.Map(domain.Entry{Key: "device", Value: domain.Scalar("/dev/sda1")}),
			domain.Map(domain.Entry{Key: "device", Value: domain.Scalar("/dev/sda2")}),
		)},
		domain.Entry{Key: "hostname", Value: domain.Scalar("calamares")},
		domain.Entry{Key: "swap", Value: domain.Scalar(nil)},
	)
}

// stubSource serves a fixed document, or an error
type stubSource struct {
	doc   domain.Value
	err   error
	loads int
}

func (s *stubSource) Load(ctx context.Context) (domain.Value, error) {
	s.loads++
	return s.doc, s.err
}

func (s *stubSource) Describe() string {
	return "stub"
}

// fileSource is a stubSource backed by an editable file
type fileSource struct {
	stubSource
	path string
}

func (s *fileSource) Path() string {
	return s.path
}

func newBrowser(doc domain.Value) (*BrowserModel, *stubSource) {
	source := &stubSource{doc: doc}
	model := domain.NewVariantModel(&doc)
	return NewBrowserModel(source, model), source
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m tea.Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyPress(k))
	}
	return cmd
}

func paths(rows []treeRow) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.path.String())
	}
	return out
}
