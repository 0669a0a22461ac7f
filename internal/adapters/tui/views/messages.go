package views

import "vartree/internal/domain"

// Messages for view switching
type SwitchToSearchMsg struct{}

type SwitchToGotoMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}

// RevealMsg asks the browser to expand down to Path and select it
type RevealMsg struct {
	Path domain.Path
}

// OpenEditorMsg asks the app to suspend and edit the file at Path
type OpenEditorMsg struct {
	Path string
}
