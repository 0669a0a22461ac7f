package views

// ViewState is embedded by every view model: terminal size plus the one-line
// status message shown under the content.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage replaces the status message
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the status message
func (s *ViewState) ClearMessage() {
	s.SetMessage("", false)
}

// messageBlock renders the status message surrounded by blank lines, or
// nothing when there is no message.
func (s *ViewState) messageBlock() string {
	if s.Message == "" {
		return ""
	}
	return "\n" + RenderMessage(s.Message, s.MessageErr) + "\n"
}
