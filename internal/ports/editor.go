package ports

import "os/exec"

// EditorOpener opens documents in an external editor
type EditorOpener interface {
	// Command returns an exec.Cmd editing path, suitable for tea.ExecProcess.
	// It uses $EDITOR, then $VISUAL, then a common editor found on $PATH.
	Command(path string) (*exec.Cmd, error)
}
