package ports

import "os/exec"

// EditorOpener launches the user's editor on a draft file
type EditorOpener interface {
	// Command returns the editor process for path, ready for bubbletea's
	// ExecProcess
	Command(path string) (*exec.Cmd, error)
}
