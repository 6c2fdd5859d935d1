package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"labelboard/internal/ports"
)

// draftHint heads every draft and is stripped on read
const draftHint = "# Write the ticket content below. Lines starting with '# ' are ignored."

// Opener implements ports.EditorOpener
type Opener struct {
	editor string
}

var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates an opener using $EDITOR, $VISUAL or a common editor.
// It returns nil when none is available.
func NewOpener() *Opener {
	ed := findEditor()
	if ed == "" {
		return nil
	}
	return &Opener{editor: ed}
}

// Command returns an exec.Cmd editing path in the terminal
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	if o == nil || o.editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	// $EDITOR may carry flags, e.g. "code --wait"
	fields := strings.Fields(o.editor)
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor to use
func findEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}
	return ""
}

// WriteDraft stores content in a new temp file for editing
func WriteDraft(content string) (string, error) {
	f, err := os.CreateTemp("", "labelboard-ticket-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create draft: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s\n\n%s\n", draftHint, content); err != nil {
		return "", fmt.Errorf("failed to write draft: %w", err)
	}
	return f.Name(), nil
}

// ReadDraft returns the edited content and removes the file
func ReadDraft(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read draft: %w", err)
	}
	os.Remove(path)

	var kept []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "# ") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n")), nil
}
