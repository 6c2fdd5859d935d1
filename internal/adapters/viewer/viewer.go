// Package viewer opens exported chart files with the desktop's default
// application
package viewer

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Viewer implements ports.ChartViewer
type Viewer struct {
	goos string
}

// New creates a viewer for the running operating system
func New() *Viewer {
	return &Viewer{goos: runtime.GOOS}
}

// Open shows the file at path
func (v *Viewer) Open(path string) error {
	uri, err := BuildURI(path)
	if err != nil {
		return err
	}
	cmd, err := v.command(uri)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// BuildURI returns the file:// URI for path, made absolute first
func BuildURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

func (v *Viewer) command(uri string) (*exec.Cmd, error) {
	switch v.goos {
	case "darwin":
		return exec.Command("open", uri), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", uri), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", uri), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", v.goos)
	}
}
