// Package dialog asks the desktop for a model file through an external
// file-chooser program.
package dialog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/mitchellh/go-homedir"
)

// ErrCancelled is returned when the user closes the chooser without a pick.
var ErrCancelled = errors.New("no file selected")

// DefaultCommand returns the chooser command for the current platform.
func DefaultCommand() string {
	switch runtime.GOOS {
	case "windows":
		return `powershell -NoProfile -Command "Add-Type -AssemblyName System.Windows.Forms; ` +
			`$d = New-Object System.Windows.Forms.OpenFileDialog; $d.Filter = 'Wavefront OBJ (*.obj)|*.obj'; ` +
			`if ($d.ShowDialog() -eq 'OK') { Write-Output $d.FileName }"`
	case "darwin":
		return `osascript -e 'POSIX path of (choose file with prompt "Select a model" of type {"obj"})'`
	default:
		return `zenity --file-selection --title="Select a model" --file-filter="*.obj"`
	}
}

// Picker runs a chooser command and returns the selected path.
type Picker struct {
	// Command is a shell-style command line; empty uses DefaultCommand.
	Command string
}

// Pick runs the chooser and blocks until it exits. A non-zero exit or empty
// output means the user cancelled.
func (p Picker) Pick(ctx context.Context) (string, error) {
	line := p.Command
	if line == "" {
		line = DefaultCommand()
	}
	args, err := shellwords.Parse(line)
	if err != nil {
		return "", fmt.Errorf("parse chooser command: %w", err)
	}
	if len(args) == 0 {
		return "", fmt.Errorf("parse chooser command: empty")
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("run %s: %w", args[0], err)
	}

	path := strings.TrimSpace(out.String())
	if path == "" {
		return "", ErrCancelled
	}
	return homedir.Expand(path)
}
