package chart

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// ErrNoDisplay is returned when no graphical session is available.
var ErrNoDisplay = errors.New("no graphical display available")

// Presenter shows a saved chart to the user.
type Presenter interface {
	Present(ctx context.Context, path string) error
}

// NopPresenter does nothing. Used with --no-show and in headless runs.
type NopPresenter struct{}

// Present returns nil.
func (NopPresenter) Present(context.Context, string) error { return nil }

// SystemViewer opens the chart in the desktop's default image viewer and
// returns without waiting for it to close.
type SystemViewer struct{}

// Present launches the viewer for path.
func (SystemViewer) Present(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !hasDisplay(runtime.GOOS, os.Getenv) {
		return ErrNoDisplay
	}

	name, args := viewerCommand(runtime.GOOS, path)
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("image viewer %q not found: %w", name, err)
	}

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	return cmd.Process.Release()
}

// viewerCommand returns the launcher for goos.
func viewerCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}

// hasDisplay reports whether a viewer can be shown. Only X11/Wayland
// systems can be headless in a way that is detectable from the environment.
func hasDisplay(goos string, getenv func(string) string) bool {
	switch goos {
	case "darwin", "windows":
		return true
	default:
		return getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != ""
	}
}
