package opener

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// startFunc starts a command without waiting for it
type startFunc func(name string, args ...string) error

// Opener shows image URLs in an external viewer
type Opener struct {
	command string   // configured viewer command, empty for system default
	args    []string // additional arguments for the viewer
	logger  *slog.Logger

	start startFunc
	goos  string
}

// New creates an Opener using the given viewer, or the system default
// handler when command is empty.
func New(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command: strings.TrimSpace(command),
		args:    args,
		logger:  logger,
		start:   startCommand,
		goos:    runtime.GOOS,
	}
}

func startCommand(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	return exec.Command(name, args...).Start() // Start async, don't wait
}

// Open launches the viewer for url
func (o *Opener) Open(url string) error {
	if url == "" {
		return fmt.Errorf("no image to open")
	}

	name, args := o.commandFor(url)
	o.logger.Info("opening image", "command", name, "args", args)

	if err := o.start(name, args...); err != nil {
		o.logger.Error("failed to open image", "command", name, "error", err)
		return fmt.Errorf("failed to open image with %s: %w", name, err)
	}
	return nil
}

// commandFor returns the command line that opens url
func (o *Opener) commandFor(url string) (string, []string) {
	if o.command != "" {
		args := append(append([]string{}, o.args...), url)
		return o.command, args
	}

	switch o.goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{url}
	}
}
