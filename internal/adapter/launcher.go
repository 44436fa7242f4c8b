package adapter

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

const imdbTitleURL = "https://www.imdb.com/title/"

// Launcher opens catalog pages in a browser
type Launcher struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments for the browser
	logger  *slog.Logger

	start func(name string, args ...string) error
}

// NewLauncher creates a new Launcher
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		logger:  logger,
		start:   startCommand,
	}
}

func startCommand(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	return exec.Command(name, args...).Start() // Start async, don't wait
}

// PageURL returns the IMDb page for a catalog entry
func PageURL(movie domain.Movie) (string, error) {
	if !movie.IsFromCatalog() {
		return "", fmt.Errorf("%q has no catalog page", movie.Title)
	}
	return imdbTitleURL + url.PathEscape(movie.ImdbID) + "/", nil
}

// OpenPage opens the IMDb page of movie
func (l *Launcher) OpenPage(movie domain.Movie) error {
	page, err := PageURL(movie)
	if err != nil {
		return err
	}
	return l.Open(page)
}

// Open opens a URL in the configured browser or system default
func (l *Launcher) Open(target string) error {
	name, args := l.commandFor(target)
	l.logger.Info("opening url", "command", name, "args", args)
	if err := l.start(name, args...); err != nil {
		l.logger.Error("failed to open url", "command", name, "error", err)
		return fmt.Errorf("failed to open %s: %w", target, err)
	}
	return nil
}

// commandFor builds the command line for target. URL goes at the end.
func (l *Launcher) commandFor(target string) (string, []string) {
	if l.command != "" {
		args := append([]string{}, l.args...)
		return l.command, append(args, target)
	}

	switch runtime.GOOS {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "cmd", []string{"/c", "start", "", strings.ReplaceAll(target, "&", "^&")}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{target}
	}
}
