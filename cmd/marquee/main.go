package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/mmcdole/marquee/internal/watchlist"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var (
		showVersion bool
		listOnly    bool
		configFile  string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&listOnly, "list", false, "print the saved watch list and exit")
	flag.StringVar(&configFile, "config", "", "path to config file")
	flag.Parse()

	if showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(configFile, listOnly); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string, listOnly bool) error {
	cfg, err := adapter.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	movies, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open watch list: %w", err)
	}
	defer movies.Close()

	if listOnly {
		return printList(movies)
	}

	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg, configFile, logger); err != nil {
			return err
		}
	}

	catalog, err := source.NewCatalogFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	session := watchlist.NewStore(movies, search.NewService(catalog, logger), watchlist.Options{
		EffectBuffer:    cfg.Session.EffectBuffer,
		SearchTimeout:   cfg.Session.SearchTimeout,
		MutationTimeout: cfg.Session.MutationTimeout,
	}, logger)
	if err := session.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.Stop()

	launcher := adapter.NewLauncher(cfg.Browser.Command, cfg.Browser.Args, logger)

	model := tui.NewModel(session, launcher)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// printList writes the saved list to stdout
func printList(movies domain.MovieRepository) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	saved, err := movies.List(ctx)
	if err != nil {
		return err
	}
	if len(saved) == 0 {
		fmt.Println("Your watch list is empty.")
		return nil
	}

	for _, m := range saved {
		mark := styles.UnselectedChar
		if m.Selected {
			mark = styles.SelectedChar
		}
		line := fmt.Sprintf("%s %s", mark, m.Title)
		if desc := m.Description(); desc != "" {
			line += "  (" + desc + ")"
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d saved, %d selected\n", len(saved), domain.CountSelected(saved))
	return nil
}

// runSetupFlow asks for an OMDb API key and saves it
func runSetupFlow(cfg *adapter.Config, configFile string, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Marquee!")
	fmt.Println()
	fmt.Println("Catalog search needs a free OMDb API key (https://www.omdbapi.com/apikey.aspx).")

	for {
		key, err := readAPIKey("Enter your OMDb API key: ")
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if key == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		cfg.OMDb.APIKey = key
		if err := validateWithSpinner(cfg, logger); err != nil {
			fmt.Printf("✗ Could not use this key: %v\n", err)
			fmt.Println("Please check the key and try again.")
			fmt.Println()
			continue
		}
		break
	}

	path, err := adapter.SaveConfig(cfg, configFile)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Printf("✓ Configuration saved to %s\n", path)
	fmt.Println()
	return nil
}

// readAPIKey reads a line without echo when stdin is a terminal
func readAPIKey(prompt string) (string, error) {
	fmt.Print(prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	input, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// validateWithSpinner runs a probe search with a visual spinner
func validateWithSpinner(cfg *adapter.Config, logger *slog.Logger) error {
	catalog, err := source.NewCatalogFromConfig(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		_, err := catalog.Search(ctx, "star wars")
		resultCh <- err
	}()

	frames := spinner.Dot.Frames
	frame := 0
	fmt.Printf("\r%s Checking key...", frames[frame])

	ticker := time.NewTicker(spinner.Dot.FPS)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ Key accepted")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking key...", frames[frame%len(frames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("validation timed out")
		}
	}
}
