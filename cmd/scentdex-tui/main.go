// Package main provides the terminal catalog browser.
package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scentdex/scentdex-server/internal/catalog"
	"github.com/scentdex/scentdex-server/internal/color"
	"github.com/scentdex/scentdex-server/internal/config"
	"github.com/scentdex/scentdex-server/internal/logger"
	"github.com/scentdex/scentdex-server/internal/tui"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scentdex-tui: %v\n", err)
		os.Exit(1)
	}

	log, closeLog, err := newLogger(cfg, os.Getenv("SCENTDEX_TUI_LOG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "scentdex-tui: %v\n", err)
		os.Exit(1)
	}

	err = run(cfg, log)
	if err != nil {
		log.Error("terminal browser failed", "error", err)
	}
	_ = closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	c, err := catalog.LoadFile(cfg.Catalog.DataPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	log.Info("catalog loaded", "records", len(c.Records), "version", c.Version)

	p := tea.NewProgram(tui.New(c, loadPalette(cfg.Catalog.AccordsPath, log), tui.Options{}), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// newLogger writes to the SCENTDEX_TUI_LOG file when one is named.
// Otherwise records go to stderr, which the UI hides once it starts.
func newLogger(cfg *config.Config, path string) (*logger.Logger, func() error, error) {
	var (
		w       io.Writer = os.Stderr
		closeFn           = func() error { return nil }
		noColor bool
	)
	if path != "" {
		f, err := tea.LogToFile(path, "scentdex-tui")
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn, noColor = f, f.Close, true
	}

	return logger.New(logger.Config{
		Writer:      w,
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
		NoColor:     noColor,
	}), closeFn, nil
}

// loadPalette falls back to neutral pills when the accord colours cannot be read.
func loadPalette(path string, log *logger.Logger) *color.Palette {
	palette, err := color.LoadPalette(path)
	if err != nil {
		log.Warn("accord colours unavailable, using neutral pills", "path", path, "error", err)
		return color.NewPalette(nil)
	}
	return palette
}
