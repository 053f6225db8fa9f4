package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fiscalpro/internal/logging"
	"github.com/rgehrsitz/fiscalpro/internal/store"
	"github.com/rgehrsitz/fiscalpro/internal/tui"
)

func main() {
	kind := store.Kind(os.Getenv("FISCALPRO_STORE"))

	// Catalog path from arguments, then environment, then the store default
	path := os.Getenv("FISCALPRO_CATALOG")
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		path = "catalog.yaml"
		if kind == store.KindSQLite {
			path = "fiscalpro.db"
		}
	}

	// The TUI owns the terminal, so logs only go somewhere when asked to
	cfg := logging.ConfigFromEnv()
	if os.Getenv("FISCALPRO_LOG_OUTPUT") == "" {
		cfg.Output = "discard"
	}
	zl, closeLog, err := logging.New(cfg)
	if err != nil {
		fmt.Printf("Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	defer func() { _ = zl.Sync() }()

	s, err := store.Open(kind, path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	model := tui.NewModel(s, zl.Sugar())

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
